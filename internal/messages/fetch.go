package messages

// Artifact fetch messages.
const (
	// FetchProgressLabelFmt labels a download progress bar.
	FetchProgressLabelFmt = "Downloading %s %s"
	FetchNotFoundFmt      = "%w: %s %s: %w"
	FetchAssetMissingFmt  = "%w: %s %s has no asset for %s"
	FetchDownloadFmt      = "download %s: %w"
	FetchCreateTempFmt    = "create temp file: %w"
	FetchCloseTempFmt     = "close temp file: %w"
	FetchExtractFmt       = "%w: %s: %w"
	FetchOpenArchiveFmt   = "open archive: %w"
	FetchOpenEntryFmt     = "open archive entry %s: %w"
	FetchGzipFmt          = "gzip reader: %w"
	FetchTarHeaderFmt     = "read tar header: %w"
	FetchWriteFmt         = "write %s: %w"
	FetchUnsafePathFmt    = "unsafe archive path: %s"
	FetchSearchBinaryFmt  = "search for %s: %w"
	FetchBinaryMissingFmt = "%w: %s not found after extracting %s"
)
