package messages

// Configuration messages.
const (
	// ConfigReadFmt formats a config read failure.
	ConfigReadFmt       = "read %s: %w"
	ConfigInvalidFmt    = "invalid config %s: %w"
	ConfigEncodeFmt     = "encode config: %w"
	ConfigWriteFmt      = "write %s: %w"
	ConfigResolveDirFmt = "resolve %s: %w"
)
