package messages

// Installation store messages.
const (
	// StoreReadRootFmt formats a failure listing a kind root.
	StoreReadRootFmt = "read %s: %w"
	StoreStatFmt     = "stat %s: %w"
	StoreRemoveFmt   = "remove %s: %w"
	StoreStageFmt    = "create staging directory for %s: %w"
	StoreCommitFmt   = "publish %s: %w"
)
