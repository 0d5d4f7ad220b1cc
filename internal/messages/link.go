package messages

// Active link messages.
const (
	// LinkTargetFmt formats a missing link target.
	LinkTargetFmt = "link target %s: %w"
	LinkCreateFmt = "create link %s: %w"
	LinkCopyFmt   = "copy %s: %w"
)
