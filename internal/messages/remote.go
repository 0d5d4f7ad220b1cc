package messages

// Remote release feed messages.
const (
	// RemoteCreateRequestFmt formats request creation errors.
	RemoteCreateRequestFmt = "create request %s: %w"
	RemoteDecodeFmt        = "decode %s: %w"
	RemoteRateLimitFmt     = "github api rate limit exceeded (%s, remaining=%s)"
)

// Resolution messages.
const (
	// ResolveIndexRequired indicates a resolver was built without an index.
	ResolveIndexRequired = "release index is required"
	ResolveFetchIndexFmt = "%w: %s %s: %w"
)
