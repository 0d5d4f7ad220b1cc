package messages

// Artifact, version, and compatibility messages.
const (
	// ArtifactUnknownKindFmt formats an unrecognized artifact kind.
	ArtifactUnknownKindFmt = "unknown artifact %q (expected sop or go)"

	ArtifactErrVersionNotFound     = "version not found"
	ArtifactErrUnsupportedPlatform = "unsupported platform"
	ArtifactErrExtract             = "extraction failed"
	ArtifactErrIncompatible        = "incompatible versions"

	ArtifactHTTPStatusFmt     = "request %s: unexpected status %s"
	ArtifactTransportFmt      = "request %s: %v"
	ArtifactNotFoundFmt       = "%w: %s %s"
	ArtifactUnsupportedPairFmt = "%w: %s/%s"

	// VersionEmpty indicates an empty version string.
	VersionEmpty              = "version is empty"
	VersionInvalidFmt         = "invalid version %q"
	VersionInvalidDetailFmt   = "invalid version %q: %w"
	VersionSpecifierRequired  = "version is required (use latest, X.Y, or X.Y.Z)"

	// CompatUnknownFmt describes an application version with no declared runtime range.
	CompatUnknownFmt   = "sop %s has unknown go requirements"
	CompatBoundedFmt   = "sop %s requires go %s to %s"
	CompatUnboundedFmt = "sop %s requires go %s or later"
	CompatCheckFmt     = "%w: %s"

	// PathsExpandHomeFmt formats a failure expanding the root override.
	PathsExpandHomeFmt = "expand %s: %w"
	PathsHomeDirFmt    = "resolve home directory: %w"
	PathsCreateDirFmt  = "create directory %s: %w"

	// LockOpenFmt formats a failure opening a lock file.
	LockOpenFmt    = "open lock %s: %w"
	LockAcquireFmt = "acquire lock %s: %w"
	LockTimeoutFmt = "timed out waiting for lock %s after %s; another sopmod process may be running"
)
