package artifact

import (
	"fmt"
	"runtime"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// Platform is the operating system and architecture pair used to pick release assets.
type Platform struct {
	OS   string
	Arch string
}

var platformTriples = map[Platform]string{
	{OS: "linux", Arch: "amd64"}:   "x86_64-unknown-linux-gnu",
	{OS: "linux", Arch: "arm64"}:   "aarch64-unknown-linux-gnu",
	{OS: "darwin", Arch: "amd64"}:  "x86_64-apple-darwin",
	{OS: "darwin", Arch: "arm64"}:  "aarch64-apple-darwin",
	{OS: "windows", Arch: "amd64"}: "x86_64-pc-windows-msvc",
	{OS: "windows", Arch: "arm64"}: "aarch64-pc-windows-msvc",
}

// DetectPlatform returns the platform of the running binary.
func DetectPlatform() (Platform, error) {
	return CheckPlatform(runtime.GOOS, runtime.GOARCH)
}

// CheckPlatform validates an os/arch pair against the supported set.
func CheckPlatform(goos string, goarch string) (Platform, error) {
	p := Platform{OS: goos, Arch: goarch}
	if _, ok := platformTriples[p]; !ok {
		return Platform{}, fmt.Errorf(messages.ArtifactUnsupportedPairFmt, ErrUnsupportedPlatform, goos, goarch)
	}
	return p, nil
}

// Triple returns the target triple used in application asset names.
func (p Platform) Triple() (string, error) {
	triple, ok := platformTriples[p]
	if !ok {
		return "", fmt.Errorf(messages.ArtifactUnsupportedPairFmt, ErrUnsupportedPlatform, p.OS, p.Arch)
	}
	return triple, nil
}

// ArchiveExt returns the runtime archive extension for the platform.
func (p Platform) ArchiveExt() string {
	if p.OS == "windows" {
		return "zip"
	}
	return "tar.gz"
}

// String formats the platform as os-arch.
func (p Platform) String() string {
	return p.OS + "-" + p.Arch
}
