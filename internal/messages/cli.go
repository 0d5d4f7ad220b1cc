package messages

const (
	RootUse   = "sopmod"
	RootShort = "Manage Go toolchain and sop compiler versions"
	RootLong  = "sopmod installs Go toolchains and sop compiler releases side by side,\nselects the default sop version, and pairs it with a compatible Go runtime."

	VerboseFlagUsage = "enable debug logging"

	// VersionTemplate is the cobra --version output template.
	VersionTemplate  = "{{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionUse       = "version"
	VersionShort     = "Print the sopmod version"

	InstallUse   = "install <go|sop> <version>"
	InstallShort = "Install a Go or sop version (exact, major.minor, or latest)"

	ListUse   = "list [go|sop]"
	ListShort = "List installed versions"

	DefaultUse   = "default <sop> <version>"
	DefaultShort = "Set the default sop version"

	WhichUse   = "which <go|sop>"
	WhichShort = "Print the path of the binary that would run"

	RemoveUse   = "remove <go|sop> <version>"
	RemoveShort = "Remove an installed version"

	UpdateUse   = "update [go|sop]"
	UpdateShort = "Install the latest versions and advance an unpinned sop default"

	// CLI status output.
	CLIErrorPrefix          = "error:"
	CLIInstalledFmt         = "✓ %s %s installed\n"
	CLIAlreadyInstalledFmt  = "✓ %s %s is already installed\n"
	CLIDefaultSetFmt        = "✓ %s %s is now the default\n"
	CLIFirstDefaultFmt      = "→ %s %s is the first installed version and is now the default\n"
	CLIRuntimePairedFmt     = "→ paired with go %s\n"
	CLIRuntimeInstalledFmt  = "→ installed go %s to pair with sop\n"
	CLICompatWarningFmt     = "warning: %s\n"
	CLICompatHintFmt        = "  run `sopmod install go %s` to install a compatible runtime\n"
	CLIInstallDeclinedFmt   = "%s %s was not installed; default unchanged\n"
	CLIListHeaderFmt        = "%s:\n"
	CLIListEntryFmt         = "  %s\n"
	CLIListDefaultEntryFmt  = "  %s (default)\n"
	CLIListEmptyFmt         = "  none installed; run `sopmod install %s latest`\n"
	CLIWhichPathFmt         = "%s\n"
	CLIWhichProjectFmt      = "→ %s %s requested by %s\n"
	CLIWhichUnsatisfiedFmt  = "warning: %s requests %s %s, which is not installed; using %s\n"
	CLIWhichNoDefaultFmt    = "no default go version set; using the newest installed (%s)\n"
	CLIWhichInstalledFmt    = "installed go versions: %s\n"
	CLIRemovedFmt           = "✓ %s %s removed\n"
	CLIRemovedDefaultFmt    = "→ %s %s was the default; no default is set now\n"
	CLIUpdateLatestFmt      = "✓ %s %s is already the latest\n"
	CLIUpdateInstalledFmt   = "✓ %s %s installed\n"
	CLIUpdateAdvancedFmt    = "→ default %s is now %s\n"
	CLIPathHintFmt          = "\nadd %s to your PATH to use the default sop:\n  export PATH=\"%s:$PATH\"\n"
	CLILinkCopiedFmt        = "→ symlinks unavailable; copied the binary to %s\n"
	CLIProgressFmt          = "%s %s %s / %s"
	CLIProgressUnknownFmt   = "%s %s"
	CLIProgressDoneFmt      = "%s %s\n"
	CLIResolveWorkingDirFmt = "resolve working directory: %w"

	PromptYesDefaultFmt = "%s [Y/n]: "
	PromptNoDefaultFmt  = "%s [y/N]: "
	PromptInvalidAnswer = "please answer y or n"
)
