package messages

// Orchestrator messages.
const (
	// ManagerRuntimeDefaultDerivedFmt rejects setting the runtime default directly.
	ManagerRuntimeDefaultDerivedFmt = "%s versions are managed automatically by sop; use `sopmod install go <version>` to install one"
	ManagerInstallPromptFmt         = "%s %s is not installed. Install it?"
	ManagerNotInstalledNoPromptFmt  = "%s %s is not installed; run `sopmod install` first"
	ManagerBinaryMissingFmt         = "%s %s is installed but its binary is missing at %s"
	ManagerDefaultMissingFmt        = "%s %s is set as default but not found at %s"
	ManagerNoneInstalledFmt         = "no %s versions installed; run `sopmod install %s latest`"
	ManagerNoDefaultFmt             = "no default %s version set; run `sopmod default %s %s`"
	ManagerRemoveLinkFmt            = "remove active link %s: %w"
)
