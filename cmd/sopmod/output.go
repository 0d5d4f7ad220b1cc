package main

import (
	"io"

	"github.com/fatih/color"

	"github.com/halcyonnouveau/sopmod/internal/link"
	"github.com/halcyonnouveau/sopmod/internal/manager"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/paths"
)

var (
	okColor   = color.New(color.FgGreen)
	noteColor = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow)
)

// printActivation reports the runtime pairing and link state after the
// application default changed.
func printActivation(out io.Writer, layout paths.Layout, activation manager.Activation) {
	if activation.Runtime != nil {
		if activation.Runtime.Installed {
			_, _ = noteColor.Fprintf(out, messages.CLIRuntimeInstalledFmt, activation.Runtime.Version)
		} else {
			_, _ = noteColor.Fprintf(out, messages.CLIRuntimePairedFmt, activation.Runtime.Version)
		}
	}
	if activation.Link == link.Copy {
		_, _ = noteColor.Fprintf(out, messages.CLILinkCopiedFmt, layout.ActiveLink())
	}
	if !layout.OnPath(getenv("PATH")) {
		_, _ = noteColor.Fprintf(out, messages.CLIPathHintFmt, layout.BinDir(), layout.BinDir())
	}
}

func printCompatWarning(out io.Writer, warning *manager.CompatWarning) {
	if warning == nil {
		return
	}
	_, _ = warnColor.Fprintf(out, messages.CLICompatWarningFmt, warning.Message)
	if warning.RuntimeMin != "" {
		_, _ = warnColor.Fprintf(out, messages.CLICompatHintFmt, warning.RuntimeMin)
	}
}
