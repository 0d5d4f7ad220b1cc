package main

import (
	"github.com/spf13/cobra"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

var newAppFunc = newApp

func newInstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := artifact.ParseKind(args[0])
			if err != nil {
				return err
			}
			spec, err := version.ParseSpecifier(args[1])
			if err != nil {
				return err
			}
			a, err := newAppFunc(cmd, opts)
			if err != nil {
				return err
			}
			result, err := a.manager.Install(cmd.Context(), kind, spec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.AlreadyInstalled {
				_, _ = okColor.Fprintf(out, messages.CLIAlreadyInstalledFmt, kind, result.Version)
			} else {
				_, _ = okColor.Fprintf(out, messages.CLIInstalledFmt, kind, result.Version)
			}
			printCompatWarning(cmd.ErrOrStderr(), result.Warning)
			if result.Default != nil {
				_, _ = noteColor.Fprintf(out, messages.CLIFirstDefaultFmt, kind, result.Version)
				printActivation(out, a.layout, *result.Default)
			}
			return nil
		},
	}
}
