package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

func newDefaultCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DefaultUse,
		Short: messages.DefaultShort,
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
			result, err := a.manager.SetDefault(cmd.Context(), kind, spec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Declined {
				_, _ = fmt.Fprintf(out, messages.CLIInstallDeclinedFmt, kind, result.Version)
				return nil
			}
			if result.Installed {
				_, _ = okColor.Fprintf(out, messages.CLIInstalledFmt, kind, result.Version)
			}
			_, _ = okColor.Fprintf(out, messages.CLIDefaultSetFmt, kind, result.Version)
			if result.Activation != nil {
				printActivation(out, a.layout, *result.Activation)
			}
			return nil
		},
	}
}
