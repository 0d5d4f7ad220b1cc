package main

import (
	"github.com/spf13/cobra"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.RemoveUse,
		Short: messages.RemoveShort,
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
			result, err := a.manager.Remove(cmd.Context(), kind, spec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = okColor.Fprintf(out, messages.CLIRemovedFmt, kind, result.Version)
			if result.ClearedDefault {
				_, _ = noteColor.Fprintf(out, messages.CLIRemovedDefaultFmt, kind, result.Version)
			}
			return nil
		},
	}
}
