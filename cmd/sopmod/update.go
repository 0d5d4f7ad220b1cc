package main

import (
	"github.com/spf13/cobra"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.UpdateUse,
		Short: messages.UpdateShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}
			a, err := newAppFunc(cmd, opts)
			if err != nil {
				return err
			}
			// Kinds that finished before a failure are still reported.
			results, updateErr := a.manager.Update(cmd.Context(), kinds...)
			out := cmd.OutOrStdout()
			for _, result := range results {
				if result.AlreadyLatest {
					_, _ = okColor.Fprintf(out, messages.CLIUpdateLatestFmt, result.Kind, result.Version)
				} else {
					_, _ = okColor.Fprintf(out, messages.CLIUpdateInstalledFmt, result.Kind, result.Version)
				}
				if result.Advanced != nil {
					_, _ = noteColor.Fprintf(out, messages.CLIUpdateAdvancedFmt, result.Kind, result.Version)
					printActivation(out, a.layout, *result.Advanced)
				}
			}
			return updateErr
		},
	}
}
