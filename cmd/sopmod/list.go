package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
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
			listings, err := a.manager.List(kinds...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, listing := range listings {
				_, _ = fmt.Fprintf(out, messages.CLIListHeaderFmt, listing.Kind)
				if len(listing.Versions) == 0 {
					_, _ = fmt.Fprintf(out, messages.CLIListEmptyFmt, listing.Kind)
					continue
				}
				for _, v := range listing.Versions {
					if v == listing.Default {
						_, _ = okColor.Fprintf(out, messages.CLIListDefaultEntryFmt, v)
						continue
					}
					_, _ = fmt.Fprintf(out, messages.CLIListEntryFmt, v)
				}
			}
			return nil
		},
	}
}
