package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/manager"
	"github.com/halcyonnouveau/sopmod/internal/messages"
)

func newWhichCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.WhichUse,
		Short: messages.WhichShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := artifact.ParseKind(args[0])
			if err != nil {
				return err
			}
			cwd, err := getwd()
			if err != nil {
				return fmt.Errorf(messages.CLIResolveWorkingDirFmt, err)
			}
			a, err := newAppFunc(cmd, opts)
			if err != nil {
				return err
			}
			result, err := a.manager.Which(kind, cwd)
			if err != nil {
				return err
			}

			// Notes go to stderr so stdout stays a bare path for scripts.
			stderr := cmd.ErrOrStderr()
			switch {
			case result.Source == manager.SourceProject:
				_, _ = noteColor.Fprintf(stderr, messages.CLIWhichProjectFmt, kind, result.Version, result.ProjectFile)
			case result.Unsatisfied != "":
				_, _ = warnColor.Fprintf(stderr, messages.CLIWhichUnsatisfiedFmt, result.ProjectFile, kind, result.Unsatisfied, result.Version)
			}
			if result.Source == manager.SourceNewest {
				_, _ = noteColor.Fprintf(stderr, messages.CLIWhichNoDefaultFmt, result.Version)
				_, _ = fmt.Fprintf(stderr, messages.CLIWhichInstalledFmt, strings.Join(result.Installed, ", "))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.CLIWhichPathFmt, result.Path)
			return err
		},
	}
}
