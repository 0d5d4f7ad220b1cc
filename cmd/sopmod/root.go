package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/compat"
	"github.com/halcyonnouveau/sopmod/internal/fetch"
	"github.com/halcyonnouveau/sopmod/internal/logging"
	"github.com/halcyonnouveau/sopmod/internal/manager"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/paths"
	"github.com/halcyonnouveau/sopmod/internal/remote"
	"github.com/halcyonnouveau/sopmod/internal/resolve"
	"github.com/halcyonnouveau/sopmod/internal/store"
)

var (
	getwd          = os.Getwd
	getenv         = os.Getenv
	defaultRoot    = paths.DefaultRoot
	detectPlatform = artifact.DetectPlatform
)

type rootOptions struct {
	verbose bool
}

// app holds the collaborators shared by every command.
type app struct {
	layout  paths.Layout
	manager *manager.Manager
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.VerboseFlagUsage)

	cmd.AddCommand(
		newInstallCmd(opts),
		newListCmd(opts),
		newDefaultCmd(opts),
		newWhichCmd(opts),
		newRemoveCmd(opts),
		newUpdateCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// newApp builds the manager against the on-disk root and the remote release feeds.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	root, err := defaultRoot()
	if err != nil {
		return nil, err
	}
	layout := paths.New(root)
	if err := layout.EnsureDirs(); err != nil {
		return nil, err
	}
	platform, err := detectPlatform()
	if err != nil {
		return nil, err
	}
	log := logging.New(cmd.ErrOrStderr(), opts.verbose, getenv)
	log.Debug().Str("root", root).Str("platform", platform.String()).Msg("starting")

	client := remote.NewClient(remote.EndpointsFromEnv(getenv))
	st := store.New(layout)
	fetcher := fetch.New(fetch.Options{
		Store:    st,
		Source:   client,
		Platform: platform,
		Progress: newProgress(cmd.ErrOrStderr()),
		Logger:   log,
	})
	mgr := manager.New(manager.Options{
		Store:    st,
		Resolver: resolve.New(client, log, resolve.WithRanking(resolve.RankingFromEnv(getenv))),
		Fetcher:  fetcher,
		Matrix:   compat.Default(),
		Confirm:  newConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Logger:   log,
	})
	return &app{layout: layout, manager: mgr}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(versionString() + "\n"))
			return err
		},
	}
}

func parseKinds(args []string) ([]artifact.Kind, error) {
	if len(args) == 0 {
		return nil, nil
	}
	kind, err := artifact.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	return []artifact.Kind{kind}, nil
}
