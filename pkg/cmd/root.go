package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/birdayz/transcode/pkg/app"
	"github.com/birdayz/transcode/pkg/cmd/batch"
	"github.com/birdayz/transcode/pkg/cmd/completion"
	tcconfig "github.com/birdayz/transcode/pkg/cmd/config"
	"github.com/birdayz/transcode/pkg/cmd/schemes"
	"github.com/birdayz/transcode/pkg/cmd/transform"
)

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(app.New(), version, commit)
	return root.ExecuteContext(ctx)
}

// NewRootCommand assembles the command tree around a.
func NewRootCommand(a *app.App, version, commit string) *cobra.Command {
	root := &cobra.Command{
		Use:          "transcode",
		Short:        "Encode and decode text with base64, url, hex and gzip",
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.OutWriter = cmd.OutOrStdout()
			a.ErrWriter = cmd.ErrOrStderr()
			a.InReader = cmd.InOrStdin()

			if a.OutWriter != os.Stdout {
				a.ColorableOut = a.OutWriter
			}

			return a.InitConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.Logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.CfgFile, "config", "", "config file (default is $HOME/.transcode/config)")
	root.PersistentFlags().StringVarP(&a.ProfileOverride, "profile", "p", "", "set a temporary current profile")
	root.PersistentFlags().StringVar(&a.LogLevelFlag, "log-level", "", "log level: debug, info, warn, error (default warn)")

	if err := root.RegisterFlagCompletionFunc("profile", a.ValidProfileArgs); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	root.AddCommand(
		transform.NewEncodeCommand(a),
		transform.NewDecodeCommand(a),
		schemes.NewCommand(a),
		batch.NewCommand(a),
		tcconfig.NewCommand(a),
		completion.NewCommand(root, a),
	)

	a.Root = root
	return root
}
