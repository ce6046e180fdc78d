package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	language   string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "ponydex",
		Short: "Catalog browser and collection tracker for the pony game",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
	}
	root.Version = buildVersion()
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "ponydex.yaml", "Path to the project config")
	root.PersistentFlags().StringVar(&opts.language, "lang", "", "Catalog language, overrides catalog.language")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(initCmd(opts))
	root.AddCommand(searchCmd(opts))
	root.AddCommand(showCmd(opts))
	root.AddCommand(matchCmd(opts))
	root.AddCommand(ownCmd(opts))
	root.AddCommand(disownCmd(opts))
	root.AddCommand(noteCmd(opts))
	root.AddCommand(statsCmd(opts))
	root.AddCommand(importCmd(opts))
	root.AddCommand(exportCmd(opts))
	root.AddCommand(shopCmd(opts))
	root.AddCommand(validateCmd(opts))
	root.AddCommand(resetCmd(opts))
	root.AddCommand(serveCmd(opts))
	root.AddCommand(httpCmd(opts))
	root.AddCommand(browseCmd(opts))
	root.AddCommand(guessCmd(opts))
	root.AddCommand(versionCmd())
	return root
}
