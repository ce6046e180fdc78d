package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ponydex/internal/cloudsync"
	"ponydex/internal/config"
	"ponydex/internal/saveapi"
)

func importCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "import <friend-code>",
		Short: "Replace the inventory with a cloud save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args[0], timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up on the save API after this long")
	return cmd
}

func newAPIClient(cfg config.APIConfig) (*saveapi.Client, error) {
	return saveapi.New(saveapi.Options{
		PublicURL:   cfg.PublicURL,
		LocalURL:    cfg.LocalURL,
		Development: cfg.Development(),
		RateLimit:   cfg.RateLimit,
	})
}

func runImport(cmd *cobra.Command, opts *rootOptions, friendCode string, timeout time.Duration) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	client, err := newAPIClient(a.cfg.API)
	if err != nil {
		return err
	}

	fetchCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := cloudsync.NewImporter(client, a.inventory, a.logger).Import(fetchCtx, friendCode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d ponies and %d shops from %s.\n", result.Ponies, result.Shops, result.FriendCode)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped unknown ids: %s\n", strings.Join(result.Skipped, ", "))
	}
	if len(result.Clamped) > 0 {
		fmt.Fprintf(out, "Clamped levels for: %s\n", strings.Join(result.Clamped, ", "))
	}
	if a.inventory.Degraded() {
		return fmt.Errorf("imported save could not be written to %s", a.cfg.Storage.DSN)
	}
	return nil
}
