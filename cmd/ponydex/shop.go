package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ponydex/internal/config"
)

func shopCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Print the current in-game shop sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShop(cmd, opts, timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up on the save API after this long")
	return cmd
}

func runShop(cmd *cobra.Command, opts *rootOptions, timeout time.Duration) error {
	ctx := cmd.Context()

	cfg, err := config.LoadProjectConfig(opts.configPath)
	if err != nil {
		return err
	}
	client, err := newAPIClient(cfg.API)
	if err != nil {
		return err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	sales, err := client.GetShop(ctx)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, sales, "", "  "); err != nil {
		return fmt.Errorf("formatting shop: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
	return nil
}
