package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ponydex/internal/config"
)

func resetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved inventory",
		Long:  "Delete the saved inventory. This also clears a save that can no longer be decoded.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the save without --yes")
			}
			return runReset(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting the save")
	return cmd
}

// runReset works on the store directly so that a corrupt save, which the
// inventory refuses to open, can still be removed.
func runReset(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	cfg, err := config.LoadProjectConfig(opts.configPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg.Storage.DSN)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	if err := st.Delete(ctx, cfg.Storage.Key); err != nil {
		return fmt.Errorf("deleting save %q: %w", cfg.Storage.Key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted save %q.\n", cfg.Storage.Key)
	return nil
}
