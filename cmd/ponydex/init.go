package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ponydex/internal/config"
)

func initCmd(opts *rootOptions) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a ponydex.yaml project config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(catalogPath) == "" {
				return fmt.Errorf("--catalog is required")
			}
			return runInit(cmd, opts.configPath, catalogPath)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "./assets/json/game-data.json", "Path to the game-data JSON")
	return cmd
}

func runInit(cmd *cobra.Command, configPath, catalogPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	contents, err := config.Default(catalogPath).Marshal()
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	if err := os.WriteFile(configPath, contents, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", configPath)
	return nil
}
