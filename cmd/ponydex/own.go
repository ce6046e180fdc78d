package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func ownCmd(opts *rootOptions) *cobra.Command {
	var category string
	var level int
	cmd := &cobra.Command{
		Use:   "own <id|name>...",
		Short: "Mark entities as owned",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lvl *int
			if cmd.Flags().Changed("level") {
				lvl = &level
			}
			return runSetOwned(cmd, opts, args, category, true, lvl)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to disambiguate names")
	cmd.Flags().IntVar(&level, "level", 0, "Star level from 0 to 5")
	return cmd
}

func disownCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "disown <id|name>...",
		Short: "Remove entities from the inventory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetOwned(cmd, opts, args, category, false, nil)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to disambiguate names")
	return cmd
}

func runSetOwned(cmd *cobra.Command, opts *rootOptions, args []string, category string, owned bool, level *int) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	out := cmd.OutOrStdout()
	for _, arg := range args {
		e, err := a.resolveEntity(arg, category)
		if err != nil {
			return err
		}
		if err := a.inventory.SetOwned(ctx, e.ID, owned, level); err != nil {
			return err
		}
		verb := "Owned"
		if !owned {
			verb = "Disowned"
		}
		fmt.Fprintf(out, "%s %s (%s).\n", verb, a.catalog.DisplayName(e), e.ID)
	}
	if a.inventory.Degraded() {
		return fmt.Errorf("changes could not be saved to %s", a.cfg.Storage.DSN)
	}
	return nil
}
