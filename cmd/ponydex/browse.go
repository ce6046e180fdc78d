package main

import (
	"github.com/spf13/cobra"

	"ponydex/internal/catalog"
	"ponydex/internal/page"
	"ponydex/internal/tui"
)

func browseCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse the catalog in the terminal",
		Long:  "Browse the catalog in the terminal. path is a page path such as search/houses, inventory/ponies or ponies/Pony_Rarity.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := []string{"search", catalog.CategoryPonies}
			if len(args) > 0 {
				start = page.ParsePath(args[0])
			}
			return runTUI(cmd, opts, start)
		},
	}
	return cmd
}

func guessCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "guess",
		Short: "Play the guess-the-pony game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, []string{"guesser"})
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions, start []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	m, err := tui.NewModel(ctx, a.catalog, a.inventory, start)
	if err != nil {
		return err
	}
	return tui.Run(ctx, m)
}
