package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ponydex/internal/guesser"
)

func statsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}
}

func runStats(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	s := a.inventory.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ponies: %d/%d (%d at max level)\n", s.Ponies, s.PoniesTotal, s.MaxLevelPonies)
	fmt.Fprintf(out, "Houses: %d/%d\n", s.Houses, s.HousesTotal)
	fmt.Fprintf(out, "Shops: %d/%d\n", s.Shops, s.ShopsTotal)
	if s.JoinDate != "" {
		fmt.Fprintf(out, "Joined: %s\n", s.JoinDate)
	}
	if s.TotalPlaytime > 0 {
		fmt.Fprintf(out, "Playtime: %s\n", guesser.FormatElapsed(time.Duration(s.TotalPlaytime*float64(time.Second))))
	}
	return nil
}
