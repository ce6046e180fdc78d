package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ponydex/internal/catalog"
)

func matchCmd(opts *rootOptions) *cobra.Command {
	var category string
	var includeUnused bool
	var limit int
	cmd := &cobra.Command{
		Use:   "match <name>",
		Short: "Resolve a typed name to an entity id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, opts, args[0], category, includeUnused, limit)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", catalog.CategoryPonies, "Category to match in")
	cmd.Flags().BoolVar(&includeUnused, "include-unused", false, "Also match unused, npc and quest entities")
	cmd.Flags().IntVar(&limit, "suggestions", 5, "Number of suggestions when nothing matches")
	return cmd
}

func runMatch(cmd *cobra.Command, opts *rootOptions, name, category string, includeUnused bool, limit int) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, false)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	table, err := a.catalog.BuildNameTable(category, catalog.NameTableOptions{IncludeUnused: includeUnused})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if m, ok := table.Match(name); ok {
		kind := "name"
		if m.Alt {
			kind = "alternate name"
		}
		fmt.Fprintf(out, "%s (%s, by %s)\n", m.ID, m.Name, kind)
		return nil
	}

	suggestions := table.Suggest(name, limit)
	if len(suggestions) == 0 {
		return fmt.Errorf("no %s named %q", category, name)
	}
	fmt.Fprintf(out, "No exact match for %q. Did you mean:\n", name)
	for _, s := range suggestions {
		fmt.Fprintf(out, "  - %s (%s) score=%.2f\n", s.Name, s.ID, s.Score)
	}
	return nil
}
