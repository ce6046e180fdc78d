package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ponydex/internal/catalog"
	"ponydex/internal/search"
)

func searchCmd(opts *rootOptions) *cobra.Command {
	var category string
	var filters string
	var sortKey string
	var reverse bool
	var owned bool
	var limit int
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "List catalog entities matching a name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) > 0 {
				text = args[0]
			}
			return runSearch(cmd, opts, search.Query{
				Category: category,
				Text:     text,
				Sort:     sortKey,
				Reverse:  reverse,
			}, filters, cmd.Flags().Changed("filters"), owned, limit)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", catalog.CategoryPonies, "Category to search")
	cmd.Flags().StringVar(&filters, "filters", "", "Dot separated filters to enable, e.g. playable.pro")
	cmd.Flags().StringVar(&sortKey, "sort", search.SortIndex, "Sort by index or name")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Reverse the sort order")
	cmd.Flags().BoolVar(&owned, "owned", false, "Only list owned entities")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *rootOptions, q search.Query, filters string, filtersSet, owned bool, limit int) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, owned)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	q.Filters = search.DefaultFilters(q.Category)
	if filtersSet {
		q.Filters, err = search.ParseFilterList(q.Category, filters)
		if err != nil {
			return err
		}
	}

	var inv search.Inventory
	if owned {
		inv = a.inventory
		q.Scope = search.ScopeInventory
	}
	ids, err := search.NewEngine(a.catalog, inv).ComputeVisibleIDs(q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No matches found.")
		return nil
	}
	total := len(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	for _, id := range ids {
		e := a.catalog.Get(id, q.Category)
		line := fmt.Sprintf("%4d  %s (%s)", e.Index, a.catalog.DisplayName(e), e.ID)
		if len(e.Tags) > 0 {
			line += " [" + strings.Join(e.Tags, ", ") + "]"
		}
		fmt.Fprintln(out, line)
	}
	if total > len(ids) {
		fmt.Fprintf(out, "... %d more\n", total-len(ids))
	}
	return nil
}
