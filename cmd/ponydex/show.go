package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ponydex/internal/catalog"
)

func showCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Display an entity and its attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args[0], category)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to disambiguate")
	return cmd
}

func runShow(cmd *cobra.Command, opts *rootOptions, arg, category string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	e, err := a.resolveEntity(arg, category)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lang := a.catalog.Language()
	fmt.Fprintf(out, "Name: %s\n", a.catalog.DisplayName(e))
	fmt.Fprintf(out, "ID: %s\n", e.ID)
	fmt.Fprintf(out, "Category: %s\n", a.catalog.CategoryName(e.Category))
	fmt.Fprintf(out, "Index: %d\n", e.Index)
	if alts := e.AltNamesFor(lang); len(alts) > 0 {
		fmt.Fprintf(out, "Also known as: %s\n", strings.Join(alts, ", "))
	}
	if e.Location != "" {
		fmt.Fprintf(out, "Location: %s\n", a.catalog.LocationName(e.Location))
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(out, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	printAttributes(out, a.catalog, e)

	if rec, ok := a.inventory.GetInfo(e.ID); ok && rec.Owned {
		if rec.Leveled {
			fmt.Fprintf(out, "Owned: yes (%d stars)\n", rec.Level)
		} else {
			fmt.Fprintln(out, "Owned: yes")
		}
	}
	if note := a.inventory.Note(e.ID); note != "" {
		fmt.Fprintf(out, "Note: %s\n", note)
	}
	if desc := e.DescriptionFor(lang); desc != "" {
		fmt.Fprintf(out, "\n%s\n", desc)
	}
	return nil
}

func printAttributes(out io.Writer, cat *catalog.Catalog, e *catalog.Entity) {
	name := func(id string) string {
		if ref := cat.Get(id, ""); ref != nil {
			return cat.DisplayName(ref)
		}
		return id
	}
	names := func(ids []string) string {
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, name(id))
		}
		return strings.Join(parts, ", ")
	}

	switch attrs := e.Attributes.(type) {
	case *catalog.PonyAttributes:
		if attrs.House != "" {
			fmt.Fprintf(out, "House: %s\n", name(attrs.House))
		}
		if attrs.Pro != "" {
			quest := cat.QuestName(attrs.Pro)
			if quest == "" {
				quest = attrs.Pro
			}
			fmt.Fprintf(out, "Pro: %s\n", quest)
		}
		if attrs.Changeling.ID != "" {
			fmt.Fprintf(out, "Variant of: %s\n", name(attrs.Changeling.ID))
		}
		if len(attrs.Group) > 0 {
			fmt.Fprintf(out, "Group: %s\n", names(attrs.Group))
		}
		if attrs.UnlockLevel > 0 {
			fmt.Fprintf(out, "Unlock level: %d\n", attrs.UnlockLevel)
		}
	case *catalog.HouseAttributes:
		if len(attrs.Residents) > 0 {
			fmt.Fprintf(out, "Residents: %s\n", names(attrs.Residents))
		}
		if attrs.Build.Time > 0 {
			fmt.Fprintf(out, "Build: %ds, %d XP\n", attrs.Build.Time, attrs.Build.XP)
		}
	case *catalog.ShopAttributes:
		if len(attrs.Residents) > 0 {
			fmt.Fprintf(out, "Residents: %s\n", names(attrs.Residents))
		}
		if product := attrs.Product.NameFor(cat.Language()); product != "" {
			fmt.Fprintf(out, "Product: %s (%ds, %d bits)\n", product, attrs.Product.Time, attrs.Product.Bits)
		}
	case *catalog.DecorAttributes:
		if attrs.Pro.IsPro {
			fmt.Fprintf(out, "Pro decor: size %d\n", attrs.Pro.Size)
		}
		if attrs.UnlockLevel > 0 {
			fmt.Fprintf(out, "Unlock level: %d\n", attrs.UnlockLevel)
		}
	}
}
