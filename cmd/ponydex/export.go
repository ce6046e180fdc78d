package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ponydex/internal/catalog"
	"ponydex/internal/export"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var category string
	var format string
	var output string
	var delimiter string
	var quoteAll bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect := export.DefaultDialect
			if delimiter != "" {
				dialect.Delimiter = delimiter
			}
			if quoteAll {
				dialect.Quoting = export.QuoteAll
			}
			return runExport(cmd, opts, category, format, output, dialect)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", catalog.CategoryPonies, "Category to export (csv only)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV field delimiter")
	cmd.Flags().BoolVar(&quoteAll, "quote-all", false, "Quote every CSV field")
	return cmd
}

func runExport(cmd *cobra.Command, opts *rootOptions, category, format, output string, dialect export.Dialect) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		if err := export.InventoryCSV(w, a.catalog, a.inventory, category, dialect); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	case "json":
		return export.InventoryJSON(w, a.inventory)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
