package main

import (
	"github.com/spf13/cobra"

	"ponydex/internal/httpapi"
)

func httpCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the catalog and inventory as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTTP(cmd, opts, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Address to listen on")
	return cmd
}

func runHTTP(cmd *cobra.Command, opts *rootOptions, addr string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	return httpapi.NewServer(a.catalog, a.inventory, a.logger).ListenAndServe(ctx, addr)
}
