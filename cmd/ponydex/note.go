package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func noteCmd(opts *rootOptions) *cobra.Command {
	var clearNote bool
	cmd := &cobra.Command{
		Use:   "note <id|name> [text...]",
		Short: "Show, set or clear the note on an entity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNote(cmd, opts, args[0], args[1:], clearNote)
		},
	}
	cmd.Flags().BoolVar(&clearNote, "clear", false, "Remove the note")
	return cmd
}

func runNote(cmd *cobra.Command, opts *rootOptions, arg string, words []string, clearNote bool) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, opts, true)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	e, err := a.resolveEntity(arg, "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(words) == 0 && !clearNote {
		note := a.inventory.Note(e.ID)
		if note == "" {
			fmt.Fprintf(out, "No note for %s.\n", e.ID)
			return nil
		}
		fmt.Fprintln(out, note)
		return nil
	}

	text := ""
	if !clearNote {
		text = strings.Join(words, " ")
	}
	return a.inventory.SetNote(ctx, e.ID, text)
}
