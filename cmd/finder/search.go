package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one query and print the matching recipes",
	Example: `  finder search --search taco
  finder search --category Asian`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	screen, logger, err := newScreen("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer screen.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	view, err := screen.WaitView(ctx, screen.Set(searchFlag, categoryFlag))
	if err != nil {
		return fmt.Errorf("no results before timeout: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), newRenderer(!noColor).View(view))
	if view.Status == discovery.StatusError {
		return fmt.Errorf("retrieval failed: %s", view.Error)
	}
	return nil
}
