package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Print the recipes one author has shared",
	Example: `  finder profile chef
  finder profile chef --category Dessert`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	screen, logger, err := newScreen(args[0])
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

	r := newRenderer(!noColor)
	fmt.Fprintln(cmd.OutOrStdout(), r.muted.Render(fmt.Sprintf("Recipes by %s", args[0])))
	fmt.Fprintln(cmd.OutOrStdout(), r.View(view))
	if view.Status == discovery.StatusError {
		return fmt.Errorf("retrieval failed: %s", view.Error)
	}
	return nil
}
