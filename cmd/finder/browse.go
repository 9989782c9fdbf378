package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively search and filter recipes",
	Long: `Start an interactive prompt.

  <text>          search titles for text (empty input clears the search)
  :c <Category>   show only one category (":c All" shows every category)
  :q              quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

type actionKind int

const (
	actionSearch actionKind = iota
	actionCategory
	actionQuit
)

type action struct {
	kind  actionKind
	value string
}

// parseInput maps one prompt line to an action
func parseInput(line string) action {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == ":q":
		return action{kind: actionQuit}
	case trimmed == ":c":
		return action{kind: actionCategory, value: discovery.AllCategories}
	case strings.HasPrefix(trimmed, ":c "):
		return action{kind: actionCategory, value: strings.TrimSpace(strings.TrimPrefix(trimmed, ":c "))}
	default:
		return action{kind: actionSearch, value: trimmed}
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	screen, logger, err := newScreen("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer screen.Close()

	out := cmd.OutOrStdout()
	r := newRenderer(!noColor)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var categories []string
	line.SetCompleter(func(input string) []string {
		if !strings.HasPrefix(input, ":c ") {
			return nil
		}
		prefix := strings.ToLower(strings.TrimPrefix(input, ":c "))
		var matches []string
		for _, c := range categories {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				matches = append(matches, ":c "+c)
			}
		}
		return matches
	})

	show := func(seq uint64) {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		view, err := screen.WaitView(ctx, seq)
		if errors.Is(err, discovery.ErrSuperseded) {
			return
		}
		if err != nil {
			fmt.Fprintln(out, r.Error("timed out waiting for results"))
			return
		}
		categories = view.Categories
		fmt.Fprintln(out, r.View(view))
	}

	show(screen.Start())
	for {
		input, err := line.Prompt(r.Prompt(screen.Predicate()))
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		line.AppendHistory(input)

		act := parseInput(input)
		switch act.kind {
		case actionQuit:
			return nil
		case actionCategory:
			show(screen.SetCategory(act.value))
		case actionSearch:
			show(screen.SetSearch(act.value))
		}
	}
}
