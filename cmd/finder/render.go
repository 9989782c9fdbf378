package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
)

// badgeColors mirrors the web badge palette with terminal colors
var badgeColors = map[string]lipgloss.Color{
	"Italian": lipgloss.Color("75"),
	"Indian":  lipgloss.Color("105"),
	"Salad":   lipgloss.Color("87"),
	"Dessert": lipgloss.Color("117"),
	"Mexican": lipgloss.Color("79"),
	"Asian":   lipgloss.Color("69"),
}

const defaultBadgeColor = lipgloss.Color("245")

type renderer struct {
	color  bool
	card   lipgloss.Style
	title  lipgloss.Style
	muted  lipgloss.Style
	label  lipgloss.Style
	errMsg lipgloss.Style
	prompt lipgloss.Style
}

func newRenderer(color bool) *renderer {
	r := &renderer{
		color:  color,
		card:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(72),
		title:  lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle().Faint(true),
		label:  lipgloss.NewStyle().Underline(true),
		errMsg: lipgloss.NewStyle().Bold(true),
		prompt: lipgloss.NewStyle().Bold(true),
	}
	if color {
		r.card = r.card.BorderForeground(lipgloss.Color("240"))
		r.errMsg = r.errMsg.Foreground(lipgloss.Color("196"))
		r.prompt = r.prompt.Foreground(lipgloss.Color("39"))
	}
	return r
}

func (r *renderer) badge(category string) string {
	if !r.color {
		return "[" + category + "]"
	}
	c, ok := badgeColors[category]
	if !ok {
		c = defaultBadgeColor
	}
	return lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0")).Background(c).Render(category)
}

// Card renders one recipe card
func (r *renderer) Card(c discovery.Card) string {
	var b strings.Builder
	b.WriteString(r.title.Render(c.Title) + "  " + r.badge(c.Category) + "\n")
	if c.Description != "" {
		b.WriteString(c.Description + "\n")
	}
	b.WriteString(r.muted.Render("image: "+c.ImageURL) + "\n")
	if c.CreatedBy != "" {
		b.WriteString(r.muted.Render("by "+c.CreatedBy) + "\n")
	}

	b.WriteString("\n" + r.label.Render("Ingredients") + "\n")
	for _, ing := range c.Ingredients {
		b.WriteString("  - " + ing + "\n")
	}
	b.WriteString("\n" + r.label.Render("Instructions") + "\n")
	b.WriteString(c.Instructions)

	return r.card.Render(b.String())
}

// View renders a whole discovery view
func (r *renderer) View(v discovery.View) string {
	switch v.Status {
	case discovery.StatusLoading:
		return r.muted.Render(discovery.LoadingMessage)
	case discovery.StatusError:
		return r.Error(v.Error)
	}

	var b strings.Builder
	b.WriteString(r.muted.Render("Categories: "+strings.Join(v.Categories, " | ")) + "\n")
	if v.Empty {
		b.WriteString(v.Message)
		return b.String()
	}

	b.WriteString(r.muted.Render(fmt.Sprintf("%d of %d recipes", len(v.Recipes), v.Total)) + "\n")
	cards := make([]string, 0, len(v.Recipes))
	for _, c := range v.Recipes {
		cards = append(cards, r.Card(c))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	return b.String()
}

// Error renders an error line
func (r *renderer) Error(msg string) string {
	return r.errMsg.Render("error: " + msg)
}

// Prompt renders the browse prompt for the current predicate
func (r *renderer) Prompt(p discovery.Predicate) string {
	label := p.Category
	if p.Search != "" {
		label += " /" + p.Search
	}
	// liner measures the prompt by runes, so it stays unstyled
	return label + "> "
}
