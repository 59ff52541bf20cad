package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one row of a package tree: a subpackage at level 1 or a
// service at level 2.
type TreeItem struct {
	Title  string
	Code   string // short reference shown before the title; empty hides it
	Level  int
	IsLast bool
	Done   bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree draws items with box connectors and aligns every Detail
// badge to a single column after the widest label.
func RenderTree(items []TreeItem) string {
	labels := make([]string, len(items))
	width := 0
	for i, item := range items {
		labels[i] = treePrefix(item) + treeLabel(item)
		width = max(width, lipgloss.Width(labels[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(labels[i])
		if item.Detail != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(labels[i])+2))
			b.WriteString(StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func treePrefix(item TreeItem) string {
	if item.Level <= 0 {
		return ""
	}
	connector := treeBranch
	if item.IsLast {
		connector = treeCorner
	}
	return strings.Repeat(treePipe, item.Level-1) + connector
}

// treeLabel marks finished services with a green check and dims them.
// Subpackage rows are bold amber.
func treeLabel(item TreeItem) string {
	title := item.Title
	if item.Code != "" {
		title = StyleDim.Render(item.Code+" ") + title
	}
	switch {
	case item.Done:
		return StyleGreen.Render("✔ ") + Dim(title)
	case item.Level == 1:
		return StyleYellowBold.Render(title)
	default:
		return title
	}
}
