// Package render formats inferred navigation for terminals and files.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/dgallion1/navgest/internal/navtree"
)

var (
	// logoStyle for the tree root
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// labelStyle for item labels
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// hrefStyle for muted hrefs
	hrefStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// enumStyle for tree branches
	enumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			PaddingRight(1)

	// warnStyle for diagnostics
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Tree renders the primary navigation as a box-drawn tree rooted at the
// logo text. Secondary items, when present, follow under their own root.
func Tree(cfg navtree.NavigationConfig) string {
	var b strings.Builder
	b.WriteString(buildTree(logoStyle.Render(cfg.LogoText), cfg.PrimaryItems).String())
	if len(cfg.SecondaryItems) > 0 {
		b.WriteString("\n")
		b.WriteString(buildTree(logoStyle.Render("Secondary"), cfg.SecondaryItems).String())
	}
	if len(cfg.PrimaryItems) == 0 && len(cfg.SecondaryItems) == 0 {
		b.WriteString("\n")
		b.WriteString(hrefStyle.Render("(no navigation items)"))
	}
	return b.String()
}

// Diagnostic renders an advisory message for stderr.
func Diagnostic(msg string) string {
	return warnStyle.Render("warning: " + msg)
}

func buildTree(root string, items []*navtree.NavItem) *tree.Tree {
	t := tree.Root(root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle)
	for _, it := range items {
		if it == nil {
			continue
		}
		t.Child(itemNode(it))
	}
	return t
}

func itemNode(it *navtree.NavItem) any {
	value := labelStyle.Render(it.Label)
	if it.Href != "" {
		value += "  " + hrefStyle.Render(it.Href)
	}
	if len(it.Children) == 0 {
		return value
	}
	sub := tree.Root(value).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle)
	for _, c := range it.Children {
		if c == nil {
			continue
		}
		sub.Child(itemNode(c))
	}
	return sub
}
