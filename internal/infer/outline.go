package infer

import (
	"regexp"
	"strings"

	"github.com/dgallion1/navgest/internal/navtree"
)

const indentWidth = 2

var listMarker = regexp.MustCompile(`^([ \t]*)[-*]\s+`)

// stripListMarkers removes a leading "-" or "*" bullet from every line while
// keeping its indentation, so markdown nesting is read from indentation only.
func stripListMarkers(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = listMarker.ReplaceAllString(l, "$1")
	}
	return out
}

// indentLevel counts leading whitespace, a tab standing for two spaces.
func indentLevel(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += indentWidth
		default:
			return width / indentWidth
		}
	}
	return width / indentWidth
}

// parseOutline builds a tree from indentation. ancestors[0] is the current
// root and ancestors[1] the current child; anything indented deeper than a
// child becomes a grandchild, and lines with no ancestor to attach to are
// dropped.
func parseOutline(lines []string) []*navtree.NavItem {
	var (
		items     []*navtree.NavItem
		ancestors [2]*navtree.NavItem
	)
	for _, line := range lines {
		label := strings.TrimSpace(line)
		if label == "" {
			continue
		}
		item := navtree.NewItem(label)

		switch level := indentLevel(line); {
		case level == 0:
			items = append(items, item)
			ancestors = [2]*navtree.NavItem{item, nil}
		case level == 1:
			if ancestors[0] == nil {
				continue
			}
			ancestors[0].AddChild(item)
			ancestors[1] = item
		default:
			if ancestors[1] == nil {
				continue
			}
			ancestors[1].AddChild(item)
		}
	}
	return items
}
