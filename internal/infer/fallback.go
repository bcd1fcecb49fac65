package infer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/navgest/internal/navtree"
)

const maxHeadingLen = 50

var headingLine = regexp.MustCompile(`^[A-Z][A-Za-z &]*$`)

func isHeading(line string) bool {
	return utf8.RuneCountInString(line) < maxHeadingLen && headingLine.MatchString(line)
}

// parseHeadings is the last resort for unstructured lines. The first
// heading-like line becomes the parent and every later line is attached to
// it as a flat child, so at most one top-level item is produced. Lines
// before the first heading are dropped.
//
// Whether later headings should open new parents is undecided; the single
// parent is kept until that is settled.
func parseHeadings(lines []string) []*navtree.NavItem {
	var parent *navtree.NavItem
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if parent == nil {
			if isHeading(text) {
				parent = navtree.NewItem(text)
			}
			continue
		}
		parent.AddChild(navtree.NewItem(text))
	}
	if parent == nil {
		return nil
	}
	return []*navtree.NavItem{parent}
}
