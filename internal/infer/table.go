package infer

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/navgest/internal/navtree"
)

// minLabelLen is the shortest cell, in runes, treated as content.
const minLabelLen = 2

type cellKind int

const (
	cellEmpty cellKind = iota
	cellChild
	cellGrandchild
)

// grandchildMarkers are the cell prefixes that nest a cell under the
// column's current child. Indentation markers are matched on the raw cell.
var grandchildMarkers = []struct {
	prefix   string
	indented bool
}{
	{prefix: ">"},
	{prefix: "::"},
	{prefix: "|"},
	{prefix: "  ", indented: true},
	{prefix: "\t", indented: true},
}

type classifiedCell struct {
	kind  cellKind
	label string
}

func classifyCell(raw string) classifiedCell {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) < minLabelLen {
		return classifiedCell{kind: cellEmpty}
	}
	for _, m := range grandchildMarkers {
		if m.indented {
			if strings.HasPrefix(raw, m.prefix) {
				return classifiedCell{kind: cellGrandchild, label: trimmed}
			}
			continue
		}
		if strings.HasPrefix(trimmed, m.prefix) {
			label := strings.TrimSpace(strings.TrimPrefix(trimmed, m.prefix))
			return classifiedCell{kind: cellGrandchild, label: label}
		}
	}
	return classifiedCell{kind: cellChild, label: trimmed}
}

// columnState tracks the child that grandchild cells attach to.
type columnState struct {
	current  *navtree.NavItem
	children []*navtree.NavItem
}

func (s *columnState) apply(c classifiedCell) {
	switch c.kind {
	case cellEmpty:
		s.current = nil
	case cellGrandchild:
		if s.current == nil || c.label == "" {
			return
		}
		s.current.AddChild(navtree.NewItem(c.label))
	case cellChild:
		s.current = navtree.NewItem(c.label)
		s.children = append(s.children, s.current)
	}
}

// splitRows splits delimited lines into rows padded to a common width.
// Cells keep leading whitespace so indentation can mark grandchildren.
func splitRows(lines []string, delim string) []Row {
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		cells := strings.Split(l, delim)
		row := make(Row, len(cells))
		for i, c := range cells {
			row[i] = strings.TrimRight(c, " \t\r")
		}
		rows = append(rows, row)
	}
	return padRows(rows)
}

func padRows(rows []Row) []Row {
	width := maxWidth(rows)
	out := make([]Row, len(rows))
	for i, r := range rows {
		padded := make(Row, width)
		copy(padded, r)
		out[i] = padded
	}
	return out
}

func maxWidth(rows []Row) int {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// parseTable treats row 0 as headers, one top-level item per header of at
// least two characters, and reads each column top to bottom.
func parseTable(rows []Row) []*navtree.NavItem {
	if len(rows) == 0 {
		return nil
	}
	rows = padRows(rows)
	headers := rows[0]

	var items []*navtree.NavItem
	for col, h := range headers {
		label := strings.TrimSpace(h)
		if utf8.RuneCountInString(label) < minLabelLen {
			continue
		}
		var state columnState
		for _, row := range rows[1:] {
			state.apply(classifyCell(row[col]))
		}
		item := navtree.NewItem(label)
		if len(state.children) > 0 {
			item.Children = state.children
		}
		items = append(items, item)
	}
	return items
}

// parseTableColumns is the lower-fidelity fallback: each column's first
// non-empty cell is the parent and every other non-empty cell a flat child.
func parseTableColumns(rows []Row) []*navtree.NavItem {
	width := maxWidth(rows)
	var items []*navtree.NavItem
	for col := 0; col < width; col++ {
		var parent *navtree.NavItem
		for _, row := range rows {
			if col >= len(row) {
				continue
			}
			text := strings.TrimSpace(row[col])
			if text == "" {
				continue
			}
			if parent == nil {
				parent = navtree.NewItem(text)
				continue
			}
			parent.AddChild(navtree.NewItem(text))
		}
		if parent != nil {
			items = append(items, parent)
		}
	}
	return items
}
