// Package infer reconstructs a navigation tree from loosely structured menu
// descriptions: delimited tables, indented outlines, markdown lists and
// positioned text recovered from paginated documents.
//
// Every entry point is synchronous and pure. Inference never fails: ambiguous
// or empty input yields a structurally valid, possibly empty configuration
// with an advisory diagnostic.
package infer

import (
	"errors"
	"strings"

	"github.com/dgallion1/navgest/internal/navtree"
)

// Diagnostics attached to degenerate results.
const (
	DiagNoTextContent     = "No content found in the text."
	DiagNoDocumentContent = "No content found in the document."
	DiagNoPages           = "Could not extract text from any page of the document."
	DiagNoTable           = "No table structure found."
	DiagNoStructure       = "No navigation structure found."
)

// Strategy names the parser that produced a result's items.
type Strategy string

const (
	StrategyNone         Strategy = "none"
	StrategyTable        Strategy = "table"
	StrategyTableColumns Strategy = "table_columns"
	StrategyOutline      Strategy = "outline"
	StrategyMarkdown     Strategy = "markdown"
	StrategyHeadings     Strategy = "headings"
)

// Options tune document inference.
type Options struct {
	// RowTolerance is the vertical distance within which fragments share a
	// row. Zero means DefaultRowTolerance.
	RowTolerance float64
}

// Result is the outcome of one inference.
type Result struct {
	Config     navtree.NavigationConfig `json:"config"`
	Diagnostic string                   `json:"diagnostic,omitempty"`
	Strategy   Strategy                 `json:"strategy"`
}

// Degraded reports whether the result carries a diagnostic.
func (r Result) Degraded() bool {
	return r.Diagnostic != ""
}

// FromText infers navigation from a newline-delimited text blob.
func FromText(text string) Result {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return degraded(DiagNoTextContent)
	}

	switch format := Detect(lines); format {
	case FormatTab, FormatComma:
		return fromRows(splitRows(lines, format.Delimiter()))
	case FormatMarkdown:
		if items := parseOutline(stripListMarkers(lines)); len(items) > 0 {
			return normalize(items, StrategyMarkdown)
		}
	default:
		if items := parseOutline(lines); len(items) > 0 {
			return normalize(items, StrategyOutline)
		}
	}

	if items := parseHeadings(lines); len(items) > 0 {
		return normalize(items, StrategyHeadings)
	}
	return degraded(DiagNoStructure)
}

// FromOutline infers navigation from an indented outline whose structure
// is already known, skipping format detection. Nesting is two spaces (or a
// tab) per level.
func FromOutline(text string) Result {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return degraded(DiagNoTextContent)
	}
	if items := parseOutline(lines); len(items) > 0 {
		return normalize(items, StrategyOutline)
	}
	if items := parseHeadings(lines); len(items) > 0 {
		return normalize(items, StrategyHeadings)
	}
	return degraded(DiagNoStructure)
}

// FromPages infers navigation from the positioned text of a paginated
// document. Pages that cannot be read are skipped.
func FromPages(pages []Page, opts Options) Result {
	rows, err := ReconstructRows(pages, opts.RowTolerance)
	if errors.Is(err, ErrNoPages) {
		return degraded(DiagNoPages)
	}
	if len(rows) == 0 {
		return degraded(DiagNoDocumentContent)
	}

	if maxWidth(rows) > 1 {
		return fromRows(rows)
	}
	if items := parseHeadings(rowLines(rows)); len(items) > 0 {
		return normalize(items, StrategyHeadings)
	}
	return degraded(DiagNoTable)
}

// fromRows runs the delimited pipeline: header table, then per-column
// groups, then heading detection over the flattened rows.
func fromRows(rows []Row) Result {
	if items := parseTable(rows); len(items) > 0 {
		return normalize(items, StrategyTable)
	}
	if items := parseTableColumns(rows); len(items) > 0 {
		return normalize(items, StrategyTableColumns)
	}
	if items := parseHeadings(rowLines(rows)); len(items) > 0 {
		return normalize(items, StrategyHeadings)
	}
	return degraded(DiagNoTable)
}

// normalize places parsed items into a fresh baseline configuration.
func normalize(items []*navtree.NavItem, strategy Strategy) Result {
	cfg := navtree.EmptyBaseline()
	if len(items) > 0 {
		cfg.PrimaryItems = items
	}
	return Result{Config: cfg, Strategy: strategy}
}

func degraded(diag string) Result {
	return Result{
		Config:     navtree.EmptyBaseline(),
		Diagnostic: diag,
		Strategy:   StrategyNone,
	}
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func rowLines(rows []Row) []string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		var cells []string
		for _, c := range r {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " "))
		}
	}
	return lines
}
