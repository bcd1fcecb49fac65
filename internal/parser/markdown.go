package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings and list
// items become outline lines nested by heading level and list depth;
// paragraphs are ignored. Front matter may set logo_text, show_search and
// show_secondary_nav.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Source, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	src := &Source{Title: trimExt(filename)}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &src.Meta)
	if err != nil {
		// Malformed front matter: treat the whole file as body.
		body = raw
		src.Meta = Meta{}
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	var headings []*ast.Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, h)
		}
	}

	// A lone top-level heading is the document title, not a menu item.
	minLevel := minHeadingLevel(headings, nil)
	var title *ast.Heading
	if countLevel(headings, minLevel) == 1 && len(headings) > 1 {
		title = firstAtLevel(headings, minLevel)
		src.Title = inlineText(title, body)
		minLevel = minHeadingLevel(headings, title)
	}

	var lines []string
	depth := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node == title {
				continue
			}
			level := node.Level - minLevel
			if t := inlineText(node, body); t != "" {
				lines = append(lines, indentLine(level, t))
			}
			depth = level + 1
		case *ast.List:
			lines = appendList(lines, node, depth, body)
		}
	}

	if len(lines) == 0 {
		src.Text = string(body)
	} else {
		src.Text = strings.Join(lines, "\n")
		src.Outline = true
	}
	return src, nil
}

func appendList(lines []string, list *ast.List, depth int, src []byte) []string {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				lines = appendList(lines, nested, depth+1, src)
				continue
			}
			if t := inlineText(c, src); t != "" {
				lines = append(lines, indentLine(depth, t))
			}
		}
	}
	return lines
}

// inlineText concatenates the text segments below n, so links and emphasis
// contribute their visible text only.
func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
			return
		case *ast.String:
			buf.Write(t.Value)
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func minHeadingLevel(headings []*ast.Heading, skip *ast.Heading) int {
	lowest := 0
	for _, h := range headings {
		if h == skip {
			continue
		}
		if lowest == 0 || h.Level < lowest {
			lowest = h.Level
		}
	}
	return lowest
}

func countLevel(headings []*ast.Heading, level int) int {
	n := 0
	for _, h := range headings {
		if h.Level == level {
			n++
		}
	}
	return n
}

func firstAtLevel(headings []*ast.Heading, level int) *ast.Heading {
	for _, h := range headings {
		if h.Level == level {
			return h
		}
	}
	return nil
}
