package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. A document containing a table is read as
// a delimited table (first table only); otherwise headings and numbered or
// bulleted paragraphs become an indented outline.
type DOCXParser struct{}

type docxLine struct {
	heading int // 1-6, 0 for body paragraphs
	ilvl    int // list level, -1 when not a list paragraph
	text    string
}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Source, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "navgest-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	src := &Source{Title: trimExt(filename)}

	var paras []docxLine
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Table:
			if rows := docxTableRows(it); len(rows) > 0 {
				src.Text = strings.Join(rows, "\n")
				return src, nil
			}
		case *docx.Paragraph:
			text := docxParagraphText(it)
			if text == "" {
				continue
			}
			paras = append(paras, docxLine{
				heading: docxHeadingLevel(it),
				ilvl:    docxListLevel(it),
				text:    text,
			})
		}
	}

	src.Text = strings.Join(docxOutline(paras), "\n")
	src.Outline = true
	return src, nil
}

// docxOutline indents headings relative to the shallowest heading and nests
// other paragraphs one level below the most recent heading.
func docxOutline(paras []docxLine) []string {
	top := 0
	for _, p := range paras {
		if p.heading > 0 && (top == 0 || p.heading < top) {
			top = p.heading
		}
	}

	var lines []string
	base := 0
	for _, p := range paras {
		switch {
		case p.heading > 0:
			level := p.heading - top
			lines = append(lines, indentLine(level, p.text))
			base = level + 1
		case p.ilvl >= 0:
			lines = append(lines, indentLine(base+p.ilvl, p.text))
		default:
			lines = append(lines, indentLine(base, p.text))
		}
	}
	return lines
}

func docxTableRows(t *docx.Table) []string {
	var rows []string
	for _, tr := range t.TableRows {
		cells := make([]string, 0, len(tr.TableCells))
		for _, tc := range tr.TableCells {
			var parts []string
			for _, para := range tc.Paragraphs {
				if text := docxParagraphText(para); text != "" {
					parts = append(parts, text)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		if strings.TrimSpace(strings.Join(cells, "")) == "" {
			continue
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return rows
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style, "heading"))
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}

func docxListLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.NumProperties == nil {
		return -1
	}
	np := para.Properties.NumProperties
	if np.Ilvl == nil {
		return 0
	}
	n, err := strconv.Atoi(np.Ilvl.Val)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
