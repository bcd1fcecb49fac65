package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/navgest/internal/infer"
)

// PDFParser handles PDF files. Each page yields positioned text fragments
// for row reconstruction. When the Go library cannot open the file and
// FallbackPdftotext is set, pdftotext output is read as plain text instead.
type PDFParser struct {
	FallbackPdftotext bool
}

// pdfPage is one extracted page. Extraction errors are kept per page so a
// broken page only drops itself.
type pdfPage struct {
	frags []infer.Fragment
	err   error
}

func (p *pdfPage) Fragments() ([]infer.Fragment, error) {
	return p.frags, p.err
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Source, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "navgest-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	src := &Source{Title: trimExt(filename)}

	pages, err := extractPDFPages(tmpPath)
	if err != nil {
		if !p.FallbackPdftotext {
			return nil, fmt.Errorf("open pdf: %w", err)
		}
		text, ferr := extractPdftotext(tmpPath)
		if ferr != nil {
			return nil, fmt.Errorf("open pdf: %w (fallback: %v)", err, ferr)
		}
		src.Text = text
		return src, nil
	}

	src.Pages = pages
	return src, nil
}

func extractPDFPages(path string) ([]infer.Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]infer.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		pages = append(pages, readPDFPage(reader, i))
	}
	return pages, nil
}

func readPDFPage(reader *pdflib.Reader, num int) (page *pdfPage) {
	page = &pdfPage{}
	defer func() {
		if r := recover(); r != nil {
			page.frags, page.err = nil, fmt.Errorf("page %d: %v", num, r)
		}
	}()

	p := reader.Page(num)
	if p.V.IsNull() {
		page.err = fmt.Errorf("page %d: missing", num)
		return page
	}
	page.frags = mergeGlyphs(p.Content().Text)
	return page
}

// mergeGlyphs joins glyph runs that share a baseline into fragments. A small
// horizontal gap becomes a space; a gap wider than two character heights
// starts a new fragment so table columns stay separate cells.
func mergeGlyphs(texts []pdflib.Text) []infer.Fragment {
	var frags []infer.Fragment
	var buf strings.Builder
	var y, end float64
	open := false

	flush := func() {
		if open && strings.TrimSpace(buf.String()) != "" {
			yy := y
			frags = append(frags, infer.Fragment{Text: strings.TrimSpace(buf.String()), Y: &yy})
		}
		buf.Reset()
		open = false
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if open && math.Abs(t.Y-y) < 0.5 {
			gap := t.X - end
			switch {
			case gap > t.FontSize*2:
				flush()
			case gap > math.Max(t.FontSize*0.2, 0.5):
				buf.WriteByte(' ')
			}
		} else {
			flush()
		}
		if !open {
			y = t.Y
			open = true
		}
		buf.WriteString(t.S)
		end = t.X + t.W
	}
	flush()
	return frags
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return strings.ReplaceAll(string(out), "\f", "\n"), nil
}
