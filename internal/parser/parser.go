package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/navgest/internal/infer"
)

// ErrUnsupported reports a file extension no parser handles.
var ErrUnsupported = errors.New("unsupported file extension")

// Parser converts raw document bytes into inference input.
type Parser interface {
	Parse(r io.Reader, filename string) (*Source, error)
}

// Meta carries navigation settings declared by the document itself.
type Meta struct {
	LogoText         string `yaml:"logo_text"`
	ShowSearch       *bool  `yaml:"show_search"`
	ShowSecondaryNav *bool  `yaml:"show_secondary_nav"`
}

// Source is a parsed document ready for inference: either a text blob or,
// for paginated documents, positioned text pages. Outline marks Text as an
// indented outline the adapter built itself.
type Source struct {
	Title   string
	Text    string
	Outline bool
	Pages   []infer.Page
	Meta    Meta
}

// Infer runs navigation inference over the source and applies any settings
// the document declared.
func (s *Source) Infer(opts infer.Options) infer.Result {
	var res infer.Result
	switch {
	case len(s.Pages) > 0:
		res = infer.FromPages(s.Pages, opts)
	case s.Outline:
		res = infer.FromOutline(s.Text)
	default:
		res = infer.FromText(s.Text)
	}

	if s.Meta.LogoText != "" {
		res.Config.LogoText = s.Meta.LogoText
	}
	if s.Meta.ShowSearch != nil {
		res.Config.ShowSearch = *s.Meta.ShowSearch
	}
	if s.Meta.ShowSecondaryNav != nil {
		res.Config.ShowSecondaryNav = *s.Meta.ShowSecondaryNav
	}
	return res
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".tsv":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".tsv":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ParseFile picks a parser for filename and parses r with it.
func ParseFile(r io.Reader, filename string) (*Source, error) {
	p, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	return p.Parse(r, filename)
}

func trimExt(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// indentLine renders an outline line at the given nesting level.
func indentLine(level int, text string) string {
	return strings.Repeat("  ", level) + text
}
