package infer

import (
	"regexp"
	"strings"
)

// Format is the parsing strategy chosen for a text blob.
type Format int

const (
	FormatOutline Format = iota
	FormatTab
	FormatComma
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatTab:
		return "tab"
	case FormatComma:
		return "comma"
	case FormatMarkdown:
		return "markdown"
	default:
		return "outline"
	}
}

// Delimiter returns the cell delimiter of a delimited format, or "".
func (f Format) Delimiter() string {
	switch f {
	case FormatTab:
		return "\t"
	case FormatComma:
		return ","
	}
	return ""
}

var markdownMarker = regexp.MustCompile(`^[-*]\s`)

// Detect picks a format from the first non-empty line. The first matching
// rule wins, so a comma on the first line of an outline routes the whole
// input to the comma parser.
func Detect(lines []string) Format {
	first := ""
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			first = t
			break
		}
	}

	switch {
	case strings.Contains(first, "\t"):
		return FormatTab
	case strings.Contains(first, ",") && nonEmptySegments(first, ",") > 1:
		return FormatComma
	case markdownMarker.MatchString(first):
		return FormatMarkdown
	default:
		return FormatOutline
	}
}

func nonEmptySegments(s, sep string) int {
	n := 0
	for _, seg := range strings.Split(s, sep) {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}
