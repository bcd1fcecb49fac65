package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. The menu is read from the first <nav>
// element, falling back to <body>; nested <ul>/<ol> lists become an indented
// outline. Without lists, each link text becomes a line.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Source, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	src := &Source{Title: trimExt(filename)}
	if title := findTitle(doc); title != "" {
		src.Title = title
	}

	root := findElement(doc, "nav")
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		root = doc
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "template":
				return
			case "ul", "ol":
				lines = appendHTMLList(lines, n, 0)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if len(lines) == 0 {
		lines = linkTexts(root)
	}
	src.Text = strings.Join(lines, "\n")
	src.Outline = true
	return src, nil
}

func appendHTMLList(lines []string, list *html.Node, depth int) []string {
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		if label := ownText(li); label != "" {
			lines = append(lines, indentLine(depth, label))
		}
		for _, nested := range childLists(li) {
			lines = appendHTMLList(lines, nested, depth+1)
		}
	}
	return lines
}

// ownText is the text of an element excluding any nested lists.
func ownText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "ul", "ol", "script", "style":
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// childLists returns the lists nested under li, not descending into them.
func childLists(li *html.Node) []*html.Node {
	var out []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				out = append(out, c)
				continue
			}
			find(c)
		}
	}
	find(li)
	return out
}

func linkTexts(root *html.Node) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if t := ownText(n); t != "" {
				lines = append(lines, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return lines
}

func findTitle(n *html.Node) string {
	if t := findElement(n, "title"); t != nil {
		return ownText(t)
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
