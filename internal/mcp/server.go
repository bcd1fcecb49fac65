// Package mcp exposes navigation inference as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"

	"github.com/dgallion1/navgest/internal/infer"
	"github.com/dgallion1/navgest/internal/navtree"
	"github.com/dgallion1/navgest/internal/parser"
)

// maxFileBytes bounds files read by infer_navigation_file.
const maxFileBytes = 10 << 20

// Server holds the tool settings. Files are only read from below root.
type Server struct {
	root    string
	version string
	opts    infer.Options
}

// New returns a tool server rooted at dir.
func New(dir, version string, opts infer.Options) (*Server, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	return &Server{root: root, version: version, opts: opts}, nil
}

// Run serves MCP over stdin/stdout until ctx is done or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "navgest",
		Version: s.version,
	}, nil)

	s.registerTools(server)

	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools(server *mcp.Server) {
	// infer_navigation
	mcp.AddTool(server, &mcp.Tool{
		Name:        "infer_navigation",
		Description: "Infer a website navigation tree from a menu description. Accepts tab or comma separated tables (one column per top-level item), indented outlines, or markdown bullet lists.\n\nArgs:\n  text: The menu description\n  title_case: Title-case every label (default false)\n\nReturns the navigation config as JSON, plus a diagnostic when nothing usable was found.",
	}, s.handleInferNavigation)

	// infer_navigation_file
	mcp.AddTool(server, &mcp.Tool{
		Name:        "infer_navigation_file",
		Description: "Infer a website navigation tree from a document on disk (.txt, .tsv, .csv, .md, .html, .pdf, .docx). Paths are relative to the server root.\n\nArgs:\n  path: Relative path of the document\n  title_case: Title-case every label (default false)\n\nReturns the navigation config as JSON, plus a diagnostic when nothing usable was found.",
	}, s.handleInferNavigationFile)
}

// Tool input types

type inferInput struct {
	Text      string `json:"text" jsonschema:"Menu description: table, outline or markdown list"`
	TitleCase bool   `json:"title_case,omitempty" jsonschema:"Title-case every label"`
}

type inferFileInput struct {
	Path      string `json:"path" jsonschema:"Relative path of the document"`
	TitleCase bool   `json:"title_case,omitempty" jsonschema:"Title-case every label"`
}

// Tool handlers

func (s *Server) handleInferNavigation(ctx context.Context, req *mcp.CallToolRequest, input inferInput) (*mcp.CallToolResult, any, error) {
	res := infer.FromText(input.Text)
	return resultJSON(res, input.TitleCase), nil, nil
}

func (s *Server) handleInferNavigationFile(ctx context.Context, req *mcp.CallToolRequest, input inferFileInput) (*mcp.CallToolResult, any, error) {
	full := s.safePath(input.Path)
	if full == "" {
		return errorResult("Error: path must be relative and inside the server root."), nil, nil
	}
	if !parser.IsSupportedExtension(full) {
		return errorResult(fmt.Sprintf("Error: unsupported file type %q.", filepath.Ext(full))), nil, nil
	}

	info, err := os.Stat(full)
	if err != nil {
		return errorResult(fmt.Sprintf("Error reading file: %v", err)), nil, nil
	}
	if info.Size() > maxFileBytes {
		return errorResult(fmt.Sprintf("Error: file exceeds %d bytes.", maxFileBytes)), nil, nil
	}

	f, err := os.Open(full)
	if err != nil {
		return errorResult(fmt.Sprintf("Error reading file: %v", err)), nil, nil
	}
	defer f.Close()

	src, err := parser.ParseFile(f, full)
	if err != nil {
		return errorResult(fmt.Sprintf("Error parsing file: %v", err)), nil, nil
	}
	return resultJSON(src.Infer(s.opts), input.TitleCase), nil, nil
}

// Helpers

// safePath resolves a relative path below the root, blocking traversal.
func (s *Server) safePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return ""
	}
	full, err := filepath.Abs(filepath.Join(s.root, filepath.FromSlash(path)))
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return ""
	}
	return full
}

func resultJSON(res infer.Result, titleCase bool) *mcp.CallToolResult {
	if titleCase {
		res.Config = navtree.TitleCase(res.Config, language.English)
	}
	data, _ := json.MarshalIndent(res, "", "  ")
	return textResult(string(data))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	r := textResult(text)
	r.IsError = true
	return r
}
