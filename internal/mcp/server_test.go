package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgallion1/navgest/internal/infer"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if len(result.Content) == 0 {
		t.Fatal("expected at least one content item")
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func decode(t *testing.T, result *mcp.CallToolResult) infer.Result {
	t.Helper()
	var res infer.Result
	if err := json.Unmarshal([]byte(resultText(t, result)), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return res
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, "test", infer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return s, dir
}

func TestRegisterTools(t *testing.T) {
	s, _ := newTestServer(t)
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "navgest-test",
		Version: "test",
	}, nil)

	// Should not panic
	s.registerTools(server)
}

func TestHandleInferNavigation(t *testing.T) {
	s, _ := newTestServer(t)
	result, _, err := s.handleInferNavigation(context.Background(), nil, inferInput{
		Text:      "- about us\n  - our team\n- donate",
		TitleCase: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := decode(t, result)
	if res.Strategy != infer.StrategyMarkdown {
		t.Errorf("expected markdown strategy, got %s", res.Strategy)
	}
	items := res.Config.PrimaryItems
	if len(items) != 2 || items[0].Label != "About Us" || items[0].Children[0].Label != "Our Team" {
		t.Errorf("unexpected items: %+v", items)
	}
	if items[0].Href != "/about-us" {
		t.Errorf("expected href from original label, got %q", items[0].Href)
	}
}

func TestHandleInferNavigation_Empty(t *testing.T) {
	s, _ := newTestServer(t)
	result, _, _ := s.handleInferNavigation(context.Background(), nil, inferInput{})
	if res := decode(t, result); res.Diagnostic != infer.DiagNoTextContent {
		t.Errorf("expected %q, got %q", infer.DiagNoTextContent, res.Diagnostic)
	}
}

func TestHandleInferNavigationFile(t *testing.T) {
	s, dir := newTestServer(t)
	if err := os.WriteFile(filepath.Join(dir, "menu.csv"), []byte("About,Donate\nTeam,Gift Aid\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, _, err := s.handleInferNavigationFile(context.Background(), nil, inferFileInput{Path: "menu.csv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	res := decode(t, result)
	if res.Strategy != infer.StrategyTable || len(res.Config.PrimaryItems) != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestHandleInferNavigationFile_Rejects(t *testing.T) {
	s, dir := newTestServer(t)
	os.WriteFile(filepath.Join(dir, "payload.exe"), []byte("MZ"), 0o644)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"absolute", "/etc/passwd", "inside the server root"},
		{"traversal", "../outside.txt", "inside the server root"},
		{"empty", "", "inside the server root"},
		{"unsupported", "payload.exe", "unsupported file type"},
		{"missing", "absent.txt", "Error reading file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := s.handleInferNavigationFile(context.Background(), nil, inferFileInput{Path: tt.path})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Error("expected tool error")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("expected %q in %q", tt.want, text)
			}
		})
	}
}
