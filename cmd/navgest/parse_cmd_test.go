package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/dgallion1/navgest/internal/navtree"
	"github.com/dgallion1/navgest/internal/render"
)

func jsonSettings() parseSettings {
	return parseSettings{format: render.FormatJSON, lang: language.English, stdinAs: ".txt"}
}

func decodeConfig(t *testing.T, b []byte) navtree.NavigationConfig {
	t.Helper()
	var cfg navtree.NavigationConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		t.Fatalf("decode output: %v\n%s", err, b)
	}
	return cfg
}

func TestRunParse_Stdin(t *testing.T) {
	in := strings.NewReader("About\tServices\nTeam\tDesign\n")
	var out, errOut bytes.Buffer

	if err := runParse(in, &out, &errOut, "-", jsonSettings()); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	cfg := decodeConfig(t, out.Bytes())
	if len(cfg.PrimaryItems) != 2 {
		t.Fatalf("expected 2 primary items, got %d", len(cfg.PrimaryItems))
	}
	if cfg.PrimaryItems[0].Label != "About" || cfg.PrimaryItems[0].Children[0].Label != "Team" {
		t.Errorf("unexpected tree: %+v", cfg.PrimaryItems[0])
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no diagnostic, got %q", errOut.String())
	}
}

func TestRunParse_FileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.md")
	if err := os.WriteFile(path, []byte("- about us\n  - our team\n- get involved\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := jsonSettings()
	s.logoText = "Hope Shelter"
	s.titleCase = true
	var out, errOut bytes.Buffer
	if err := runParse(nil, &out, &errOut, path, s); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	cfg := decodeConfig(t, out.Bytes())
	if cfg.LogoText != "Hope Shelter" {
		t.Errorf("logoText = %q", cfg.LogoText)
	}
	if got := cfg.PrimaryItems[0].Label; got != "About Us" {
		t.Errorf("label = %q, want title case", got)
	}
	if got := cfg.PrimaryItems[0].Children[0].Label; got != "Our Team" {
		t.Errorf("child label = %q", got)
	}
}

func TestRunParse_DegradedPrintsDiagnostic(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := runParse(strings.NewReader("   \n"), &out, &errOut, "-", jsonSettings()); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	cfg := decodeConfig(t, out.Bytes())
	if cfg.LogoText != navtree.DefaultLogoText || len(cfg.PrimaryItems) != 0 {
		t.Errorf("expected empty baseline, got %+v", cfg)
	}
	if !strings.Contains(errOut.String(), "warning:") {
		t.Errorf("expected diagnostic on stderr, got %q", errOut.String())
	}
}

func TestRunParse_StrictFailsOnDegraded(t *testing.T) {
	s := jsonSettings()
	s.strict = true
	var out, errOut bytes.Buffer
	if err := runParse(strings.NewReader(""), &out, &errOut, "-", s); err == nil {
		t.Fatal("expected error in strict mode")
	}
}

func TestRunParse_MissingFile(t *testing.T) {
	var out, errOut bytes.Buffer
	err := runParse(nil, &out, &errOut, filepath.Join(t.TempDir(), "nope.txt"), jsonSettings())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRunParse_Unsupported(t *testing.T) {
	s := jsonSettings()
	s.stdinAs = ".exe"
	var out, errOut bytes.Buffer
	if err := runParse(strings.NewReader("x"), &out, &errOut, "-", s); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestParseCmd_FlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "navgest.toml")
	if err := os.WriteFile(cfgPath, []byte("format = \"yaml\"\nlogo_text = \"From File\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	menu := filepath.Join(dir, "menu.txt")
	if err := os.WriteFile(menu, []byte("Home\nAbout\n  Team\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--config", cfgPath, "parse", "--format", "json", menu})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v (stderr %q)", err, errOut.String())
	}

	cfg := decodeConfig(t, out.Bytes())
	if cfg.LogoText != "From File" {
		t.Errorf("logoText = %q, want value from config file", cfg.LogoText)
	}
	if len(cfg.PrimaryItems) != 2 {
		t.Errorf("expected 2 primary items, got %d", len(cfg.PrimaryItems))
	}
}

func TestParseCmd_RequiresArg(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"parse"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error without a file argument")
	}
}

func TestParseCmd_ExplicitConfigMustExist(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("Home\n"))
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "parse", "-"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for a missing --config file")
	}
}

func TestParseCmd_BadLanguage(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("Home\n"))
	root.SetArgs([]string{"parse", "--lang", "not a tag!", "-"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for an invalid language tag")
	}
}
