package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/dgallion1/navgest/internal/config"
	"github.com/dgallion1/navgest/internal/infer"
	"github.com/dgallion1/navgest/internal/navtree"
	"github.com/dgallion1/navgest/internal/parser"
	"github.com/dgallion1/navgest/internal/render"
)

// parseSettings is the merged result of the config file and flags.
type parseSettings struct {
	format    render.Format
	titleCase bool
	lang      language.Tag
	tolerance float64
	logoText  string
	stdinAs   string
	strict    bool
}

type parseFlags struct {
	format    string
	titleCase bool
	lang      string
	tolerance float64
	logoText  string
	stdinAs   string
	strict    bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: tree, json or yaml")
	cmd.Flags().BoolVar(&f.titleCase, "title-case", false, "Title-case every label")
	cmd.Flags().StringVar(&f.lang, "lang", "", "Language for title casing (BCP 47, default en)")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "Row tolerance for PDF text, in points")
	cmd.Flags().StringVar(&f.logoText, "logo", "", "Override the logo text")
	cmd.Flags().StringVar(&f.stdinAs, "stdin-as", ".txt", "File extension used to parse standard input")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit non-zero when no navigation was found")
}

// resolve applies flags that were set on top of the file config.
func (f *parseFlags) resolve(cmd *cobra.Command, file config.FileConfig) (parseSettings, error) {
	s := parseSettings{
		titleCase: file.TitleCase,
		tolerance: file.RowTolerance,
		logoText:  file.LogoText,
		stdinAs:   f.stdinAs,
		strict:    f.strict,
	}
	format := file.Format
	lang := file.Language

	flags := cmd.Flags()
	if flags.Changed("format") {
		format = f.format
	}
	if flags.Changed("title-case") {
		s.titleCase = f.titleCase
	}
	if flags.Changed("lang") {
		lang = f.lang
	}
	if flags.Changed("tolerance") {
		s.tolerance = f.tolerance
	}
	if flags.Changed("logo") {
		s.logoText = f.logoText
	}

	var err error
	if s.format, err = render.ParseFormat(format); err != nil {
		return s, err
	}
	s.lang = language.English
	if lang != "" {
		if s.lang, err = language.Parse(lang); err != nil {
			return s, fmt.Errorf("invalid language %q: %w", lang, err)
		}
	}
	if !strings.HasPrefix(s.stdinAs, ".") {
		s.stdinAs = "." + s.stdinAs
	}
	return s, nil
}

func parseCmd(configPath *string) *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "parse FILE|-",
		Short: "Infer navigation from a file or standard input",
		Long:  "Parse a menu document and print the inferred navigation. Use - to read standard input. Diagnostics go to stderr.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadFileConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			s, err := flags.resolve(cmd, file)
			if err != nil {
				return err
			}
			return runParse(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], s)
		},
	}
	flags.register(cmd)
	return cmd
}

func runParse(stdin io.Reader, out, errOut io.Writer, path string, s parseSettings) error {
	res, err := inferPath(stdin, path, s)
	if err != nil {
		return err
	}
	if err := render.Write(out, s.format, res.Config); err != nil {
		return err
	}
	if res.Degraded() {
		fmt.Fprintln(errOut, render.Diagnostic(res.Diagnostic))
		if s.strict {
			return fmt.Errorf("no navigation found in %s", displayName(path))
		}
	}
	return nil
}

// inferPath parses path (or stdin for "-") and applies CLI overrides.
func inferPath(stdin io.Reader, path string, s parseSettings) (infer.Result, error) {
	var (
		r        io.Reader
		filename string
	)
	if path == "-" {
		r = stdin
		filename = "stdin" + s.stdinAs
	} else {
		f, err := os.Open(path)
		if err != nil {
			return infer.Result{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
		filename = filepath.Base(path)
	}

	src, err := parser.ParseFile(r, filename)
	if err != nil {
		return infer.Result{}, fmt.Errorf("parse %s: %w", displayName(path), err)
	}
	res := src.Infer(infer.Options{RowTolerance: s.tolerance})
	if s.logoText != "" {
		res.Config.LogoText = s.logoText
	}
	if s.titleCase {
		res.Config = navtree.TitleCase(res.Config, s.lang)
	}
	return res, nil
}

func displayName(path string) string {
	if path == "-" {
		return "standard input"
	}
	return path
}
