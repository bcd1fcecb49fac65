// Package main is the entrypoint for the navgest CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/navgest/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "navgest",
		Short:         "Infer website navigation from menu documents",
		Long:          "navgest reads loosely structured menu descriptions (tables, outlines, markdown lists, PDF and Word documents) and infers a three-level navigation tree.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a navgest.toml file (default ./"+config.DefaultFileName+" when present)")

	root.AddCommand(parseCmd(&configPath))
	root.AddCommand(watchCmd(&configPath))
	root.AddCommand(mcpCmd(&configPath))
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the navgest version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "navgest", Version)
		},
	}
}

// loadFileConfig reads the explicit config file, or the default one when it
// exists. Unknown keys are reported on errOut.
func loadFileConfig(path string, errOut io.Writer) (config.FileConfig, error) {
	required := path != ""
	if path == "" {
		path = config.DefaultFileName
	}
	cfg, unknown, err := config.LoadFile(path, required)
	if err != nil {
		return cfg, err
	}
	for _, key := range unknown {
		fmt.Fprintf(errOut, "navgest: WARNING: unknown key %q in %s (will be ignored)\n", key, path)
	}
	return cfg, nil
}

func cliLogger(errOut io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}
