package main

import (
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/navgest/internal/render"
	"github.com/dgallion1/navgest/internal/watcher"
)

func watchCmd(configPath *string) *cobra.Command {
	var (
		flags parseFlags
		delay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-infer navigation whenever a file changes",
		Long:  "Watch menu documents and print the inferred navigation each time one is saved. Writes are debounced.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadFileConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			s, err := flags.resolve(cmd, file)
			if err != nil {
				return err
			}
			// A degraded save should not stop the watch.
			s.strict = false

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			for _, path := range args {
				printParse(out, errOut, path, s)
			}

			var mu sync.Mutex
			w, err := watcher.New(args, delay, cliLogger(errOut, false), func(path string) {
				mu.Lock()
				defer mu.Unlock()
				printParse(out, errOut, path, s)
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(errOut, "Watching %d file(s). Press Ctrl+C to stop.\n", len(args))
			return w.Run(ctx)
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&delay, "debounce", watcher.DefaultDelay, "Quiet period after the last write")
	return cmd
}

func printParse(out, errOut io.Writer, path string, s parseSettings) {
	fmt.Fprintf(out, "── %s (%s)\n", path, time.Now().Format("15:04:05"))
	if err := runParse(nil, out, errOut, path, s); err != nil {
		fmt.Fprintln(errOut, render.Diagnostic(err.Error()))
	}
}
