package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/navgest/internal/infer"
	mcpserver "github.com/dgallion1/navgest/internal/mcp"
)

func mcpCmd(configPath *string) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server (for AI tools)",
		Long: `Start a Model Context Protocol server over stdio. Tools:
  infer_navigation       infer navigation from a menu description
  infer_navigation_file  infer navigation from a file below --root`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadFileConfig(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(root, Version, infer.Options{RowTolerance: file.RowTolerance})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "Directory that infer_navigation_file may read from")
	return cmd
}
