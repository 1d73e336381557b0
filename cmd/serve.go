package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the engine's operations",
	Long: `Start a Model Context Protocol (MCP) server that exposes the catalog and
engine operations as tools, so AI agents can drive the target application
without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  uidriver serve
  uidriver serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, closeLog, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	srv := newMCPServer(eng)
	if err := srv.serve(transport, port); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
