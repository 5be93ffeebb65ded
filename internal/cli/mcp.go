package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"declscope/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for TypeScript API surface queries",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered coding
assistants query the exported declaration surface of the configured TypeScript
source tree.

The MCP server:
- Builds the declaration index lazily on the first query and caches it
- Serves lookup, fuzzy search, hierarchy, statistics and dependency tools
- Communicates via stdio (standard MCP transport)

Example:
  declscope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	engine := newEngine(cfg, log)

	server, err := mcp.NewServer(cfg, engine, log)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
