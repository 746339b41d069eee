package cmd

import (
	"github.com/gitsignals/gitsignals/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the GitSignals MCP server",
	Long:  `Launch an MCP server that allows AI agents to score repositories and fetch trends via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The positional-argument handling of sharedSetup stays unused here;
		// tool calls carry their own input file paths.
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
