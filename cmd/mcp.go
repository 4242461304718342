package cmd

import (
	"github.com/lifetick/lifetick/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Lifetick MCP server",
	Long:  `Launch an MCP server that lets AI agents query projections, countdowns, impacts and recommendations via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol runs over stdio, so setup must not print there.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, sampleStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
