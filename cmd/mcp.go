package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/labsite/labsite/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP tool server on stdio",
	Long: `Expose the catalog and roster to MCP clients over stdio.

Tools:
  search_publications   numbered IEEE citations matching a query
  export_bibtex         matching entries as normalized BibTeX
  list_people           lab members, optionally one group only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.ServeStdio(mcp.NewServer(newLoader(cfg)))
	},
}
