package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the workspace-mcp application
var rootCmd = &cobra.Command{
	Use:   "workspace-mcp",
	Short: "Google Workspace MCP server",
	Long: `workspace-mcp exposes Gmail, Google Drive, Google Calendar, Google Docs,
Google Sheets and Google Slides to AI assistants through the Model Context
Protocol (MCP).

It can run as:
  - An MCP server over stdio or streamable HTTP (serve)
  - A command-line client for single operations (call, auth)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() error {
	rootCmd.SetVersionTemplate(`{{printf "workspace-mcp version %s\n" .Version}}`)
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
