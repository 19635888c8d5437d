package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the docsmith application
var rootCmd = &cobra.Command{
	Use:   "docsmith",
	Short: "MCP server for Google Docs and Drive",
	Long: `docsmith is an MCP (Model Context Protocol) server that lets AI
assistants create and edit Google Docs from Markdown and manage files
in Google Drive.

Markdown content is translated into batched Google Docs API requests,
so headings, emphasis, code, links and nested lists survive the trip
into the document.`,
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
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "docsmith version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
