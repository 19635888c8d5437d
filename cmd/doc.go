// Package cmd implements the command-line interface for docsmith.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Google Docs and Drive tools
//   - auth: Authenticate a Google account and store its OAuth token
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
