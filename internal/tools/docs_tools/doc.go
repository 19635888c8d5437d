// Package docs_tools provides MCP tools for interacting with Google Docs.
//
// This package registers tools that allow AI assistants to:
//   - Retrieve Google Docs content as Markdown, plain text, or raw JSON
//   - Get document metadata (title, author, modified time, etc.)
//   - Create new documents from Markdown text
//   - Append to and replace document content
//   - Insert headings and lists at arbitrary positions
//   - Apply or clear character formatting on text ranges
//
// The mutation tools share a single planning pipeline: Markdown is parsed
// into formatted blocks, flattened into text plus offset ranges, and
// translated into an offset-stable batch of Docs API requests.
package docs_tools
