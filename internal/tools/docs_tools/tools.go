package docs_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/docs"
	"github.com/teemow/docsmith/internal/google"
	"github.com/teemow/docsmith/internal/instrumentation"
	"github.com/teemow/docsmith/internal/server"
	"github.com/teemow/docsmith/internal/tools/common"
)

// getDocsClient returns the cached Docs client for the account, creating
// and caching one on first use. Accounts without a stored token get the
// authentication instructions instead of a raw API error.
func getDocsClient(ctx context.Context, account string, sc *server.ServerContext) (*docs.Client, error) {
	if client := sc.DocsClientForAccount(account); client != nil {
		return client, nil
	}

	if !docs.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	client, err := docs.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs client for account %s: %w", account, err)
	}
	sc.SetDocsClientForAccount(account, client)
	return client, nil
}

// RegisterDocsTools registers all Google Docs-related tools with the MCP server
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Get document tool
	getDocumentTool := mcp.NewTool("docs_get_document",
		mcp.WithDescription("Get Google Docs content by document ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default), 'text', or 'json'"),
		),
	)

	s.AddTool(getDocumentTool, common.InstrumentedToolHandlerWithService(
		"docs_get_document", instrumentation.ServiceDocs, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDocument(ctx, request, sc)
		}))

	// Get document metadata tool
	getMetadataTool := mcp.NewTool("docs_get_document_metadata",
		mcp.WithDescription("Get metadata about a Google Doc or Drive file"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc or Drive file"),
		),
	)

	s.AddTool(getMetadataTool, common.InstrumentedToolHandlerWithService(
		"docs_get_document_metadata", instrumentation.ServiceDocs, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMetadata(ctx, request, sc)
		}))

	// Markdown mutation tools are write operations
	if !readOnly {
		if err := registerMarkdownTools(s, sc); err != nil {
			return fmt.Errorf("failed to register markdown tools: %w", err)
		}
	}

	return nil
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, _ := args["documentId"].(string)
	if err := google.ValidateID(documentID, "documentId"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := "markdown"
	if formatVal, ok := args["format"].(string); ok && formatVal != "" {
		format = formatVal
	}

	docsClient, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format {
	case "markdown":
		content, err := docsClient.GetDocumentAsMarkdown(documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		result := fmt.Sprintf("Document content (Markdown, %d bytes):\n%s", len(content), content)
		return mcp.NewToolResultText(result), nil

	case "text":
		content, err := docsClient.GetDocumentAsPlainText(documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		result := fmt.Sprintf("Document content (plain text, %d bytes):\n%s", len(content), content)
		return mcp.NewToolResultText(result), nil

	case "json":
		doc, err := docsClient.GetDocument(documentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get document: %v", err)), nil
		}
		jsonBytes, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize document: %v", err)), nil
		}
		result := fmt.Sprintf("Document content (JSON, %d bytes):\n%s", len(jsonBytes), string(jsonBytes))
		return mcp.NewToolResultText(result), nil

	default:
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format '%s', must be 'markdown', 'text', or 'json'", format)), nil
	}
}

func handleGetMetadata(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, _ := args["documentId"].(string)
	if err := google.ValidateID(documentID, "documentId"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	docsClient, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	metadata, err := docsClient.GetFileMetadata(documentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get metadata: %v", err)), nil
	}

	jsonBytes, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize metadata: %v", err)), nil
	}

	result := fmt.Sprintf("Document metadata:\n%s", string(jsonBytes))
	return mcp.NewToolResultText(result), nil
}
