package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/drive"
	"github.com/teemow/docsmith/internal/google"
	"github.com/teemow/docsmith/internal/server"
)

// RegisterUserResources registers read-only resources describing the
// authenticated accounts and their recent documents
func RegisterUserResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register account list resource
	accountsResource := mcp.NewResource(
		"user://accounts",
		"Authenticated Accounts",
		mcp.WithResourceDescription("Google accounts with stored OAuth tokens"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(accountsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAccounts(ctx, request)
	})

	// Register recent documents resource
	recentResource := mcp.NewResource(
		"drive://recent-documents",
		"Recent Google Docs",
		mcp.WithResourceDescription("The most recently modified Google Docs for the default account"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(recentResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleRecentDocuments(ctx, request, sc)
	})

	return nil
}

// handleAccounts returns the accounts that have a stored OAuth token
func handleAccounts(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	accounts, err := google.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	payload := map[string]interface{}{
		"accounts": accounts,
		"count":    len(accounts),
	}

	jsonBytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize accounts: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

// handleRecentDocuments lists recently modified Google Docs via the Drive API
func handleRecentDocuments(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.DriveClient()
	if client == nil {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage("default"))
	}

	files, _, err := client.ListFiles(ctx, &drive.ListOptions{
		Query:      "mimeType='application/vnd.google-apps.document'",
		MaxResults: 10,
		OrderBy:    "modifiedTime desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent documents: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize documents: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
