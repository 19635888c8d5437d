package drive_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/drive"
	"github.com/teemow/docsmith/internal/google"
	"github.com/teemow/docsmith/internal/server"
)

// requiredStringArg fetches a required string argument. The second return
// value is a ready-to-return error result when the argument is missing or
// empty.
func requiredStringArg(args map[string]interface{}, key string) (string, *mcp.CallToolResult) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", mcp.NewToolResultError(key + " is required")
	}
	return v, nil
}

// stringArg fetches an optional string argument, "" when absent.
func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// boolArg fetches an optional bool argument with a fallback.
func boolArg(args map[string]interface{}, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok && v > 0 {
		return int(v)
	}
	return fallback
}

// getDriveClient returns the cached Drive client for the account, creating
// and caching one on first use. Accounts without a stored token get the
// authentication instructions instead of a raw API error.
func getDriveClient(ctx context.Context, account string, sc *server.ServerContext) (*drive.Client, error) {
	if client := sc.DriveClientForAccount(account); client != nil {
		return client, nil
	}

	if !drive.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	client, err := drive.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
	}
	sc.SetDriveClientForAccount(account, client)
	return client, nil
}

// RegisterDriveTools registers the Drive file, folder and sharing tools with
// the MCP server. Write tools are skipped when readOnly is set.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	for _, register := range []struct {
		name string
		fn   func(*mcpserver.MCPServer, *server.ServerContext, bool) error
	}{
		{"file", registerFileTools},
		{"folder", registerFolderTools},
		{"share", registerShareTools},
	} {
		if err := register.fn(s, sc, readOnly); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", register.name, err)
		}
	}
	return nil
}
