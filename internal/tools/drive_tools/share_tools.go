package drive_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/drive"
	"github.com/teemow/docsmith/internal/instrumentation"
	"github.com/teemow/docsmith/internal/server"
	"github.com/teemow/docsmith/internal/tools/batch"
	"github.com/teemow/docsmith/internal/tools/common"
)

// registerShareTools registers file sharing and permission management tools
func registerShareTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Register write tools only if not in read-only mode
	if !readOnly {
		// Share files tool
		shareFilesTool := mcp.NewTool("drive_share_files",
			mcp.WithDescription("Share one or more files in Google Drive by granting permissions"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("fileIds",
				mcp.Required(),
				mcp.Description("File ID (string) or array of file IDs to share"),
			),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("The type of grantee: 'user', 'group', 'domain', or 'anyone'"),
			),
			mcp.WithString("role",
				mcp.Required(),
				mcp.Description("The role to grant: 'owner', 'organizer', 'fileOrganizer', 'writer', 'commenter', or 'reader'"),
			),
			mcp.WithString("emailAddress",
				mcp.Description("Email address (required if type is 'user' or 'group')"),
			),
			mcp.WithString("domain",
				mcp.Description("Domain name (required if type is 'domain')"),
			),
			mcp.WithBoolean("sendNotificationEmail",
				mcp.Description("Send a notification email to the grantee (default: false)"),
			),
			mcp.WithString("emailMessage",
				mcp.Description("Custom message to include in the notification email"),
			),
		)

		s.AddTool(shareFilesTool, common.InstrumentedToolHandlerWithService(
			"drive_share_files", instrumentation.ServiceDrive, instrumentation.OperationShare, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleShareFiles(ctx, request, sc)
			}))
	}

	// List permissions tool (read-only, always available)
	listPermissionsTool := mcp.NewTool("drive_list_permissions",
		mcp.WithDescription("List all permissions for a file in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file"),
		),
	)

	s.AddTool(listPermissionsTool, common.InstrumentedToolHandlerWithService(
		"drive_list_permissions", instrumentation.ServiceDrive, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListPermissions(ctx, request, sc)
		}))

	// Remove permission tool (write operation, only available with !readOnly)
	if !readOnly {
		removePermissionTool := mcp.NewTool("drive_remove_permission",
			mcp.WithDescription("Remove a permission from a file in Google Drive"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file"),
			),
			mcp.WithString("permissionId",
				mcp.Required(),
				mcp.Description("The ID of the permission to remove (get this from drive_list_permissions)"),
			),
		)

		s.AddTool(removePermissionTool, common.InstrumentedToolHandlerWithService(
			"drive_remove_permission", instrumentation.ServiceDrive, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleRemovePermission(ctx, request, sc)
			}))
	}

	return nil
}

func handleShareFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	permType, errResult := requiredStringArg(args, "type")
	if errResult != nil {
		return errResult, nil
	}

	role, errResult := requiredStringArg(args, "role")
	if errResult != nil {
		return errResult, nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &drive.ShareOptions{
		Type:                  permType,
		Role:                  role,
		EmailAddress:          stringArg(args, "emailAddress"),
		Domain:                stringArg(args, "domain"),
		SendNotificationEmail: boolArg(args, "sendNotificationEmail", false),
		EmailMessage:          stringArg(args, "emailMessage"),
	}

	results := batch.ProcessBatch(fileIDs, func(fileID string) (string, error) {
		permission, err := client.ShareFile(ctx, fileID, options)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("File %s shared with %s (%s)", fileID, options.EmailAddress, permission.Role), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleListPermissions(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	fileID, errResult := requiredStringArg(args, "fileId")
	if errResult != nil {
		return errResult, nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	permissions, err := client.ListPermissions(ctx, fileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list permissions: %v", err)), nil
	}

	result, _ := json.MarshalIndent(permissions, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleRemovePermission(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	fileID, errResult := requiredStringArg(args, "fileId")
	if errResult != nil {
		return errResult, nil
	}

	permissionID, errResult := requiredStringArg(args, "permissionId")
	if errResult != nil {
		return errResult, nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = client.RemovePermission(ctx, fileID, permissionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove permission: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Permission %s removed successfully from file %s", permissionID, fileID)), nil
}
