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
	"github.com/teemow/docsmith/internal/tools/common"
)

// registerFolderTools registers folder management tools
func registerFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Folder creation and moves are write operations
	if readOnly {
		return nil
	}

	// Create folder tool
	createFolderTool := mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a new folder in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the folder"),
		),
		mcp.WithString("parentFolders",
			mcp.Description("Comma-separated list of parent folder IDs where the folder should be created"),
		),
	)

	s.AddTool(createFolderTool, common.InstrumentedToolHandlerWithService(
		"drive_create_folder", instrumentation.ServiceDrive, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateFolder(ctx, request, sc)
		}))

	// Move/rename file tool
	moveFileTool := mcp.NewTool("drive_move_file",
		mcp.WithDescription("Move or rename a file in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to move or rename"),
		),
		mcp.WithString("newName",
			mcp.Description("The new name for the file (leave empty to keep current name)"),
		),
		mcp.WithString("addParents",
			mcp.Description("Comma-separated list of folder IDs to add as parents"),
		),
		mcp.WithString("removeParents",
			mcp.Description("Comma-separated list of folder IDs to remove as parents"),
		),
	)

	s.AddTool(moveFileTool, common.InstrumentedToolHandlerWithService(
		"drive_move_file", instrumentation.ServiceDrive, instrumentation.OperationMove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMoveFile(ctx, request, sc)
		}))

	return nil
}

func handleCreateFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	name, errResult := requiredStringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	parentFolders := parseCommaList(stringArg(args, "parentFolders"))

	folderInfo, err := client.CreateFolder(ctx, name, parentFolders)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create folder: %v", err)), nil
	}

	result, _ := json.MarshalIndent(folderInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Folder created successfully:\n%s", string(result))), nil
}

func handleMoveFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	options := &drive.MoveOptions{
		NewName:       stringArg(args, "newName"),
		AddParents:    parseCommaList(stringArg(args, "addParents")),
		RemoveParents: parseCommaList(stringArg(args, "removeParents")),
	}
	if options.NewName == "" && len(options.AddParents) == 0 && len(options.RemoveParents) == 0 {
		return mcp.NewToolResultError("At least one of newName, addParents, or removeParents must be specified"), nil
	}

	fileInfo, err := client.MoveFile(ctx, fileID, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to move file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File moved/renamed successfully:\n%s", string(result))), nil
}
