package drive_tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/drive"
	"github.com/teemow/docsmith/internal/instrumentation"
	"github.com/teemow/docsmith/internal/server"
	"github.com/teemow/docsmith/internal/tools/batch"
	"github.com/teemow/docsmith/internal/tools/common"
)

// registerFileTools registers file management tools
func registerFileTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Register write tools only if not in read-only mode
	if !readOnly {
		// Upload file tool
		uploadFileTool := mcp.NewTool("drive_upload_file",
			mcp.WithDescription("Upload a file to Google Drive"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("The name of the file"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("The file content (base64-encoded for binary files, or plain text)"),
			),
			mcp.WithString("mimeType",
				mcp.Description("The MIME type of the file (e.g., 'application/pdf', 'text/plain', 'image/png')"),
			),
			mcp.WithString("parentFolders",
				mcp.Description("Comma-separated list of parent folder IDs where the file should be placed"),
			),
			mcp.WithString("description",
				mcp.Description("A short description of the file"),
			),
			mcp.WithBoolean("isBase64",
				mcp.Description("Whether the content is base64-encoded (default: true for binary files, false for text)"),
			),
		)

		s.AddTool(uploadFileTool, common.InstrumentedToolHandlerWithService(
			"drive_upload_file", instrumentation.ServiceDrive, instrumentation.OperationUpload, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUploadFile(ctx, request, sc)
			}))
	}

	// List files tool (read-only, always available)
	listFilesTool := mcp.NewTool("drive_list_files",
		mcp.WithDescription("List files in Google Drive with optional filtering"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Query for filtering files using Google Drive's query language (e.g., \"name contains 'report'\", \"mimeType='application/pdf'\")"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of files to return (default: 100, max: 1000)"),
		),
		mcp.WithString("orderBy",
			mcp.Description("Sort order (e.g., 'folder,modifiedTime desc,name')"),
		),
		mcp.WithBoolean("includeTrashed",
			mcp.Description("Include trashed files in results (default: false)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token for retrieving the next page of results"),
		),
	)

	s.AddTool(listFilesTool, common.InstrumentedToolHandlerWithService(
		"drive_list_files", instrumentation.ServiceDrive, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListFiles(ctx, request, sc)
		}))

	// Get files tool
	getFilesTool := mcp.NewTool("drive_get_files",
		mcp.WithDescription("Get metadata for one or more files in Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileIds",
			mcp.Required(),
			mcp.Description("File ID (string) or array of file IDs to retrieve"),
		),
	)

	s.AddTool(getFilesTool, common.InstrumentedToolHandlerWithService(
		"drive_get_files", instrumentation.ServiceDrive, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetFiles(ctx, request, sc)
		}))

	// Download files tool
	downloadFilesTool := mcp.NewTool("drive_download_files",
		mcp.WithDescription("Download the content of one or more files from Google Drive"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileIds",
			mcp.Required(),
			mcp.Description("File ID (string) or array of file IDs to download"),
		),
		mcp.WithBoolean("asBase64",
			mcp.Description("Return content as base64-encoded string (default: false for text)"),
		),
	)

	s.AddTool(downloadFilesTool, common.InstrumentedToolHandlerWithService(
		"drive_download_files", instrumentation.ServiceDrive, instrumentation.OperationDownload, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDownloadFiles(ctx, request, sc)
		}))

	// Export file tool (read-only, always available)
	exportFileTool := mcp.NewTool("drive_export_file",
		mcp.WithDescription("Export a Google Workspace file (Doc, Sheet, Slides) to another format"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The ID of the file to export"),
		),
		mcp.WithString("mimeType",
			mcp.Required(),
			mcp.Description("Target MIME type (e.g., 'application/pdf', 'text/plain', 'text/markdown')"),
		),
		mcp.WithBoolean("asBase64",
			mcp.Description("Return content as base64-encoded string (default: false for text)"),
		),
	)

	s.AddTool(exportFileTool, common.InstrumentedToolHandlerWithService(
		"drive_export_file", instrumentation.ServiceDrive, instrumentation.OperationExport, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExportFile(ctx, request, sc)
		}))

	// Copy files tool (write operation, only available with !readOnly)
	if !readOnly {
		copyFilesTool := mcp.NewTool("drive_copy_file",
			mcp.WithDescription("Create a copy of a file in Google Drive"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("fileId",
				mcp.Required(),
				mcp.Description("The ID of the file to copy"),
			),
			mcp.WithString("name",
				mcp.Description("The name for the copy (default: 'Copy of <original name>')"),
			),
			mcp.WithString("parentFolders",
				mcp.Description("Comma-separated list of folder IDs where the copy should be placed"),
			),
		)

		s.AddTool(copyFilesTool, common.InstrumentedToolHandlerWithService(
			"drive_copy_file", instrumentation.ServiceDrive, instrumentation.OperationCopy, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCopyFile(ctx, request, sc)
			}))
	}

	// Delete files tool (write operation, only available with !readOnly)
	if !readOnly {
		deleteFilesTool := mcp.NewTool("drive_delete_files",
			mcp.WithDescription("Delete one or more files from Google Drive"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("fileIds",
				mcp.Required(),
				mcp.Description("File ID (string) or array of file IDs to delete"),
			),
		)

		s.AddTool(deleteFilesTool, common.InstrumentedToolHandlerWithService(
			"drive_delete_files", instrumentation.ServiceDrive, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteFiles(ctx, request, sc)
			}))
	}

	return nil
}

// parseCommaList parses a comma-separated list of strings
func parseCommaList(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func handleUploadFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	name, errResult := requiredStringArg(args, "name")
	if errResult != nil {
		return errResult, nil
	}

	contentStr, errResult := requiredStringArg(args, "content")
	if errResult != nil {
		return errResult, nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &drive.UploadOptions{
		MimeType:      stringArg(args, "mimeType"),
		Description:   stringArg(args, "description"),
		ParentFolders: parseCommaList(stringArg(args, "parentFolders")),
	}

	// Decode content if base64
	isBase64 := boolArg(args, "isBase64", true)

	var content io.Reader
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(contentStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to decode base64 content: %v", err)), nil
		}
		content = strings.NewReader(string(decoded))
	} else {
		content = strings.NewReader(contentStr)
	}

	fileInfo, err := client.UploadFile(ctx, name, content, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to upload file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File uploaded successfully:\n%s", string(result))), nil
}

func handleListFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options := &drive.ListOptions{
		Query:          stringArg(args, "query"),
		MaxResults:     intArg(args, "maxResults", 100),
		OrderBy:        stringArg(args, "orderBy"),
		IncludeTrashed: boolArg(args, "includeTrashed", false),
		PageToken:      stringArg(args, "pageToken"),
	}

	files, nextPageToken, err := client.ListFiles(ctx, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list files: %v", err)), nil
	}

	response := map[string]interface{}{
		"files":         files,
		"nextPageToken": nextPageToken,
	}

	result, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(fileIDs, func(fileID string) (string, error) {
		fileInfo, err := client.GetFile(ctx, fileID)
		if err != nil {
			return "", err
		}
		jsonBytes, _ := json.Marshal(fileInfo)
		return string(jsonBytes), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleDownloadFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	asBase64 := boolArg(args, "asBase64", false)

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(fileIDs, func(fileID string) (string, error) {
		reader, err := client.DownloadFile(ctx, fileID)
		if err != nil {
			return "", err
		}
		defer reader.Close()

		content, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("failed to read content: %w", err)
		}

		if asBase64 {
			encoded := base64.StdEncoding.EncodeToString(content)
			return fmt.Sprintf("File content (base64, %d bytes):\n%s", len(content), encoded), nil
		}

		return fmt.Sprintf("File content (text, %d bytes):\n%s", len(content), string(content)), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleExportFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	fileID, errResult := requiredStringArg(args, "fileId")
	if errResult != nil {
		return errResult, nil
	}

	mimeType, errResult := requiredStringArg(args, "mimeType")
	if errResult != nil {
		return errResult, nil
	}

	asBase64 := boolArg(args, "asBase64", false)

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reader, err := client.ExportFile(ctx, fileID, mimeType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to export file: %v", err)), nil
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read exported content: %v", err)), nil
	}

	if asBase64 {
		encoded := base64.StdEncoding.EncodeToString(content)
		return mcp.NewToolResultText(fmt.Sprintf("Exported content (base64, %d bytes):\n%s", len(content), encoded)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Exported content (%s, %d bytes):\n%s", mimeType, len(content), string(content))), nil
}

func handleCopyFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	options := &drive.CopyOptions{
		Name:          stringArg(args, "name"),
		ParentFolders: parseCommaList(stringArg(args, "parentFolders")),
	}

	fileInfo, err := client.CopyFile(ctx, fileID, options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to copy file: %v", err)), nil
	}

	result, _ := json.MarshalIndent(fileInfo, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("File copied successfully:\n%s", string(result))), nil
}

func handleDeleteFiles(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	fileIDs, err := batch.ParseStringOrArray(args["fileIds"], "fileIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getDriveClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(fileIDs, func(fileID string) (string, error) {
		if err := client.DeleteFile(ctx, fileID); err != nil {
			return "", err
		}
		return fmt.Sprintf("File %s deleted successfully", fileID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
