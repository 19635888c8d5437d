package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/docs"
	"github.com/teemow/docsmith/internal/google"
	"github.com/teemow/docsmith/internal/instrumentation"
	"github.com/teemow/docsmith/internal/markdown"
	"github.com/teemow/docsmith/internal/server"
	"github.com/teemow/docsmith/internal/tools/batch"
	"github.com/teemow/docsmith/internal/tools/common"
)

// registerMarkdownTools registers the tools that mutate document content
// through the Markdown planning pipeline
func registerMarkdownTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Create document from Markdown tool
	createFromMarkdownTool := mcp.NewTool("markdown_to_google_doc",
		mcp.WithDescription("Create a new Google Doc from Markdown text. Supports headings, bold, italic, code, links, bullet and numbered lists including nesting."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the new document"),
		),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("The Markdown content of the document"),
		),
		mcp.WithString("folderId",
			mcp.Description("Drive folder ID to place the document in (default: My Drive root)"),
		),
	)

	s.AddTool(createFromMarkdownTool, common.InstrumentedToolHandlerWithService(
		"markdown_to_google_doc", instrumentation.ServiceDocs, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMarkdownToGoogleDoc(ctx, request, sc)
		}))

	// Append Markdown tool
	appendTool := mcp.NewTool("append_to_google_doc",
		mcp.WithDescription("Append Markdown-formatted content to the end of an existing Google Doc"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc to append to"),
		),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("The Markdown content to append"),
		),
	)

	s.AddTool(appendTool, common.InstrumentedToolHandlerWithService(
		"append_to_google_doc", instrumentation.ServiceDocs, instrumentation.OperationAppend, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendMarkdown(ctx, request, sc)
		}))

	// Replace content tool
	replaceTool := mcp.NewTool("replace_google_doc_content",
		mcp.WithDescription("Replace the entire body of a Google Doc with Markdown-formatted content"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc to overwrite"),
		),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("The Markdown content that replaces the current body"),
		),
	)

	s.AddTool(replaceTool, common.InstrumentedToolHandlerWithService(
		"replace_google_doc_content", instrumentation.ServiceDocs, instrumentation.OperationReplace, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplaceContent(ctx, request, sc)
		}))

	// Insert heading tool
	insertHeadingTool := mcp.NewTool("insert_heading",
		mcp.WithDescription("Insert a styled heading into a Google Doc"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The heading text"),
		),
		mcp.WithNumber("level",
			mcp.Description("Heading level 1-6 (default: 1)"),
		),
		mcp.WithNumber("index",
			mcp.Description("Character index to insert at (1-based). Omit to insert at the end of the document."),
		),
	)

	s.AddTool(insertHeadingTool, common.InstrumentedToolHandlerWithService(
		"insert_heading", instrumentation.ServiceDocs, instrumentation.OperationInsert, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertHeading(ctx, request, sc)
		}))

	// Insert bullet list tool
	insertListTool := mcp.NewTool("insert_bullet_list",
		mcp.WithDescription("Insert a bulleted or numbered list into a Google Doc"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("items",
			mcp.Required(),
			mcp.Description("List item (string) or array of list items"),
		),
		mcp.WithBoolean("ordered",
			mcp.Description("Create a numbered list instead of bullets (default: false)"),
		),
		mcp.WithNumber("index",
			mcp.Description("Character index to insert at (1-based). Omit to insert at the end of the document."),
		),
	)

	s.AddTool(insertListTool, common.InstrumentedToolHandlerWithService(
		"insert_bullet_list", instrumentation.ServiceDocs, instrumentation.OperationInsert, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertBulletList(ctx, request, sc)
		}))

	// Format text range tool
	formatTextTool := mcp.NewTool("format_google_doc_text",
		mcp.WithDescription("Apply or clear character formatting on a range of text in a Google Doc. Offsets are UTF-16 code unit indexes as used by the Docs API."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Description("Start of the range (1-based, inclusive)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("End of the range (exclusive)"),
		),
		mcp.WithBoolean("bold",
			mcp.Description("Set or clear bold"),
		),
		mcp.WithBoolean("italic",
			mcp.Description("Set or clear italic"),
		),
		mcp.WithBoolean("underline",
			mcp.Description("Set or clear underline"),
		),
		mcp.WithBoolean("code",
			mcp.Description("Render the range in a monospace font"),
		),
		mcp.WithString("linkUrl",
			mcp.Description("Turn the range into a link to this URL"),
		),
	)

	s.AddTool(formatTextTool, common.InstrumentedToolHandlerWithService(
		"format_google_doc_text", instrumentation.ServiceDocs, instrumentation.OperationFormat, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFormatText(ctx, request, sc)
		}))

	return nil
}

func handleMarkdownToGoogleDoc(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	source, ok := args["markdown"].(string)
	if !ok || source == "" {
		return mcp.NewToolResultError("markdown is required"), nil
	}

	folderID, _ := args["folderId"].(string)
	if folderID != "" {
		if err := google.ValidateID(folderID, "folderId"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := client.CreateDocumentFromMarkdown(ctx, title, source, folderID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create document: %v", err)), nil
	}

	result := fmt.Sprintf("Document created successfully:\nID: %s\nTitle: %s\nURL: https://docs.google.com/document/d/%s/edit",
		doc.DocumentId, doc.Title, doc.DocumentId)
	return mcp.NewToolResultText(result), nil
}

func handleAppendMarkdown(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, _ := args["documentId"].(string)
	if err := google.ValidateID(documentID, "documentId"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	source, ok := args["markdown"].(string)
	if !ok || source == "" {
		return mcp.NewToolResultError("markdown is required"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.AppendMarkdown(ctx, documentID, source); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append to document: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Content appended to document %s", documentID)), nil
}

func handleReplaceContent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, _ := args["documentId"].(string)
	if err := google.ValidateID(documentID, "documentId"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	source, ok := args["markdown"].(string)
	if !ok || source == "" {
		return mcp.NewToolResultError("markdown is required"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.ReplaceWithMarkdown(ctx, documentID, source); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to replace document content: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Content of document %s replaced", documentID)), nil
}

func handleInsertHeading(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, _ := args["documentId"].(string)
	if err := google.ValidateID(documentID, "documentId"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	level := 1
	if levelVal, ok := args["level"].(float64); ok {
		level = int(levelVal)
	}
	if level < 1 || level > 6 {
		return mcp.NewToolResultError("level must be between 1 and 6"), nil
	}

	index, atEnd := insertionPoint(args)

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.InsertHeading(ctx, documentID, text, level, index, atEnd); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert heading: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Heading %d %q inserted into document %s", level, text, documentID)), nil
}

func handleInsertBulletList(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, _ := args["documentId"].(string)
	if err := google.ValidateID(documentID, "documentId"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	items, err := batch.ParseStringOrArray(args["items"], "items")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ordered := false
	if orderedVal, ok := args["ordered"].(bool); ok {
		ordered = orderedVal
	}

	index, atEnd := insertionPoint(args)

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.InsertBulletList(ctx, documentID, items, ordered, index, atEnd); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert list: %v", err)), nil
	}

	kind := "bulleted"
	if ordered {
		kind = "numbered"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Inserted %s list with %d items into document %s", kind, len(items), documentID)), nil
}

func handleFormatText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, _ := args["documentId"].(string)
	if err := google.ValidateID(documentID, "documentId"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	startVal, ok := args["startIndex"].(float64)
	if !ok {
		return mcp.NewToolResultError("startIndex is required"), nil
	}
	endVal, ok := args["endIndex"].(float64)
	if !ok {
		return mcp.NewToolResultError("endIndex is required"), nil
	}
	start, end := int64(startVal), int64(endVal)
	if start < 1 || end <= start {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range [%d, %d): startIndex must be >= 1 and endIndex > startIndex", start, end)), nil
	}

	var attr markdown.Attributes
	var fields []string

	if bold, ok := args["bold"].(bool); ok {
		attr.Bold = bold
		fields = append(fields, docs.FieldBold)
	}
	if italic, ok := args["italic"].(bool); ok {
		attr.Italic = italic
		fields = append(fields, docs.FieldItalic)
	}
	if underline, ok := args["underline"].(bool); ok {
		attr.Underline = underline
		fields = append(fields, docs.FieldUnderline)
	}
	if code, ok := args["code"].(bool); ok && code {
		attr.Code = true
		fields = append(fields, docs.FieldFontFamily)
	}
	if linkURL, ok := args["linkUrl"].(string); ok && linkURL != "" {
		attr.LinkURL = linkURL
		fields = append(fields, docs.FieldLink)
	}

	if len(fields) == 0 {
		return mcp.NewToolResultError("At least one of bold, italic, underline, code, or linkUrl must be specified"), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.FormatText(ctx, documentID, start, end, attr, fields); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Formatting applied to range [%d, %d) of document %s", start, end, documentID)), nil
}

// insertionPoint reads the optional index argument. Without it the
// insertion goes to the end of the document.
func insertionPoint(args map[string]interface{}) (int64, bool) {
	if indexVal, ok := args["index"].(float64); ok && indexVal >= 1 {
		return int64(indexVal), false
	}
	return 0, true
}
