package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsmith/internal/instrumentation"
	"github.com/teemow/docsmith/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with a tool span, invocation
// metrics and an audit log entry.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return instrumentedHandler(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithService is InstrumentedToolHandler plus the
// Google service and operation the tool maps onto, recorded both on the
// google_api_operations metrics and in the audit entry.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithService("my_tool", "drive", "list", sc, handler))
func InstrumentedToolHandlerWithService(
	toolName string,
	serviceName string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return instrumentedHandler(toolName, serviceName, operation, sc, handler)
}

func instrumentedHandler(
	toolName string,
	serviceName string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		args := request.GetArguments()
		account := GetAccountFromArgs(ctx, args)
		documentID := getDocumentIDFromArgs(args)

		spanAttrs := instrumentation.NewSpanAttributeBuilder().
			WithAccount(account)
		if serviceName != "" {
			spanAttrs.WithService(serviceName).WithOperation(operation)
		}
		if documentID != "" {
			spanAttrs.WithResource("document", documentID)
		}
		ctx, span := instrumentation.StartToolSpan(ctx, toolName, spanAttrs.Build()...)
		defer span.End()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)
		if serviceName != "" {
			invocation.WithService(serviceName, operation)
		}
		if account != "" {
			invocation.WithAccount(account)
		}
		if documentID != "" {
			invocation.WithDocument(documentID)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		// A handler can fail either by returning an error or by returning
		// an error result to the client.
		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			invocation.Complete(false, err)
			instrumentation.SetSpanError(span, err)
		} else {
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
			if serviceName != "" {
				metrics.RecordGoogleAPIOperation(ctx, serviceName, operation, status, duration)
			}
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}

// getDocumentIDFromArgs pulls the target document or file ID out of the
// tool arguments. Tools that operate on multiple files pass "fileIds"
// which is skipped to keep the audit field a single identifier.
func getDocumentIDFromArgs(args map[string]interface{}) string {
	for _, key := range []string{"documentId", "fileId"} {
		if id, ok := args[key].(string); ok {
			return id
		}
	}
	return ""
}
