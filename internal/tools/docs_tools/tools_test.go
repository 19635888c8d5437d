package docs_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsmith/internal/server"
)

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected non-empty result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

// TestHandleGetDocumentValidation tests input validation for handleGetDocument
func TestHandleGetDocumentValidation(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing documentId",
			args: map[string]interface{}{},
			want: "documentId is required",
		},
		{
			name: "malformed documentId",
			args: map[string]interface{}{
				"documentId": "short",
			},
			want: "invalid documentId",
		},
		{
			name: "documentId with invalid characters",
			args: map[string]interface{}{
				"documentId": "abc/def/../../etc/passwd",
			},
			want: "invalid documentId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleGetDocument(ctx, callRequest("docs_get_document", tt.args), sc)
			if err != nil {
				t.Errorf("handleGetDocument() unexpected error = %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatal("handleGetDocument() expected error result")
			}
			if got := resultText(t, result); !strings.Contains(got, tt.want) {
				t.Errorf("handleGetDocument() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

// TestHandleInsertHeadingValidation tests input validation for handleInsertHeading
func TestHandleInsertHeadingValidation(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing text",
			args: map[string]interface{}{
				"documentId": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
			},
			want: "text is required",
		},
		{
			name: "level too small",
			args: map[string]interface{}{
				"documentId": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
				"text":       "Overview",
				"level":      float64(0),
			},
			want: "level must be between 1 and 6",
		},
		{
			name: "level too large",
			args: map[string]interface{}{
				"documentId": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
				"text":       "Overview",
				"level":      float64(7),
			},
			want: "level must be between 1 and 6",
		},
		{
			name: "bad documentId",
			args: map[string]interface{}{
				"documentId": "nope",
				"text":       "Overview",
			},
			want: "invalid documentId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleInsertHeading(ctx, callRequest("insert_heading", tt.args), sc)
			if err != nil {
				t.Errorf("handleInsertHeading() unexpected error = %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatal("handleInsertHeading() expected error result")
			}
			if got := resultText(t, result); !strings.Contains(got, tt.want) {
				t.Errorf("handleInsertHeading() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

// TestHandleInsertBulletListValidation tests input validation for handleInsertBulletList
func TestHandleInsertBulletListValidation(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing items",
			args: map[string]interface{}{
				"documentId": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
			},
			want: "items is required",
		},
		{
			name: "empty items array",
			args: map[string]interface{}{
				"documentId": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
				"items":      []interface{}{},
			},
			want: "items cannot be empty",
		},
		{
			name: "non-string item",
			args: map[string]interface{}{
				"documentId": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
				"items":      []interface{}{"first", float64(2)},
			},
			want: "items[1] must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleInsertBulletList(ctx, callRequest("insert_bullet_list", tt.args), sc)
			if err != nil {
				t.Errorf("handleInsertBulletList() unexpected error = %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatal("handleInsertBulletList() expected error result")
			}
			if got := resultText(t, result); !strings.Contains(got, tt.want) {
				t.Errorf("handleInsertBulletList() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

// TestHandleFormatTextValidation tests input validation for handleFormatText
func TestHandleFormatTextValidation(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)

	docID := "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing startIndex",
			args: map[string]interface{}{
				"documentId": docID,
				"endIndex":   float64(10),
				"bold":       true,
			},
			want: "startIndex is required",
		},
		{
			name: "missing endIndex",
			args: map[string]interface{}{
				"documentId": docID,
				"startIndex": float64(1),
				"bold":       true,
			},
			want: "endIndex is required",
		},
		{
			name: "zero startIndex",
			args: map[string]interface{}{
				"documentId": docID,
				"startIndex": float64(0),
				"endIndex":   float64(10),
				"bold":       true,
			},
			want: "invalid range",
		},
		{
			name: "inverted range",
			args: map[string]interface{}{
				"documentId": docID,
				"startIndex": float64(10),
				"endIndex":   float64(5),
				"bold":       true,
			},
			want: "invalid range",
		},
		{
			name: "no attributes",
			args: map[string]interface{}{
				"documentId": docID,
				"startIndex": float64(1),
				"endIndex":   float64(10),
			},
			want: "At least one of bold, italic, underline, code, or linkUrl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleFormatText(ctx, callRequest("format_google_doc_text", tt.args), sc)
			if err != nil {
				t.Errorf("handleFormatText() unexpected error = %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatal("handleFormatText() expected error result")
			}
			if got := resultText(t, result); !strings.Contains(got, tt.want) {
				t.Errorf("handleFormatText() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

// TestHandleMarkdownToGoogleDocValidation tests input validation for handleMarkdownToGoogleDoc
func TestHandleMarkdownToGoogleDocValidation(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing title",
			args: map[string]interface{}{
				"markdown": "# Hello",
			},
			want: "title is required",
		},
		{
			name: "missing markdown",
			args: map[string]interface{}{
				"title": "Report",
			},
			want: "markdown is required",
		},
		{
			name: "bad folderId",
			args: map[string]interface{}{
				"title":    "Report",
				"markdown": "# Hello",
				"folderId": "bad id",
			},
			want: "invalid folderId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleMarkdownToGoogleDoc(ctx, callRequest("markdown_to_google_doc", tt.args), sc)
			if err != nil {
				t.Errorf("handleMarkdownToGoogleDoc() unexpected error = %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatal("handleMarkdownToGoogleDoc() expected error result")
			}
			if got := resultText(t, result); !strings.Contains(got, tt.want) {
				t.Errorf("handleMarkdownToGoogleDoc() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestInsertionPoint(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		wantIndex int64
		wantAtEnd bool
	}{
		{
			name:      "no index defaults to end",
			args:      map[string]interface{}{},
			wantIndex: 0,
			wantAtEnd: true,
		},
		{
			name:      "explicit index",
			args:      map[string]interface{}{"index": float64(42)},
			wantIndex: 42,
			wantAtEnd: false,
		},
		{
			name:      "index below one falls back to end",
			args:      map[string]interface{}{"index": float64(0)},
			wantIndex: 0,
			wantAtEnd: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, atEnd := insertionPoint(tt.args)
			if index != tt.wantIndex || atEnd != tt.wantAtEnd {
				t.Errorf("insertionPoint() = (%d, %v), want (%d, %v)", index, atEnd, tt.wantIndex, tt.wantAtEnd)
			}
		})
	}
}
