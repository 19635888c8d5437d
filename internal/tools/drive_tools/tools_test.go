package drive_tools

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/server"
)

func registeredTools(t *testing.T, readOnly bool) map[string]bool {
	t.Helper()

	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	s := mcpserver.NewMCPServer("docsmith-test", "0.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	if err := RegisterDriveTools(s, sc, readOnly); err != nil {
		t.Fatalf("RegisterDriveTools() error = %v", err)
	}

	names := make(map[string]bool)
	for _, tool := range s.ListTools() {
		names[tool.Tool.Name] = true
	}
	return names
}

func TestRegisterDriveTools(t *testing.T) {
	names := registeredTools(t, false)

	for _, want := range []string{
		"drive_upload_file", "drive_list_files", "drive_get_files",
		"drive_download_files", "drive_export_file", "drive_copy_file",
		"drive_delete_files", "drive_create_folder", "drive_move_file",
		"drive_share_files", "drive_list_permissions", "drive_remove_permission",
	} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestRegisterDriveTools_ReadOnly(t *testing.T) {
	names := registeredTools(t, true)

	for _, read := range []string{
		"drive_list_files", "drive_get_files", "drive_download_files",
		"drive_export_file", "drive_list_permissions",
	} {
		if !names[read] {
			t.Errorf("read tool %s missing in read-only mode", read)
		}
	}
	for _, write := range []string{
		"drive_upload_file", "drive_copy_file", "drive_delete_files",
		"drive_create_folder", "drive_move_file", "drive_share_files",
		"drive_remove_permission",
	} {
		if names[write] {
			t.Errorf("write tool %s registered in read-only mode", write)
		}
	}
}

func TestParseCommaList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single value",
			input:    "folder-id-1",
			expected: []string{"folder-id-1"},
		},
		{
			name:     "multiple values",
			input:    "folder-id-1,folder-id-2",
			expected: []string{"folder-id-1", "folder-id-2"},
		},
		{
			name:     "values with spaces",
			input:    "folder-id-1, folder-id-2 , folder-id-3",
			expected: []string{"folder-id-1", "folder-id-2", "folder-id-3"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCommaList(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("Expected %d items, got %d", len(tt.expected), len(result))
				return
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("Item %d: expected %s, got %s", i, tt.expected[i], v)
				}
			}
		})
	}
}
