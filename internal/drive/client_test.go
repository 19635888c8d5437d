package drive

import (
	"testing"
	"time"

	drive "google.golang.org/api/drive/v3"
)

const docMimeType = "application/vnd.google-apps.document"

func TestFileInfoFromAPI(t *testing.T) {
	createdTime := "2025-03-01T10:00:00Z"
	modifiedTime := "2025-03-02T15:30:00Z"
	trashedTime := "2025-03-03T20:00:00Z"

	driveFile := &drive.File{
		Id:             "1AbCdEfGhIjK",
		Name:           "Release Notes",
		MimeType:       docMimeType,
		Size:           2048,
		CreatedTime:    createdTime,
		ModifiedTime:   modifiedTime,
		TrashedTime:    trashedTime,
		WebViewLink:    "https://docs.google.com/document/d/1AbCdEfGhIjK/edit",
		WebContentLink: "https://drive.google.com/uc?id=1AbCdEfGhIjK",
		Parents:        []string{"folderA", "folderB"},
		Shared:         true,
		Trashed:        true,
		Owners: []*drive.User{
			{
				DisplayName:  "Doc Owner",
				EmailAddress: "owner@example.com",
				PhotoLink:    "https://example.com/photo.jpg",
			},
		},
		Permissions: []*drive.Permission{
			{
				Id:           "perm123",
				Type:         "user",
				Role:         "reader",
				EmailAddress: "reader@example.com",
				DisplayName:  "Doc Reader",
			},
		},
	}

	fileInfo := fileInfoFromAPI(driveFile)

	if fileInfo.ID != "1AbCdEfGhIjK" {
		t.Errorf("ID = %s, want 1AbCdEfGhIjK", fileInfo.ID)
	}
	if fileInfo.Name != "Release Notes" {
		t.Errorf("Name = %s, want 'Release Notes'", fileInfo.Name)
	}
	if fileInfo.MimeType != docMimeType {
		t.Errorf("MimeType = %s, want %s", fileInfo.MimeType, docMimeType)
	}
	if fileInfo.Size != 2048 {
		t.Errorf("Size = %d, want 2048", fileInfo.Size)
	}
	if fileInfo.WebViewLink != "https://docs.google.com/document/d/1AbCdEfGhIjK/edit" {
		t.Errorf("unexpected WebViewLink %s", fileInfo.WebViewLink)
	}
	if fileInfo.WebContentLink != "https://drive.google.com/uc?id=1AbCdEfGhIjK" {
		t.Errorf("unexpected WebContentLink %s", fileInfo.WebContentLink)
	}
	if !fileInfo.Shared {
		t.Error("Shared = false, want true")
	}
	if !fileInfo.Trashed {
		t.Error("Trashed = false, want true")
	}

	if len(fileInfo.Parents) != 2 || fileInfo.Parents[0] != "folderA" || fileInfo.Parents[1] != "folderB" {
		t.Errorf("Parents = %v, want [folderA folderB]", fileInfo.Parents)
	}

	expectedCreated, _ := time.Parse(time.RFC3339, createdTime)
	if !fileInfo.CreatedTime.Equal(expectedCreated) {
		t.Errorf("CreatedTime = %v, want %v", fileInfo.CreatedTime, expectedCreated)
	}
	expectedModified, _ := time.Parse(time.RFC3339, modifiedTime)
	if !fileInfo.ModifiedTime.Equal(expectedModified) {
		t.Errorf("ModifiedTime = %v, want %v", fileInfo.ModifiedTime, expectedModified)
	}
	if fileInfo.TrashedTime == nil {
		t.Error("TrashedTime = nil, want set")
	} else {
		expectedTrashed, _ := time.Parse(time.RFC3339, trashedTime)
		if !fileInfo.TrashedTime.Equal(expectedTrashed) {
			t.Errorf("TrashedTime = %v, want %v", *fileInfo.TrashedTime, expectedTrashed)
		}
	}

	if len(fileInfo.Owners) != 1 {
		t.Fatalf("len(Owners) = %d, want 1", len(fileInfo.Owners))
	}
	owner := fileInfo.Owners[0]
	if owner.DisplayName != "Doc Owner" || owner.EmailAddress != "owner@example.com" {
		t.Errorf("Owner = %+v, want Doc Owner <owner@example.com>", owner)
	}
	if owner.PhotoLink != "https://example.com/photo.jpg" {
		t.Errorf("unexpected owner PhotoLink %s", owner.PhotoLink)
	}

	if len(fileInfo.Permissions) != 1 {
		t.Fatalf("len(Permissions) = %d, want 1", len(fileInfo.Permissions))
	}
	perm := fileInfo.Permissions[0]
	if perm.ID != "perm123" || perm.Type != "user" || perm.Role != "reader" {
		t.Errorf("Permission = %+v, want user/reader perm123", perm)
	}
	if perm.EmailAddress != "reader@example.com" || perm.DisplayName != "Doc Reader" {
		t.Errorf("Permission identity = %+v, want Doc Reader <reader@example.com>", perm)
	}
}

func TestFileInfoFromAPI_MinimalData(t *testing.T) {
	fileInfo := fileInfoFromAPI(&drive.File{
		Id:       "2XyZ",
		Name:     "notes.txt",
		MimeType: "text/plain",
	})

	if fileInfo.ID != "2XyZ" || fileInfo.Name != "notes.txt" || fileInfo.MimeType != "text/plain" {
		t.Errorf("fileInfo = %+v, want id/name/mime only", fileInfo)
	}
	if fileInfo.Size != 0 {
		t.Errorf("Size = %d, want 0", fileInfo.Size)
	}
	if len(fileInfo.Owners) != 0 || len(fileInfo.Permissions) != 0 {
		t.Errorf("expected no owners or permissions, got %+v", fileInfo)
	}
	if fileInfo.TrashedTime != nil {
		t.Errorf("TrashedTime = %v, want nil", fileInfo.TrashedTime)
	}
}

func TestPermissionFromAPI(t *testing.T) {
	permission := permissionFromAPI(&drive.Permission{
		Id:           "perm456",
		Type:         "group",
		Role:         "writer",
		EmailAddress: "docs-team@example.com",
		Domain:       "example.com",
		DisplayName:  "Docs Team",
	})

	if permission.ID != "perm456" || permission.Type != "group" || permission.Role != "writer" {
		t.Errorf("permission = %+v, want group/writer perm456", permission)
	}
	if permission.EmailAddress != "docs-team@example.com" {
		t.Errorf("EmailAddress = %s, want docs-team@example.com", permission.EmailAddress)
	}
	if permission.Domain != "example.com" {
		t.Errorf("Domain = %s, want example.com", permission.Domain)
	}
	if permission.DisplayName != "Docs Team" {
		t.Errorf("DisplayName = %s, want 'Docs Team'", permission.DisplayName)
	}
}

func TestPermissionFromAPI_MinimalData(t *testing.T) {
	permission := permissionFromAPI(&drive.Permission{
		Id:   "perm789",
		Type: "anyone",
		Role: "reader",
	})

	if permission.ID != "perm789" || permission.Type != "anyone" || permission.Role != "reader" {
		t.Errorf("permission = %+v, want anyone/reader perm789", permission)
	}
	if permission.EmailAddress != "" || permission.Domain != "" || permission.DisplayName != "" {
		t.Errorf("expected empty identity fields, got %+v", permission)
	}
}

func TestAccount(t *testing.T) {
	client := &Client{account: "work"}

	if client.Account() != "work" {
		t.Errorf("Account() = %s, want work", client.Account())
	}
}

func TestHasTokenForAccount(t *testing.T) {
	// Token file handling itself is covered in the google package; this
	// only checks the wrapper is callable without a token present.
	_ = HasTokenForAccount("work")
}

func TestFolderMimeType(t *testing.T) {
	if FolderMimeType != "application/vnd.google-apps.folder" {
		t.Errorf("FolderMimeType = %s", FolderMimeType)
	}
}

func TestBuildListFilesQuery(t *testing.T) {
	tests := []struct {
		name           string
		userQuery      string
		includeTrashed bool
		expected       string
	}{
		{
			name:      "user query excludes trashed by default",
			userQuery: "mimeType='" + docMimeType + "'",
			expected:  "(mimeType='" + docMimeType + "') and trashed=false",
		},
		{
			name:           "user query with trashed included",
			userQuery:      "mimeType='" + docMimeType + "'",
			includeTrashed: true,
			expected:       "mimeType='" + docMimeType + "'",
		},
		{
			name:     "no user query excludes trashed",
			expected: "trashed=false",
		},
		{
			name:           "no user query with trashed included",
			includeTrashed: true,
			expected:       "",
		},
		{
			name:      "name filter with or",
			userQuery: "name contains 'design' or name contains 'notes'",
			expected:  "(name contains 'design' or name contains 'notes') and trashed=false",
		},
		{
			name:      "folders only",
			userQuery: "mimeType='" + FolderMimeType + "'",
			expected:  "(mimeType='" + FolderMimeType + "') and trashed=false",
		},
		{
			name:      "query with parentheses",
			userQuery: "(starred=true or sharedWithMe) and name contains 'spec'",
			expected:  "((starred=true or sharedWithMe) and name contains 'spec') and trashed=false",
		},
		{
			name:      "owned files",
			userQuery: "'me' in owners",
			expected:  "('me' in owners) and trashed=false",
		},
		{
			name:      "date filter",
			userQuery: "modifiedTime > '2025-01-01T00:00:00'",
			expected:  "(modifiedTime > '2025-01-01T00:00:00') and trashed=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildListFilesQuery(tt.userQuery, tt.includeTrashed)
			if result != tt.expected {
				t.Errorf("buildListFilesQuery(%q, %v) = %q, want %q",
					tt.userQuery, tt.includeTrashed, result, tt.expected)
			}
		})
	}
}
