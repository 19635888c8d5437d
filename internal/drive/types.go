package drive

import "time"

// FileInfo is the metadata docsmith keeps about a Drive file or folder,
// projected from the API's File resource. Size is zero for folders and
// Workspace documents; TrashedTime is nil unless the file is in the trash.
type FileInfo struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	MimeType       string       `json:"mimeType"`
	Size           int64        `json:"size,omitempty"`
	CreatedTime    time.Time    `json:"createdTime"`
	ModifiedTime   time.Time    `json:"modifiedTime"`
	WebViewLink    string       `json:"webViewLink,omitempty"`
	WebContentLink string       `json:"webContentLink,omitempty"`
	Parents        []string     `json:"parents,omitempty"`
	Owners         []User       `json:"owners,omitempty"`
	Shared         bool         `json:"shared"`
	Permissions    []Permission `json:"permissions,omitempty"`
	TrashedTime    *time.Time   `json:"trashedTime,omitempty"`
	Trashed        bool         `json:"trashed"`
}

// User identifies a Drive account, as file owner or permission holder.
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	PhotoLink    string `json:"photoLink,omitempty"`
}

// Permission is one grant on a file. Type is one of user, group, domain or
// anyone; Role is one of owner, organizer, fileOrganizer, writer, commenter
// or reader.
type Permission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// ListOptions filters and pages a file listing.
type ListOptions struct {
	// Query uses Drive's search syntax, e.g. "name contains 'report'" or
	// "'me' in owners". See
	// https://developers.google.com/drive/api/guides/search-files
	Query string

	// MaxResults caps the page size (Drive allows up to 1000).
	MaxResults int

	// OrderBy is a sort expression like "folder,modifiedTime desc,name".
	OrderBy string

	// PageToken resumes a listing from a previous response.
	PageToken string

	// IncludeTrashed disables the default trashed=false filter.
	IncludeTrashed bool

	// Spaces restricts the search to drive, appDataFolder or photos.
	Spaces string
}

// UploadOptions carries the optional metadata for a file upload. When
// MimeType is empty, Drive detects the type from the content.
type UploadOptions struct {
	ParentFolders []string
	Description   string
	MimeType      string
	ModifiedTime  *time.Time
}

// CopyOptions names and places a file copy. An empty Name lets Drive pick
// one ("Copy of ...").
type CopyOptions struct {
	Name          string
	ParentFolders []string
}

// MoveOptions renames a file or changes its parent folders. An empty
// NewName keeps the current name.
type MoveOptions struct {
	NewName       string
	AddParents    []string
	RemoveParents []string
}

// ShareOptions describes a permission grant. EmailAddress is required for
// the user and group types, Domain for the domain type.
type ShareOptions struct {
	Type                  string
	Role                  string
	EmailAddress          string
	Domain                string
	SendNotificationEmail bool
	EmailMessage          string
}
