package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/docsmith/internal/google"
)

// FolderMimeType is the MIME type Drive assigns to folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// Field projections requested from the Drive API. Keeping these as shared
// constants means every call returns the same shape of metadata.
const (
	fileFields       = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, parents, owners, shared, trashed"
	permissionFields = "id, type, role, emailAddress, domain, displayName"
)

// Client wraps the Drive v3 service for a single authorized account.
type Client struct {
	service *drive.Service
	account string
}

// Account returns the account name this client authenticates as.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount reports whether a stored OAuth token exists for account.
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount builds a Drive client authenticated as account. The
// account must have a stored token; callers check HasTokenForAccount first
// and surface authorization instructions otherwise.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	httpClient, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s. Please authorize access first: %w", account, err)
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: svc, account: account}, nil
}

// UploadFile creates a file with the given content.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader, options *UploadOptions) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	file := &drive.File{Name: name}
	if options != nil {
		file.Parents = options.ParentFolders
		file.Description = options.Description
		file.MimeType = options.MimeType
		if options.ModifiedTime != nil {
			file.ModifiedTime = options.ModifiedTime.Format(time.RFC3339)
		}
	}

	created, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(file.MimeType)).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return fileInfoFromAPI(created), nil
}

// ListFiles lists files matching the given options and returns the next
// page token, if any.
func (c *Client) ListFiles(ctx context.Context, options *ListOptions) ([]*FileInfo, string, error) {
	call := c.service.Files.List().
		Context(ctx).
		Fields(googleapi.Field("nextPageToken, files(" + fileFields + ", trashedTime)"))

	if options == nil {
		call = call.Q("trashed=false")
	} else {
		if q := buildListFilesQuery(options.Query, options.IncludeTrashed); q != "" {
			call = call.Q(q)
		}
		if options.MaxResults > 0 {
			call = call.PageSize(int64(options.MaxResults))
		}
		if options.OrderBy != "" {
			call = call.OrderBy(options.OrderBy)
		}
		if options.PageToken != "" {
			call = call.PageToken(options.PageToken)
		}
		if options.Spaces != "" {
			call = call.Spaces(options.Spaces)
		}
	}

	list, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]*FileInfo, len(list.Files))
	for i, f := range list.Files {
		files[i] = fileInfoFromAPI(f)
	}
	return files, list.NextPageToken, nil
}

// GetFile fetches metadata for one file, including its permissions.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(googleapi.Field(fileFields + ", trashedTime, permissions")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	return fileInfoFromAPI(file), nil
}

// DownloadFile streams the raw content of a binary file. The caller closes
// the returned reader.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	return resp.Body, nil
}

// ExportFile converts a Google Workspace document to the requested MIME
// type, e.g. a Doc to "text/markdown" or "application/pdf". The caller
// closes the returned reader.
func (c *Client) ExportFile(ctx context.Context, fileID, mimeType string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if mimeType == "" {
		return nil, fmt.Errorf("mimeType is required")
	}

	resp, err := c.service.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export file %s as %s: %w", fileID, mimeType, err)
	}
	return resp.Body, nil
}

// DeleteFile permanently deletes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

// CreateFolder creates a folder, optionally inside parent folders.
func (c *Client) CreateFolder(ctx context.Context, name string, parentFolders []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	folder := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  parentFolders,
	}

	created, err := c.service.Files.Create(folder).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return fileInfoFromAPI(created), nil
}

// MoveFile reparents or renames a file.
func (c *Client) MoveFile(ctx context.Context, fileID string, options *MoveOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("move options are required")
	}

	call := c.service.Files.Update(fileID, &drive.File{Name: options.NewName}).
		Context(ctx).
		Fields(fileFields)
	if len(options.AddParents) > 0 {
		call = call.AddParents(strings.Join(options.AddParents, ","))
	}
	if len(options.RemoveParents) > 0 {
		call = call.RemoveParents(strings.Join(options.RemoveParents, ","))
	}

	moved, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move file: %w", err)
	}
	return fileInfoFromAPI(moved), nil
}

// CopyFile copies a file, optionally with a new name and parents.
func (c *Client) CopyFile(ctx context.Context, fileID string, options *CopyOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file := &drive.File{}
	if options != nil {
		file.Name = options.Name
		file.Parents = options.ParentFolders
	}

	copied, err := c.service.Files.Copy(fileID, file).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}
	return fileInfoFromAPI(copied), nil
}

// ShareFile grants a permission on a file.
func (c *Client) ShareFile(ctx context.Context, fileID string, options *ShareOptions) (*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("share options are required")
	}
	if options.Type == "" {
		return nil, fmt.Errorf("permission type is required")
	}
	if options.Role == "" {
		return nil, fmt.Errorf("permission role is required")
	}

	perm := &drive.Permission{
		Type:         options.Type,
		Role:         options.Role,
		EmailAddress: options.EmailAddress,
		Domain:       options.Domain,
	}

	call := c.service.Permissions.Create(fileID, perm).
		Context(ctx).
		Fields(permissionFields)
	if options.SendNotificationEmail {
		call = call.SendNotificationEmail(true)
		if options.EmailMessage != "" {
			call = call.EmailMessage(options.EmailMessage)
		}
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to share file: %w", err)
	}
	return permissionFromAPI(created), nil
}

// ListPermissions lists the permissions on a file.
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	list, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields(googleapi.Field("permissions(" + permissionFields + ")")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	perms := make([]*Permission, len(list.Permissions))
	for i, p := range list.Permissions {
		perms[i] = permissionFromAPI(p)
	}
	return perms, nil
}

// RemovePermission revokes a single permission on a file.
func (c *Client) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if permissionID == "" {
		return fmt.Errorf("permissionID is required")
	}
	if err := c.service.Permissions.Delete(fileID, permissionID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove permission: %w", err)
	}
	return nil
}

// buildListFilesQuery combines a user query with the trashed filter. The
// user query is parenthesized so its operator precedence survives.
func buildListFilesQuery(userQuery string, includeTrashed bool) string {
	if includeTrashed {
		return userQuery
	}
	if userQuery == "" {
		return "trashed=false"
	}
	return fmt.Sprintf("(%s) and trashed=false", userQuery)
}

func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func fileInfoFromAPI(f *drive.File) *FileInfo {
	info := &FileInfo{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		CreatedTime:    parseAPITime(f.CreatedTime),
		ModifiedTime:   parseAPITime(f.ModifiedTime),
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		Parents:        f.Parents,
		Shared:         f.Shared,
		Trashed:        f.Trashed,
	}

	if t := parseAPITime(f.TrashedTime); !t.IsZero() {
		info.TrashedTime = &t
	}

	for _, owner := range f.Owners {
		info.Owners = append(info.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
			PhotoLink:    owner.PhotoLink,
		})
	}
	for _, perm := range f.Permissions {
		info.Permissions = append(info.Permissions, *permissionFromAPI(perm))
	}
	return info
}

func permissionFromAPI(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
		DisplayName:  p.DisplayName,
	}
}
