package docs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	docsapi "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/teemow/docsmith/internal/google"
	"github.com/teemow/docsmith/internal/markdown"
)

// Client wraps the Google Docs and Drive API services
type Client struct {
	docsService   *docsapi.Service
	driveService  *drive.Service
	account       string // The account this client is associated with
	tokenProvider google.TokenProvider
	dispatcher    *Dispatcher
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// SetBatchRecorder sets an optional recorder for batchUpdate outcomes
func (c *Client) SetBatchRecorder(r BatchRecorder) {
	c.dispatcher.SetRecorder(r)
}

// HasTokenForAccountWithProvider checks if a valid OAuth token exists for the specified account
func HasTokenForAccountWithProvider(account string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForAccount(account)
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	provider := google.NewFileTokenProvider()
	return HasTokenForAccountWithProvider(account, provider)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// NewClientForAccountWithProvider creates a new Google Docs client with OAuth2 authentication for a specific account
// The OAuth token is retrieved from the provided token provider
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	// Get token from the provided provider
	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	// Create OAuth2 config and token source
	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	// Create HTTP client with the token
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	// Create Docs service
	docsService, err := docsapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	// Create Drive service
	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	c := &Client{
		docsService:   docsService,
		driveService:  driveService,
		account:       account,
		tokenProvider: tokenProvider,
	}
	c.dispatcher = NewDispatcher(c)
	return c, nil
}

// NewClientForAccount creates a new Google Docs client with OAuth2 authentication for a specific account
// Uses the default file-based token provider
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	provider := google.NewFileTokenProvider()
	return NewClientForAccountWithProvider(ctx, account, provider)
}

// NewClientWithProvider creates a new Google Docs client with OAuth2 authentication for the default account
// using the provided token provider
func NewClientWithProvider(ctx context.Context, provider google.TokenProvider) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, "default", provider)
}

// NewClient creates a new Google Docs client with OAuth2 authentication for the default account
// Returns an error if no valid token exists - use HasToken() to check first
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// GetDocument retrieves a Google Doc's content by document ID
// This method automatically fetches all tabs to support documents with multiple tabs (introduced Oct 2024)
func (c *Client) GetDocument(documentID string) (*docsapi.Document, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	// Use includeTabsContent=true to fetch all tabs in documents that have them
	// This returns document.tabs populated for multi-tab docs, or document.body for legacy docs
	doc, err := c.docsService.Documents.Get(documentID).IncludeTabsContent(true).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}

	return doc, nil
}

// GetDocumentAsMarkdown converts a Google Doc to Markdown format
func (c *Client) GetDocumentAsMarkdown(documentID string) (string, error) {
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return "", err
	}

	return DocumentToMarkdown(doc)
}

// GetDocumentAsPlainText extracts plain text from a Google Doc
func (c *Client) GetDocumentAsPlainText(documentID string) (string, error) {
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return "", err
	}

	return DocumentToPlainText(doc)
}

// GetFileMetadata retrieves metadata for any Google Drive file
func (c *Client) GetFileMetadata(fileID string) (*DocumentMetadata, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.driveService.Files.Get(fileID).
		Fields("id, name, mimeType, createdTime, modifiedTime, size, webViewLink, owners").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata %s: %w", fileID, err)
	}

	metadata := &DocumentMetadata{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		CreatedTime:  file.CreatedTime,
		ModifiedTime: file.ModifiedTime,
		Size:         file.Size,
		WebViewLink:  file.WebViewLink,
	}

	for _, owner := range file.Owners {
		metadata.Owners = append(metadata.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}

	return metadata, nil
}

// BatchUpdate executes a batch of requests against a document.
// All requests in one call apply atomically on the API side.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []*docsapi.Request) error {
	if len(requests) == 0 {
		return nil
	}
	_, err := c.docsService.Documents.BatchUpdate(documentID, &docsapi.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to batch update document %s: %w", documentID, err)
	}
	return nil
}

// DocumentEndIndex returns the end index of the document body, the
// index of its final implicit newline plus one. An empty or missing
// body yields 1.
func DocumentEndIndex(doc *docsapi.Document) int64 {
	body := doc.Body
	if body == nil && len(doc.Tabs) > 0 && doc.Tabs[0].DocumentTab != nil {
		body = doc.Tabs[0].DocumentTab.Body
	}
	if body == nil || len(body.Content) == 0 {
		return 1
	}
	return body.Content[len(body.Content)-1].EndIndex
}

// CreateDocument creates an empty Google Doc with the given title
func (c *Client) CreateDocument(ctx context.Context, title string) (*docsapi.Document, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	doc, err := c.docsService.Documents.Create(&docsapi.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// CreateDocumentFromMarkdown creates a new Google Doc and fills it with
// the rendered Markdown content. When folderID is set the document is
// moved there after creation.
func (c *Client) CreateDocumentFromMarkdown(ctx context.Context, title, source, folderID string) (*docsapi.Document, error) {
	doc, err := c.CreateDocument(ctx, title)
	if err != nil {
		return nil, err
	}

	ops := PlanFresh(Flatten(markdown.Parse(source)))
	if err := c.dispatcher.Dispatch(ctx, doc.DocumentId, ops); err != nil {
		return nil, fmt.Errorf("failed to write content to document %s: %w", doc.DocumentId, err)
	}

	if folderID != "" {
		if err := c.MoveToFolder(ctx, doc.DocumentId, folderID); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// AppendMarkdown appends rendered Markdown content to the end of a document
func (c *Client) AppendMarkdown(ctx context.Context, documentID, source string) error {
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return err
	}

	ops := PlanAppend(DocumentEndIndex(doc), Flatten(markdown.Parse(source)))
	return c.dispatcher.Dispatch(ctx, documentID, ops)
}

// ReplaceWithMarkdown replaces a document's entire body with rendered
// Markdown content
func (c *Client) ReplaceWithMarkdown(ctx context.Context, documentID, source string) error {
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return err
	}

	ops := PlanReplace(DocumentEndIndex(doc), Flatten(markdown.Parse(source)))
	return c.dispatcher.Dispatch(ctx, documentID, ops)
}

// InsertHeading inserts a styled heading paragraph. With atEnd the
// heading goes after the existing content, otherwise at index.
func (c *Client) InsertHeading(ctx context.Context, documentID, text string, level int, index int64, atEnd bool) error {
	if text == "" {
		return fmt.Errorf("heading text is required")
	}

	f := Flatten([]markdown.Block{{
		Kind:  markdown.KindHeading,
		Level: level,
		Spans: []markdown.Span{{Text: text}},
	}})

	return c.insertFlattened(ctx, documentID, f, index, atEnd)
}

// InsertBulletList inserts the items as a bulleted or numbered list.
// With atEnd the list goes after the existing content, otherwise at index.
func (c *Client) InsertBulletList(ctx context.Context, documentID string, items []string, ordered bool, index int64, atEnd bool) error {
	kind := markdown.KindBulletItem
	if ordered {
		kind = markdown.KindNumberedItem
	}

	var blocks []markdown.Block
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		blocks = append(blocks, markdown.Block{
			Kind:  kind,
			Spans: []markdown.Span{{Text: item}},
		})
	}
	if len(blocks) == 0 {
		return fmt.Errorf("at least one non-empty item is required")
	}

	return c.insertFlattened(ctx, documentID, Flatten(blocks), index, atEnd)
}

func (c *Client) insertFlattened(ctx context.Context, documentID string, f *Flattened, index int64, atEnd bool) error {
	var ops []Operation
	if atEnd {
		doc, err := c.GetDocument(documentID)
		if err != nil {
			return err
		}
		ops = PlanAppend(DocumentEndIndex(doc), f)
	} else {
		if index < 1 {
			return fmt.Errorf("%w: index %d", ErrOffsetOutOfRange, index)
		}
		doc, err := c.GetDocument(documentID)
		if err != nil {
			return err
		}
		if end := DocumentEndIndex(doc); index >= end {
			return fmt.Errorf("%w: index %d exceeds document end %d", ErrOffsetOutOfRange, index, end)
		}
		ops = PlanInsertAt(index, f)
	}
	return c.dispatcher.Dispatch(ctx, documentID, ops)
}

// FormatText applies inline text styling to an explicit range. Fields
// lists which attributes to write; listed attributes with false values
// are cleared.
func (c *Client) FormatText(ctx context.Context, documentID string, start, end int64, attr markdown.Attributes, fields []string) error {
	if start < 1 || end <= start {
		return fmt.Errorf("%w: range [%d, %d)", ErrOffsetOutOfRange, start, end)
	}
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return err
	}
	if docEnd := DocumentEndIndex(doc); end > docEnd {
		return fmt.Errorf("%w: range [%d, %d) exceeds document end %d", ErrOffsetOutOfRange, start, end, docEnd)
	}
	return c.dispatcher.Dispatch(ctx, documentID, PlanTextStyle(start, end, attr, fields))
}

// MoveToFolder moves a file out of its current parents into folderID
func (c *Client) MoveToFolder(ctx context.Context, fileID, folderID string) error {
	file, err := c.driveService.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get parents of %s: %w", fileID, err)
	}

	call := c.driveService.Files.Update(fileID, nil).AddParents(folderID)
	if len(file.Parents) > 0 {
		call = call.RemoveParents(strings.Join(file.Parents, ","))
	}
	if _, err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to move %s to folder %s: %w", fileID, folderID, err)
	}
	return nil
}
