package docs

// DocumentMetadata is the Drive-side metadata for a document, returned
// by the metadata tools alongside the converted content.
type DocumentMetadata struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
	Size         int64  `json:"size,omitempty"`
	WebViewLink  string `json:"webViewLink,omitempty"`
	Owners       []User `json:"owners,omitempty"`
}

// User identifies a Drive user, typically a document owner.
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}
