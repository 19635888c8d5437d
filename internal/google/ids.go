package google

import (
	"fmt"
	"regexp"
)

// googleIDRe matches well-formed Google Drive and Docs resource IDs.
// IDs are URL-safe base64-ish strings between 10 and 100 characters.
var googleIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{10,100}$`)

// ValidateID checks that id looks like a Google Drive or Docs resource
// ID before it is interpolated into an API call. kind names the
// parameter for the error message, e.g. "document_id".
func ValidateID(id, kind string) error {
	if id == "" {
		return fmt.Errorf("%s is required", kind)
	}
	if !googleIDRe.MatchString(id) {
		return fmt.Errorf("invalid %s %q: expected 10-100 characters of letters, digits, hyphen or underscore", kind, id)
	}
	return nil
}
