package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestStringAttrConstructors(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"Operation", Operation("dispatch"), KeyOperation, "dispatch"},
		{"Service", Service("docs"), KeyService, "docs"},
		{"Account", Account("work"), KeyAccount, "work"},
		{"Tool", Tool("docs_get_document"), KeyTool, "docs_get_document"},
		{"Status", Status(StatusSuccess), KeyStatus, "success"},
		{"DocumentID", DocumentID("1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"), KeyDocumentID, "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestBatchAttrs(t *testing.T) {
	attr := Requests(42)
	if attr.Key != KeyRequests || attr.Value.Int64() != 42 {
		t.Errorf("Requests(42) = %s=%d, want %s=42", attr.Key, attr.Value.Int64(), KeyRequests)
	}

	attr = Applied(7)
	if attr.Key != KeyApplied || attr.Value.Int64() != 7 {
		t.Errorf("Applied(7) = %s=%d, want %s=7", attr.Key, attr.Value.Int64(), KeyApplied)
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("batch rejected"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "batch rejected" {
		t.Errorf("Err value = %q, want batch rejected", attr.Value.String())
	}

	// Err(nil) yields an empty group that slog omits entirely.
	if attr := Err(nil); attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty group", attr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	if AnonymizeEmail("") != "" {
		t.Error("empty email should stay empty")
	}

	hash := AnonymizeEmail("jane@example.com")
	if len(hash) != 21 || hash[:5] != "user:" {
		t.Errorf("AnonymizeEmail() = %q, want user: prefix and 16 hex chars", hash)
	}

	if hash != AnonymizeEmail("jane@example.com") {
		t.Error("hashing must be deterministic for correlation")
	}
	if hash == AnonymizeEmail("john@example.com") {
		t.Error("different emails must hash differently")
	}
}

func TestUserHash(t *testing.T) {
	attr := UserHash("jane@example.com")
	if attr.Key != KeyUserHash {
		t.Errorf("UserHash key = %q, want %q", attr.Key, KeyUserHash)
	}
	if len(attr.Value.String()) != 21 {
		t.Errorf("UserHash value length = %d, want 21", len(attr.Value.String()))
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		if got := SanitizeToken(tt.token); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@example.com", "example.com"},
		{"user@gmail.com", "gmail.com"},
		{"invalid", ""},
		{"", ""},
		{"@", ""},
		{"user@", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.email); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestDomain(t *testing.T) {
	attr := Domain("jane@example.com")
	if attr.Key != "user_domain" {
		t.Errorf("Domain key = %q, want user_domain", attr.Key)
	}
	if attr.Value.String() != "example.com" {
		t.Errorf("Domain value = %q, want example.com", attr.Value.String())
	}
}
