package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
)

// Attribute keys shared across the codebase.
const (
	KeyOperation  = "operation"
	KeyService    = "service"
	KeyAccount    = "account"
	KeyUserHash   = "user_hash"
	KeyDuration   = "duration"
	KeyStatus     = "status"
	KeyError      = "error"
	KeyTool       = "tool"
	KeyDocumentID = "document_id"
	KeyRequests   = "requests"
	KeyApplied    = "applied"
)

// Status values. Duplicated from the instrumentation package because
// instrumentation imports logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation returns the operation name attribute.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Service returns the Google service name attribute.
func Service(svc string) slog.Attr {
	return slog.String(KeyService, svc)
}

// Account returns the account name attribute.
func Account(account string) slog.Attr {
	return slog.String(KeyAccount, account)
}

// Tool returns the MCP tool name attribute.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns the status attribute.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// DocumentID returns the attribute for a Google Doc or Drive file ID.
// IDs are not PII, so they are logged verbatim.
func DocumentID(id string) slog.Attr {
	return slog.String(KeyDocumentID, id)
}

// Requests returns the attribute for the size of a batchUpdate plan.
func Requests(n int) slog.Attr {
	return slog.Int(KeyRequests, n)
}

// Applied returns the attribute for how many requests of a plan had been
// applied when a dispatch stopped.
func Applied(n int) slog.Attr {
	return slog.Int(KeyApplied, n)
}

// Err returns the error attribute. A nil err yields an empty group that
// slog omits, so Err(maybeNil) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail hashes an email so log entries can be correlated per user
// without exposing the address.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// UserHash returns the anonymized user attribute.
func UserHash(email string) slog.Attr {
	return slog.String(KeyUserHash, AnonymizeEmail(email))
}

// SanitizeToken reduces a token to a length indicator. Even partial token
// prefixes can aid attacks, so no content survives.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// ExtractDomain returns the domain part of an email address, or "" when
// the input is not a plain user@domain address.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// Domain returns the lower-cardinality user domain attribute.
func Domain(email string) slog.Attr {
	return slog.String("user_domain", ExtractDomain(email))
}
