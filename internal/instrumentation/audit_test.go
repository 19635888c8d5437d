package instrumentation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

const (
	testEmail   = "jane@example.com"
	testDomain  = "example.com"
	testAccount = "work"
	testDocID   = "1AbCdEfGhIjKlMnOp"
)

func attrMap(attrs []slog.Attr) map[string]slog.Attr {
	m := make(map[string]slog.Attr, len(attrs))
	for _, attr := range attrs {
		m[attr.Key] = attr
	}
	return m
}

func TestToolInvocation_Lifecycle(t *testing.T) {
	ti := NewToolInvocation("docs_get_document")

	if ti.Tool != "docs_get_document" {
		t.Errorf("Tool = %q, want docs_get_document", ti.Tool)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should be set on creation")
	}

	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true")
	}
	if ti.Duration < 0 {
		t.Error("Duration should not be negative")
	}
	if ti.Error != "" {
		t.Errorf("Error = %q, want empty", ti.Error)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("drive_share_files")
	ti.CompleteWithError(errors.New("permission denied"))

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != "permission denied" {
		t.Errorf("Error = %q, want permission denied", ti.Error)
	}
}

func TestToolInvocation_Builders(t *testing.T) {
	ti := NewToolInvocation("markdown_to_google_doc").
		WithUser(testEmail).
		WithAccount("personal").
		WithService(ServiceDocs, OperationCreate).
		WithDocument(testDocID).
		CompleteSuccess()

	if ti.UserEmail != testEmail {
		t.Errorf("UserEmail = %q, want %q", ti.UserEmail, testEmail)
	}
	if ti.Account != "personal" {
		t.Errorf("Account = %q, want personal", ti.Account)
	}
	if ti.ServiceName != ServiceDocs || ti.Operation != OperationCreate {
		t.Errorf("service/operation = %q/%q, want %q/%q",
			ti.ServiceName, ti.Operation, ServiceDocs, OperationCreate)
	}
	if ti.DocumentID != testDocID {
		t.Errorf("DocumentID = %q, want %q", ti.DocumentID, testDocID)
	}
	if !ti.Success {
		t.Error("Success should be true")
	}
}

func TestToolInvocation_UserDomain(t *testing.T) {
	ti := NewToolInvocation("docs_get_document").WithUser(testEmail)

	if domain := ti.UserDomain(); domain != testDomain {
		t.Errorf("UserDomain() = %q, want %q", domain, testDomain)
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation("docs_get_document")

	ti.Success = true
	if status := ti.Status(); status != StatusSuccess {
		t.Errorf("Status() = %q, want %q", status, StatusSuccess)
	}

	ti.Success = false
	if status := ti.Status(); status != StatusError {
		t.Errorf("Status() = %q, want %q", status, StatusError)
	}
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation("drive_list_files").
		WithUser(testEmail).
		WithAccount(testAccount).
		WithService(ServiceDrive, OperationList).
		WithDocument(testDocID).
		CompleteSuccess()
	ti.TraceID = "abc123def456"

	m := attrMap(ti.LogAttrs())

	for _, key := range []string{"tool", "user_domain", "duration", "success"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing required attribute %s", key)
		}
	}

	// The operational stream carries the domain, never the full address.
	if domain := m["user_domain"].Value.String(); domain != testDomain {
		t.Errorf("user_domain = %q, want %q", domain, testDomain)
	}
	if _, ok := m["user"]; ok {
		t.Error("full user email must not appear in LogAttrs")
	}

	if service := m["service"].Value.String(); service != ServiceDrive {
		t.Errorf("service = %q, want %q", service, ServiceDrive)
	}
	if op := m["operation"].Value.String(); op != OperationList {
		t.Errorf("operation = %q, want %q", op, OperationList)
	}
	if id := m["document_id"].Value.String(); id != testDocID {
		t.Errorf("document_id = %q, want %q", id, testDocID)
	}
}

func TestToolInvocation_LogAttrs_Error(t *testing.T) {
	ti := NewToolInvocation("drive_delete_files").
		WithUser(testEmail).
		CompleteWithError(errors.New("file not found"))

	m := attrMap(ti.LogAttrs())
	if errVal := m["error"].Value.String(); errVal != "file not found" {
		t.Errorf("error = %q, want file not found", errVal)
	}
}

func TestToolInvocation_LogAttrs_SkipsEmptyFields(t *testing.T) {
	ti := NewToolInvocation("docs_get_document")
	ti.CompleteSuccess()

	m := attrMap(ti.LogAttrs())
	for _, key := range []string{"service", "operation", "document_id", "trace_id", "error"} {
		if _, ok := m[key]; ok {
			t.Errorf("%s should not be present when empty", key)
		}
	}
}

func TestToolInvocation_LogAttrs_ElidesDefaultAccount(t *testing.T) {
	ti := NewToolInvocation("docs_get_document")
	ti.WithAccount("default").CompleteSuccess()

	if _, ok := attrMap(ti.LogAttrs())["account"]; ok {
		t.Error("the default account should not show up as an attribute")
	}
}

func TestToolInvocation_LogAuditAttrs(t *testing.T) {
	ti := NewToolInvocation("drive_share_files").
		WithUser(testEmail).
		WithAccount(testAccount).
		WithService(ServiceDrive, OperationShare).
		CompleteSuccess()
	ti.TraceID = "abc123def456"
	ti.SpanID = "span789"

	m := attrMap(ti.LogAuditAttrs())

	if user := m["user"].Value.String(); user != testEmail {
		t.Errorf("user = %q, want %q", user, testEmail)
	}
	if account := m["account"].Value.String(); account != testAccount {
		t.Errorf("account = %q, want %q", account, testAccount)
	}
	if traceID := m["trace_id"].Value.String(); traceID != "abc123def456" {
		t.Errorf("trace_id = %q, want abc123def456", traceID)
	}
	if spanID := m["span_id"].Value.String(); spanID != "span789" {
		t.Errorf("span_id = %q, want span789", spanID)
	}
}

func TestToolInvocation_LogAuditAttrs_SkipsEmptyFields(t *testing.T) {
	ti := NewToolInvocation("docs_get_document")
	ti.CompleteSuccess()

	m := attrMap(ti.LogAuditAttrs())
	for _, key := range []string{"service", "operation", "span_id"} {
		if _, ok := m[key]; ok {
			t.Errorf("%s should not be present when empty", key)
		}
	}
}

func TestAuditLogger_New(t *testing.T) {
	al := NewAuditLogger(nil)
	if al.logger == nil {
		t.Error("nil logger should fall back to slog.Default")
	}

	logger := slog.Default()
	al = NewAuditLogger(logger)
	if al.logger != logger {
		t.Error("logger should be the provided logger")
	}
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	al.LogToolInvocation(NewToolInvocation("docs_get_document").
		WithUser(testEmail).
		WithAccount(testAccount).
		CompleteSuccess())

	out := buf.String()
	if !strings.Contains(out, "tool_executed") {
		t.Errorf("success entry missing tool_executed: %s", out)
	}
	if !strings.Contains(out, testDomain) {
		t.Errorf("entry should carry the user domain: %s", out)
	}
	if strings.Contains(out, testEmail) {
		t.Errorf("entry must not carry the full email without PII enabled: %s", out)
	}

	buf.Reset()
	al.LogToolInvocation(NewToolInvocation("drive_delete_files").
		WithUser(testEmail).
		CompleteWithError(errors.New("file not found")))

	if out := buf.String(); !strings.Contains(out, "tool_failed") {
		t.Errorf("failure entry missing tool_failed: %s", out)
	}
}

func TestAuditLogger_LogToolInvocation_Disabled(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLoggerWithConfig(slog.New(slog.NewTextHandler(&buf, nil)), AuditLoggingConfig{Enabled: false})

	al.LogToolInvocation(NewToolInvocation("docs_get_document").CompleteSuccess())

	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote output: %s", buf.String())
	}
}

func TestAuditLogger_LogToolAudit(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	al.LogToolAudit(NewToolInvocation("drive_share_files").
		WithUser(testEmail).
		WithAccount(testAccount).
		WithService(ServiceDrive, OperationShare).
		CompleteSuccess())

	out := buf.String()
	if !strings.Contains(out, "tool_audit") {
		t.Errorf("audit entry missing tool_audit: %s", out)
	}
	if !strings.Contains(out, testEmail) {
		t.Errorf("audit entry must carry the full email: %s", out)
	}
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ti := NewToolInvocation("docs_get_document").WithSpanContext(context.Background())

	if ti.TraceID != "" || ti.SpanID != "" {
		t.Errorf("trace/span = %q/%q, want empty without an active span", ti.TraceID, ti.SpanID)
	}
}
