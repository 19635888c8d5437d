package instrumentation

import (
	"context"
	"errors"
	"testing"
)

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("markdown_to_google_doc").
		WithService(ServiceDocs).
		WithOperation(OperationCreate).
		WithAccount("writer@example.com").
		WithResource("document", "1AbCdEfG").
		WithReadOnly(true).
		WithBatchSize(12).
		Build()

	if len(attrs) != 8 {
		t.Fatalf("expected 8 attributes, got %d", len(attrs))
	}

	got := make(map[string]interface{}, len(attrs))
	for _, attr := range attrs {
		got[string(attr.Key)] = attr.Value.AsInterface()
	}

	want := map[string]interface{}{
		SpanAttrTool:         "markdown_to_google_doc",
		SpanAttrService:      ServiceDocs,
		SpanAttrOperation:    OperationCreate,
		SpanAttrAccount:      "writer@example.com",
		SpanAttrResourceType: "document",
		SpanAttrResourceID:   "1AbCdEfG",
		SpanAttrReadOnly:     true,
		SpanAttrBatchSize:    int64(12),
	}
	for key, wantVal := range want {
		if got[key] != wantVal {
			t.Errorf("%s = %v, want %v", key, got[key], wantVal)
		}
	}
}

func TestSpanAttributeBuilder_SkipsEmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("docs_get_document").
		WithAccount("").
		WithResource("", "").
		Build()

	if len(attrs) != 1 {
		t.Errorf("expected only the tool attribute, got %d attributes", len(attrs))
	}
}

// newTracingProvider sets the global tracer provider for span helper tests.
func newTracingProvider(t *testing.T) {
	t.Helper()

	provider, err := NewProvider(context.Background(), Config{
		ServiceName:     "docsmith-test",
		ServiceVersion:  "0.0.1",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
}

func TestStartSpanHelpers(t *testing.T) {
	newTracingProvider(t)
	ctx := context.Background()

	spanCtx, span := StartSpan(ctx, "plan.resolve")
	if spanCtx == nil || span == nil {
		t.Fatal("StartSpan returned nil context or span")
	}
	span.End()

	spanCtx, span = StartToolSpan(ctx, "docs_get_document")
	if spanCtx == nil || span == nil {
		t.Fatal("StartToolSpan returned nil context or span")
	}
	span.End()

	spanCtx, span = StartGoogleAPISpan(ctx, ServiceDocs, OperationBatchUpdate)
	if spanCtx == nil || span == nil {
		t.Fatal("StartGoogleAPISpan returned nil context or span")
	}
	span.End()
}

func TestSpanStatusHelpers(t *testing.T) {
	newTracingProvider(t)

	_, span := StartSpan(context.Background(), "plan.dispatch")
	defer span.End()

	SetSpanError(span, errors.New("batch rejected"))
	SetSpanError(span, nil)
	SetSpanSuccess(span)
	AddSpanEvent(span, "batch dispatched",
		NewSpanAttributeBuilder().WithBatchSize(3).Build()...)
}

func TestTraceContextAccessors_NoSpan(t *testing.T) {
	ctx := context.Background()

	if id := GetTraceID(ctx); id != "" {
		t.Errorf("GetTraceID() = %q, want empty without a span", id)
	}
	if id := GetSpanID(ctx); id != "" {
		t.Errorf("GetSpanID() = %q, want empty without a span", id)
	}
	if s := SpanContextString(ctx); s != "" {
		t.Errorf("SpanContextString() = %q, want empty without a span", s)
	}
}
