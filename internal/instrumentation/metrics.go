package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys shared across metrics.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrTool      = "tool"
	attrAccount   = "account"
)

// Metrics records the counters and histograms the server emits: HTTP
// transport, Google API calls, OAuth flows, MCP tool invocations and Docs
// batchUpdate dispatches. A zero Metrics is safe to use; every recorder
// is a no-op until the instruments are created by NewMetrics.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	batchUpdatesTotal metric.Int64Counter
	batchPlanSize     metric.Int64Histogram

	// detailedLabels opts account names into the tool metrics.
	detailedLabels bool
}

// NewMetrics creates every instrument on the given meter. The first
// creation error aborts the whole set.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	var err error
	counter := func(name, desc, unit string) metric.Int64Counter {
		if err != nil {
			return nil
		}
		var c metric.Int64Counter
		c, err = meter.Int64Counter(name,
			metric.WithDescription(desc),
			metric.WithUnit(unit),
		)
		if err != nil {
			err = fmt.Errorf("create %s: %w", name, err)
		}
		return c
	}
	histogram := func(name, desc string, buckets ...float64) metric.Float64Histogram {
		if err != nil {
			return nil
		}
		var h metric.Float64Histogram
		h, err = meter.Float64Histogram(name,
			metric.WithDescription(desc),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(buckets...),
		)
		if err != nil {
			err = fmt.Errorf("create %s: %w", name, err)
		}
		return h
	}

	m.httpRequestsTotal = counter("http_requests_total",
		"Total number of HTTP requests", "{request}")
	m.httpRequestDuration = histogram("http_request_duration_seconds",
		"HTTP request duration in seconds",
		0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0)

	m.googleAPIOperationsTotal = counter("google_api_operations_total",
		"Total number of Google API operations", "{operation}")
	m.googleAPIOperationDuration = histogram("google_api_operation_duration_seconds",
		"Google API operation duration in seconds",
		0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0)

	m.oauthAuthTotal = counter("oauth_auth_total",
		"Total number of OAuth authentication attempts", "{attempt}")
	m.oauthTokenRefreshTotal = counter("oauth_token_refresh_total",
		"Total number of OAuth token refresh attempts", "{attempt}")

	m.toolInvocationsTotal = counter("mcp_tool_invocations_total",
		"Total number of MCP tool invocations", "{invocation}")
	m.toolDuration = histogram("mcp_tool_duration_seconds",
		"MCP tool execution duration in seconds",
		0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0)

	m.batchUpdatesTotal = counter("docs_batch_updates_total",
		"Total number of Docs batchUpdate calls", "{call}")
	if err == nil {
		m.batchPlanSize, err = meter.Int64Histogram("docs_batch_plan_operations",
			metric.WithDescription("Number of operations per dispatched mutation plan"),
			metric.WithUnit("{operation}"),
			metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 25, 50, 100, 250, 500),
		)
		if err != nil {
			err = fmt.Errorf("create docs_batch_plan_operations: %w", err)
		}
	}

	if err == nil {
		m.activeSessions, err = meter.Int64UpDownCounter("active_sessions",
			metric.WithDescription("Number of active user sessions"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			err = fmt.Errorf("create active_sessions: %w", err)
		}
	}

	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordGoogleAPIOperation records one Google API call. Service is "drive"
// or "docs", operation comes from the fixed Operation* set, status is
// StatusSuccess or StatusError.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.googleAPIOperationsTotal.Add(ctx, 1, attrs)
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordOAuthAuth records an OAuth authentication attempt.
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m.oauthAuthTotal == nil {
		return
	}
	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordOAuthTokenRefresh records an OAuth token refresh attempt. Result is
// one of the OAuthResult* constants.
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m.oauthTokenRefreshTotal == nil {
		return
	}
	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordToolInvocation records one MCP tool call without account labels.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordToolInvocationWithAccount is RecordToolInvocation plus an account
// label. The label is only attached when detailed labels are enabled, since
// account names are unbounded.
func (m *Metrics) RecordToolInvocationWithAccount(ctx context.Context, toolName, status, account string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordBatchUpdate records one Docs batchUpdate dispatch and the number of
// operations in the plan it carried.
func (m *Metrics) RecordBatchUpdate(ctx context.Context, status string, operations int) {
	if m.batchUpdatesTotal == nil || m.batchPlanSize == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrStatus, status))
	m.batchUpdatesTotal.Add(ctx, 1, attrs)
	m.batchPlanSize.Record(ctx, int64(operations), attrs)
}

// IncrementActiveSessions bumps the active session gauge.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions drops the active session gauge.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, -1)
}
