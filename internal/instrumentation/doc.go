// Package instrumentation wires OpenTelemetry metrics, tracing and audit
// logging into the docsmith MCP server.
//
// Provider owns the exporter lifecycle: Prometheus (the default, scraped
// from the dedicated metrics port), OTLP, or stdout for metrics, and OTLP,
// stdout or none for traces. When instrumentation is disabled every
// recorder becomes a no-op and the tracer never samples, so call sites can
// record unconditionally.
//
// Metrics cover the HTTP surface (http_requests_total,
// http_request_duration_seconds, active_sessions), Google API traffic
// (google_api_operations_total, google_api_operation_duration_seconds),
// OAuth flows (oauth_auth_total, oauth_token_refresh_total), MCP tools
// (mcp_tool_invocations_total, mcp_tool_duration_seconds) and batch
// document mutation (docs_batch_updates_total, docs_batch_plan_operations).
// Label values are drawn from the fixed Service*, Operation* and Status*
// constant sets so cardinality stays bounded; user emails only ever appear
// as their domain unless detailed labels are enabled.
//
// Spans follow the tool.<name> and google.<service>.<operation> naming
// convention, built through SpanAttributeBuilder. ToolInvocation and
// AuditLogger produce the structured tool audit trail with PII confined to
// the dedicated audit stream.
//
// Configuration comes from the environment: INSTRUMENTATION_ENABLED,
// METRICS_EXPORTER, TRACING_EXPORTER, OTEL_EXPORTER_OTLP_ENDPOINT,
// OTEL_TRACES_SAMPLER_ARG and OTEL_SERVICE_NAME. See DefaultConfig.
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	m := provider.Metrics()
//	m.RecordGoogleAPIOperation(ctx, instrumentation.ServiceDocs,
//		instrumentation.OperationBatchUpdate, "success", time.Since(start))
package instrumentation
