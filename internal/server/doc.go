// Package server provides the MCP server context, HTTP transports, and the
// metrics endpoint for the docsmith application.
//
// # Key Components
//
// ServerContext manages Google API clients with lazy initialization and
// caching. It supports multiple accounts via FileTokenProvider, which reads
// per-account tokens from disk. When instrumentation is enabled the context
// injects a batch recorder into each Docs client so batchUpdate outcomes show
// up in the metrics.
//
// HTTPServer wraps an MCP server for the SSE and streamable-http transports.
// It wires the MCP endpoints into a mux together with /health, /healthz,
// /readyz and /livez probes, and shuts down gracefully.
//
// MetricsServer serves Prometheus metrics on a dedicated port, separate from
// the MCP transport, so operational scraping never interferes with client
// traffic.
package server
