package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsmith/internal/instrumentation"
)

// HTTPServer wraps an MCP server with an HTTP transport and health
// check endpoints for Kubernetes probes.
type HTTPServer struct {
	mcpServer        *mcpserver.MCPServer
	httpServer       *http.Server
	serverType       string // "sse" or "streamable-http"
	disableStreaming bool
	healthChecker    *HealthChecker
	metrics          *instrumentation.Metrics
}

// NewHTTPServer creates a new HTTP server for MCP
func NewHTTPServer(mcpServer *mcpserver.MCPServer, serverType string, disableStreaming bool) (*HTTPServer, error) {
	switch serverType {
	case "sse", "streamable-http":
	default:
		return nil, fmt.Errorf("unsupported server type: %s", serverType)
	}

	return &HTTPServer{
		mcpServer:        mcpServer,
		serverType:       serverType,
		disableStreaming: disableStreaming,
	}, nil
}

// SetHealthChecker attaches a health checker whose endpoints are served
// alongside the MCP endpoint
func (s *HTTPServer) SetHealthChecker(h *HealthChecker) {
	s.healthChecker = h
}

// SetMetrics enables per-request HTTP metrics on the MCP endpoints
func (s *HTTPServer) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// withMetrics records method, path, status and duration for each request.
// Status capture is best effort; streaming handlers may write the header
// before the middleware sees it.
func (s *HTTPServer) withMetrics(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush passes through so SSE streaming keeps working behind the
// metrics wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Start starts the HTTP server on addr and blocks until it stops
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	switch s.serverType {
	case "sse":
		sseServer := mcpserver.NewSSEServer(s.mcpServer,
			mcpserver.WithSSEEndpoint("/sse"),
			mcpserver.WithMessageEndpoint("/message"),
		)
		mux.Handle("/sse", s.withMetrics(sseServer))
		mux.Handle("/message", s.withMetrics(sseServer))

	case "streamable-http":
		var httpServer http.Handler
		if s.disableStreaming {
			httpServer = mcpserver.NewStreamableHTTPServer(s.mcpServer,
				mcpserver.WithEndpointPath("/mcp"),
				mcpserver.WithDisableStreaming(true),
			)
		} else {
			httpServer = mcpserver.NewStreamableHTTPServer(s.mcpServer,
				mcpserver.WithEndpointPath("/mcp"),
			)
		}
		mux.Handle("/mcp", s.withMetrics(httpServer))

	default:
		return fmt.Errorf("unsupported server type: %s", s.serverType)
	}

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	// No WriteTimeout: both transports hold streaming responses open
	// far longer than any sane fixed limit.
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.healthChecker != nil {
		s.healthChecker.SetReady(false)
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
