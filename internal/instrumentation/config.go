package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter names accepted by Config.MetricsExporter and Config.TracingExporter.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Label values shared by the metric recorders.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusUnknown = "unknown"

	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
	OAuthResultExpired = "expired"
)

// Config controls metrics, tracing and audit logging for the process.
// DefaultConfig reads everything from the environment so that deployments
// configure instrumentation without flags.
type Config struct {
	// ServiceName identifies the service in exported telemetry (default: docsmith).
	ServiceName string

	// ServiceVersion is stamped into the OTel resource. Filled in from build info.
	ServiceVersion string

	// ServiceInstanceID distinguishes replicas. Empty means "use the hostname",
	// which in Kubernetes is the pod name.
	ServiceInstanceID string

	// K8sNamespace and K8sPodName populate the k8s.* resource attributes
	// when running in a cluster.
	K8sNamespace string
	K8sPodName   string

	// Enabled turns the whole subsystem on or off. When false, NewProvider
	// hands out no-op recorders. INSTRUMENTATION_ENABLED=false to disable.
	Enabled bool

	// MetricsExporter is one of prometheus, otlp or stdout.
	MetricsExporter string

	// TracingExporter is one of otlp, stdout or none. Tracing is off by
	// default; spans carry document IDs and we only ship them when a
	// collector is configured.
	TracingExporter string

	// OTLPEndpoint is the collector address without a protocol prefix,
	// for example "otel-collector:4318". Required for the otlp exporters.
	OTLPEndpoint string

	// OTLPInsecure switches OTLP export to plain HTTP. Traces carry
	// document IDs and account identifiers, so this is for local
	// development only.
	OTLPInsecure bool

	// TraceSamplingRate is the head sampling ratio, 0.0 to 1.0.
	TraceSamplingRate float64

	// PrometheusEndpoint is the scrape path on the metrics server.
	PrometheusEndpoint string

	// DetailedLabels opts into high-cardinality metric labels such as
	// account names. Keep off in production.
	DetailedLabels bool

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig controls the audit trail written for every tool call.
type AuditLoggingConfig struct {
	// Enabled turns audit logging on (default: true).
	Enabled bool

	// IncludePII adds full account email addresses to audit entries.
	// Off by default; with it off only the domain part is logged.
	// Route logs to access-controlled storage before enabling.
	IncludePII bool

	// LogLevel is the slog level audit entries are emitted at
	// (debug, info, warn, error). Entries are always emitted; the
	// level only affects how downstream handlers filter them.
	LogLevel string
}

// DefaultConfig builds a Config from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envString("OTEL_SERVICE_NAME", "docsmith"),
		ServiceVersion:     "unknown",
		ServiceInstanceID:  envString("OTEL_SERVICE_INSTANCE_ID", ""),
		K8sNamespace:       envString("K8S_NAMESPACE", envString("POD_NAMESPACE", "")),
		K8sPodName:         envString("K8S_POD_NAME", envString("HOSTNAME", "")),
		Enabled:            envBool("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:    envString("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:    envString("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:       envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:       envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate:  envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		PrometheusEndpoint: envString("PROMETHEUS_ENDPOINT", "/metrics"),
		DetailedLabels:     envBool("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:    envBool("AUDIT_LOGGING_ENABLED", true),
			IncludePII: envBool("AUDIT_LOGGING_INCLUDE_PII", false),
			LogLevel:   envString("AUDIT_LOGGING_LEVEL", "info"),
		},
	}
}

// Validate rejects configurations the provider cannot honor.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterOTLP, ExporterStdout:
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.OTLPEndpoint == "" {
		if c.TracingExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
		}
		if c.MetricsExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
		}
	}

	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
