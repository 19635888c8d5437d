package logging

import "log/slog"

// Logger is the leveled logging interface components accept. The batch
// dispatcher and other long-lived workers take this interface so tests can
// substitute a capturing implementation.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter satisfies Logger on top of an *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, falling back to slog.Default when nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// DefaultLogger returns an adapter over the process-wide default logger.
func DefaultLogger() *SlogAdapter {
	return NewSlogAdapter(slog.Default())
}

func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }
func (a *SlogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *SlogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }

// Logger exposes the wrapped slog.Logger for call sites that need slog.Attr
// support directly.
func (a *SlogAdapter) Logger() *slog.Logger {
	return a.logger
}
