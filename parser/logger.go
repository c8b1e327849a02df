package parser

import "log/slog"

// Logger is a minimal structured logging interface for observability during
// parsing and downstream pipeline stages. It is satisfied by adapters over
// log/slog, zap, zerolog, or any other structured logger.
//
// Attributes are alternating key-value pairs, as in log/slog:
//
//	logger.Debug("resolved reference", "ref", "#/components/schemas/Pet")
type Logger interface {
	// Debug logs a message at debug level with optional key-value attributes
	Debug(msg string, attrs ...any)
	// Info logs a message at info level with optional key-value attributes
	Info(msg string, attrs ...any)
	// Warn logs a message at warn level with optional key-value attributes
	Warn(msg string, attrs ...any)
	// Error logs a message at error level with optional key-value attributes
	Error(msg string, attrs ...any)
	// With returns a new Logger with the given attributes attached to all
	// subsequent log records
	With(attrs ...any) Logger
}

// NopLogger is a Logger that discards all log records. It is the default
// when no logger is configured.
type NopLogger struct{}

// Debug does nothing
func (NopLogger) Debug(string, ...any) {}

// Info does nothing
func (NopLogger) Info(string, ...any) {}

// Warn does nothing
func (NopLogger) Warn(string, ...any) {}

// Error does nothing
func (NopLogger) Error(string, ...any) {}

// With returns the same no-op logger
func (NopLogger) With(...any) Logger { return NopLogger{} }

// SlogAdapter adapts a *slog.Logger to the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a Logger backed by the given *slog.Logger.
// If logger is nil, slog.Default() is used.
//
// Example:
//
//	p := parser.New()
//	p.Logger = parser.NewSlogAdapter(slog.Default())
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug logs at slog debug level
func (a *SlogAdapter) Debug(msg string, attrs ...any) {
	a.logger.Debug(msg, attrs...)
}

// Info logs at slog info level
func (a *SlogAdapter) Info(msg string, attrs ...any) {
	a.logger.Info(msg, attrs...)
}

// Warn logs at slog warn level
func (a *SlogAdapter) Warn(msg string, attrs ...any) {
	a.logger.Warn(msg, attrs...)
}

// Error logs at slog error level
func (a *SlogAdapter) Error(msg string, attrs ...any) {
	a.logger.Error(msg, attrs...)
}

// With returns a new adapter with the attributes attached
func (a *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: a.logger.With(attrs...)}
}
