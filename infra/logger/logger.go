package logger

import corelogger "github.com/kilianp07/ridership/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards everything. Tests and library callers that do not care
// about logs use it.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns a Logger tagged with the given component name. The output format
// follows APP_ENV and the minimum level follows LOG_LEVEL.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// WithFields attaches fields such as a run id to every entry of l. Loggers
// without field support are returned unchanged.
func WithFields(l Logger, fields map[string]any) Logger {
	if f, ok := l.(interface {
		With(map[string]any) Logger
	}); ok {
		return f.With(fields)
	}
	return l
}
