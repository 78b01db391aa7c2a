package logging

import "log/slog"

// EnableTrace turns on per-sample records. Init sets it from log.app.trace.
var EnableTrace = false

// Trace logs a message at DEBUG level, but only if EnableTrace is true.
func Trace(logger *slog.Logger, msg string, args ...any) {
	if EnableTrace {
		logger.Debug(msg, args...)
	}
}
