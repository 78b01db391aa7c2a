package logging

import (
	"strconv"
	"strings"
	"sync"
)

// LogCaptureWriter keeps the last record of a text handler for the
// terminal status bar. It is safe for concurrent use.
type LogCaptureWriter struct {
	mu     sync.RWMutex
	raw    string
	status string
	warn   bool
}

// GlobalLogCapture is the singleton instance for capturing logs.
var GlobalLogCapture = &LogCaptureWriter{}

// Write implements io.Writer. Each call is one handler record.
func (w *LogCaptureWriter) Write(p []byte) (n int, err error) {
	raw := strings.TrimRight(string(p), "\r\n")
	status, warn := statusText(raw)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.raw, w.status, w.warn = raw, status, warn
	return len(p), nil
}

// GetLastLine returns the most recent record as the handler wrote it.
func (w *LogCaptureWriter) GetLastLine() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.raw
}

// Status returns the most recent record as "message key=value ..." and
// whether it was logged at WARN or above.
func (w *LogCaptureWriter) Status() (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status, w.warn
}

// statusText strips the level and msg keys from a text handler line.
func statusText(line string) (string, bool) {
	var warn bool
	if rest, ok := strings.CutPrefix(line, "level="); ok {
		level, tail, _ := strings.Cut(rest, " ")
		warn = level == "WARN" || level == "ERROR"
		line = tail
	}
	rest, ok := strings.CutPrefix(line, "msg=")
	if !ok {
		return line, warn
	}
	msg, attrs := rest, ""
	if q, err := strconv.QuotedPrefix(rest); err == nil {
		msg, _ = strconv.Unquote(q)
		attrs = strings.TrimSpace(rest[len(q):])
	} else {
		msg, attrs, _ = strings.Cut(rest, " ")
	}
	if attrs == "" {
		return msg, warn
	}
	return msg + "  " + attrs, warn
}
