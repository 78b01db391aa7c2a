// Package logfile writes the per-sample flight log: one delimited text line
// per accepted sample, appended to a file named by directory and file name.
package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"flightrec/pkg/samples"
)

// DefaultName is the log file name used when none is configured.
const DefaultName = "flight-log-0000.dat"

// DefaultDelimiter separates fields unless configured otherwise.
const DefaultDelimiter = ' '

// Writer appends sample lines to Dir/Name. The file is opened and closed on
// every Append so that renames and directory changes take effect at once.
type Writer struct {
	Dir       string
	Name      string
	Delimiter rune
}

// NewWriter returns a Writer with the default name and delimiter.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Name: DefaultName, Delimiter: DefaultDelimiter}
}

// Path returns the full path of the current log file.
func (w *Writer) Path() string {
	return filepath.Join(w.Dir, w.Name)
}

// Append writes one line for the sample stored in slot index.
func (w *Writer) Append(index int, f *samples.Frame) error {
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(w.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := file.WriteString(FormatLine(index, f, w.delimiter())); err != nil {
		file.Close()
		return fmt.Errorf("failed to write log line: %w", err)
	}
	return file.Close()
}

func (w *Writer) delimiter() rune {
	if w.Delimiter == 0 {
		return DefaultDelimiter
	}
	return w.Delimiter
}

// FormatLine renders the slot index followed by every logged channel in
// field order, newline terminated.
func FormatLine(index int, f *samples.Frame, delim rune) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(index))
	for _, c := range samples.LogChannels() {
		b.WriteRune(delim)
		b.WriteString(FormatValue(f[c]))
	}
	b.WriteByte('\n')
	return b.String()
}

// FormatValue prints v with at most six significant digits, switching to
// exponent form for very large or small magnitudes.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 6, 32)
}
