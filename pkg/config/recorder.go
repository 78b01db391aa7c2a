package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Recorder config file keys.
const (
	KeyAutoInc   = "AUTOINC"
	KeySampleDT  = "SAMPLEDT"
	KeyDelim     = "DELIM"
	KeyTargetRef = "TGTBASE"
	KeyLogDir    = "LOGDIR"
	KeyLogFile   = "LOGFILE"
	KeyPaused    = "PAUSED"
)

// RecorderSettings is the recorder state kept between sessions in the
// key-value config file.
type RecorderSettings struct {
	AutoIncrement bool
	SampleDT      float64 // seconds per sample
	Delimiter     rune
	Target        string
	LogDir        string
	LogFile       string
	Paused        bool
}

// DefaultRecorderSettings returns one sample per second, space delimited,
// logging to flight-log-0000.dat in the working directory.
func DefaultRecorderSettings() RecorderSettings {
	return RecorderSettings{
		SampleDT:  1,
		Delimiter: ' ',
		LogDir:    ".",
		LogFile:   "flight-log-0000.dat",
	}
}

// LoadRecorder reads the key-value file at path over def. A missing file
// yields def without error.
func LoadRecorder(path string, def RecorderSettings) (RecorderSettings, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		return def, fmt.Errorf("failed to open recorder config: %w", err)
	}
	defer f.Close()

	s, err := ParseRecorder(f, def)
	if err != nil {
		return s, fmt.Errorf("failed to read recorder config: %w", err)
	}
	return s, nil
}

// ParseRecorder reads "KEY value" lines. Blank lines and lines starting with
// '#' are skipped, unknown keys are ignored and a value that does not parse
// leaves that setting at its previous value.
func ParseRecorder(r io.Reader, def RecorderSettings) (RecorderSettings, error) {
	s := def
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		key, value := splitLine(line)
		if key == "" {
			continue
		}

		switch key {
		case KeyPaused:
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				s.Paused = n != 0
			}
		case KeyAutoInc:
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				s.AutoIncrement = n != 0
			}
		case KeySampleDT:
			if dt, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && dt > 0 {
				s.SampleDT = dt
			}
		case KeyDelim:
			if r, _ := utf8.DecodeRuneInString(value); value != "" && r != utf8.RuneError {
				s.Delimiter = r
			}
		case KeyTargetRef:
			s.Target = value
		case KeyLogDir:
			s.LogDir = value
		case KeyLogFile:
			s.LogFile = value
		}
	}
	return s, sc.Err()
}

// splitLine splits off the first word as the key. Exactly one separating
// blank is dropped so values may start with whitespace, such as a tab
// delimiter.
func splitLine(line string) (key, value string) {
	line = strings.TrimLeft(line, " \t")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i+1:]
}

// SaveRecorder writes every key. DELIM is omitted when it is a space, since a
// trailing blank would not survive editors.
func SaveRecorder(path string, s RecorderSettings) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", KeyAutoInc, boolInt(s.AutoIncrement))
	fmt.Fprintf(&b, "%s %s\n", KeySampleDT, strconv.FormatFloat(s.SampleDT, 'g', -1, 64))
	if s.Delimiter != ' ' && s.Delimiter != 0 {
		fmt.Fprintf(&b, "%s %c\n", KeyDelim, s.Delimiter)
	}
	fmt.Fprintf(&b, "%s %s\n", KeyTargetRef, s.Target)
	fmt.Fprintf(&b, "%s %s\n", KeyLogDir, s.LogDir)
	fmt.Fprintf(&b, "%s %s\n", KeyLogFile, s.LogFile)
	fmt.Fprintf(&b, "%s %d\n", KeyPaused, boolInt(s.Paused))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create recorder config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write recorder config: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
