package logfile

import (
	"path/filepath"
	"strconv"
	"strings"
)

// IncrementName bumps the number right before the extension, keeping its
// zero padding: "flight-log-0004.dat" becomes "flight-log-0005.dat". Names
// without such a number are returned unchanged.
func IncrementName(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	start := len(stem)
	for start > 0 && stem[start-1] >= '0' && stem[start-1] <= '9' {
		start--
	}
	digits := stem[start:]
	if digits == "" {
		return name
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return name
	}
	next := strconv.FormatUint(n+1, 10)
	if pad := len(digits) - len(next); pad > 0 {
		next = strings.Repeat("0", pad) + next
	}
	return stem[:start] + next + ext
}

// StripQuotes removes one matching pair of surrounding double or single
// quotes, as pasted paths often carry them.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
