package logfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightrec/pkg/samples"
)

func knownFrame() *samples.Frame {
	var f samples.Frame
	for i, c := range samples.LogChannels() {
		f[c] = float32(i + 1)
	}
	f[samples.SimTime] = 12.5
	f[samples.Altitude] = 0.25
	f[samples.AtmPressure] = 101325
	f[samples.AtmDensity] = 1.225
	f[samples.Mass] = 99999 // not logged
	return &f
}

func TestFormatLineCommaSeparated(t *testing.T) {
	got := FormatLine(7, knownFrame(), ',')
	want := "7,12.5,0.25,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,101325,21,1.225,23,24,25,26\n"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "99999")
}

func TestFormatLineFieldCount(t *testing.T) {
	line := strings.TrimSuffix(FormatLine(0, knownFrame(), ' '), "\n")
	assert.Len(t, strings.Split(line, " "), 27)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-42, "-42"},
		{123456, "123456"},
		{1234567, "1.23457e+06"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{3.14159265, "3.14159"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestWriterAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w := NewWriter(dir)
	w.Delimiter = ';'

	require.NoError(t, w.Append(0, knownFrame()))
	require.NoError(t, w.Append(1, knownFrame()))

	data, err := os.ReadFile(filepath.Join(dir, DefaultName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0;12.5;"))
	assert.True(t, strings.HasPrefix(lines[1], "1;12.5;"))
}

func TestWriterDefaultsDelimiter(t *testing.T) {
	w := &Writer{Dir: t.TempDir(), Name: "x.dat"}
	require.NoError(t, w.Append(3, knownFrame()))
	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "3 12.5 "))
}

func TestWriterOpenFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	w := NewWriter(filepath.Join(blocker, "sub"))
	assert.Error(t, w.Append(0, knownFrame()))
}

func TestIncrementName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"flight-log-0004.dat", "flight-log-0005.dat"},
		{"flight-log-0009.dat", "flight-log-0010.dat"},
		{"flight-log-9999.dat", "flight-log-10000.dat"},
		{"run7", "run8"},
		{"log.txt", "log.txt"},
		{"", ""},
		{"2024-flight.csv", "2024-flight.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IncrementName(tt.in))
		})
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"C:\logs"`, `C:\logs`},
		{`'data'`, `data`},
		{`"mismatched'`, `"mismatched'`},
		{`"`, `"`},
		{`plain`, `plain`},
		{`""`, ``},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripQuotes(tt.in))
		})
	}
}
