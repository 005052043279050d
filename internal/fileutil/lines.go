// Package fileutil provides newline-delimited UTF-8 text file helpers.
//
// The corpus format is one paragraph per line with a single trailing newline
// and no blank separator lines. WriteLines and ReadLines round-trip exactly:
// reading a file written from a sequence of strings yields the original
// sequence, with no trimming or reordering.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	"coalign/core/errors"
)

// WriteLines writes one line per entry to path, creating parent directories
// as needed. The file ends with exactly one newline when lines is non-empty.
func WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIO("create directory", filepath.Dir(path), err)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// ReadLines reads a newline-delimited file back into a sequence of strings.
// The trailing newline written by WriteLines does not produce an empty final
// element.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n"), nil
}

// CountLines returns the number of lines in a newline-delimited file.
func CountLines(path string) (int, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}
