// Package validation provides input validation and sanitization functions
// to prevent common security vulnerabilities like path traversal and
// injection through crafted document names.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"coalign/core/para"
)

// Limits for user-supplied names and paths.
const (
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTraversal   = errors.New("path traversal detected")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrPathTooLong     = errors.New("path too long")
	ErrFilenameTooLong = errors.New("filename too long")
	ErrEmptyPath       = errors.New("path cannot be empty")
	ErrUnknownLanguage = errors.New("unknown language code")
)

// SanitizePath validates and sanitizes a user-supplied path to prevent path
// traversal. It ensures the path does not escape the provided base directory.
// Returns the cleaned path relative to the base directory, or an error.
func SanitizePath(baseDir, userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}

	if len(userPath) > MaxPathLength {
		return "", ErrPathTooLong
	}

	cleanPath := filepath.Clean(userPath)

	if strings.Contains(cleanPath, "..") {
		return "", ErrPathTraversal
	}

	if filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}

	// Build full path and verify it's within baseDir
	fullPath := filepath.Join(baseDir, cleanPath)
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return "", ErrPathTraversal
	}

	return cleanPath, nil
}

// ValidateFilename checks if a filename is safe to use as an output
// directory component. Document set IDs come from source file names, so
// they pass through here before any path is built from them.
func ValidateFilename(filename string) error {
	if filename == "" {
		return ErrInvalidFilename
	}

	if len(filename) > MaxFilenameLength {
		return ErrFilenameTooLong
	}

	if filename == "." || filename == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}

	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}

	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidFilename)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}

	return nil
}

// SanitizeFilename sanitizes a document name by removing or replacing
// invalid characters. Returns a safe filename or an error if nothing safe
// remains.
func SanitizeFilename(filename string) (string, error) {
	if filename == "" {
		return "", ErrInvalidFilename
	}

	filename = strings.TrimSpace(filename)
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "\x00", "")

	var cleaned strings.Builder
	for _, r := range filename {
		if !unicode.IsControl(r) {
			cleaned.WriteRune(r)
		}
	}
	filename = cleaned.String()

	if err := ValidateFilename(filename); err != nil {
		return "", err
	}

	return filename, nil
}

// ValidateLanguage checks that a code belongs to the fixed language set.
func ValidateLanguage(code string) error {
	if !para.Language(code).Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return nil
}
