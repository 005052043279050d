// Package errors provides standardized error types and helpers for the coalign codebase.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for common cases
var (
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingLanguage indicates a document set lacks a required language edition
	ErrMissingLanguage = errors.New("missing language")
	// ErrZeroLengthLanguage indicates one language filtered to zero paragraphs while peers have more
	ErrZeroLengthLanguage = errors.New("zero-length language")
	// ErrEmptyAlignment indicates filtering reduced the common length to zero
	ErrEmptyAlignment = errors.New("empty alignment")
	// ErrConsolidationMismatch indicates the consolidated corpus violated the equal-length invariant
	ErrConsolidationMismatch = errors.New("consolidation length mismatch")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
)

// AlignmentError represents a per-document alignment failure with context.
// These errors exclude one document set from the corpus; the run continues.
type AlignmentError struct {
	Document string // Document set identifier
	Language string // Language involved, if a single one
	Err      error  // Underlying sentinel (ErrMissingLanguage, ErrZeroLengthLanguage, ErrEmptyAlignment)
}

func (e *AlignmentError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("cannot align %s: %v for %s", e.Document, e.Err, e.Language)
	}
	return fmt.Sprintf("cannot align %s: %v", e.Document, e.Err)
}

func (e *AlignmentError) Unwrap() error {
	return e.Err
}

// ConsolidationError represents a fatal corpus-level invariant violation.
// The corpus must never be persisted when one of these is returned.
type ConsolidationError struct {
	Counts map[string]int // Per-language paragraph counts at failure time
	Err    error          // Underlying error, if any
}

func (e *ConsolidationError) Error() string {
	langs := make([]string, 0, len(e.Counts))
	for lang := range e.Counts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	parts := make([]string, len(langs))
	for i, lang := range langs {
		parts[i] = fmt.Sprintf("%s=%d", lang, e.Counts[lang])
	}
	return fmt.Sprintf("consolidation length mismatch: %s", strings.Join(parts, " "))
}

func (e *ConsolidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrConsolidationMismatch
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "DOCX", "XML", "config")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewAlignment creates an AlignmentError
func NewAlignment(document, language string, err error) *AlignmentError {
	return &AlignmentError{
		Document: document,
		Language: language,
		Err:      err,
	}
}

// NewConsolidation creates a ConsolidationError
func NewConsolidation(counts map[string]int) *ConsolidationError {
	return &ConsolidationError{
		Counts: counts,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
