package errors

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Category represents the type of error.
type Category string

const (
	CategoryConstruction Category = "construction"
	CategoryRuntime      Category = "runtime"
	CategoryConfig       Category = "config"
	CategoryInput        Category = "input"
	CategoryCLI          Category = "cli"
)

// contextRadius is the number of lines shown on each side of a location.
const contextRadius = 2

// Location represents a position in a config or state file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// StoreError is a structured error with a code, an optional file location,
// and a suggestion.
type StoreError struct {
	// Code is a unique error identifier (e.g., "L001").
	Code string

	// Category is the error type (construction, runtime, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position where the error occurred.
	Location *Location

	// Context contains surrounding file lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := e.Message
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StoreError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location to the error.
func (e *StoreError) WithLocation(file string, line, column int) *StoreError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 2*contextRadius+1)
	return e
}

// WithLocationFromError extracts a location from a TOML or JSON decode error
// for file. Other errors leave e unchanged.
func (e *StoreError) WithLocationFromError(file string, err error) *StoreError {
	var perr toml.ParseError
	if stderrors.As(err, &perr) {
		return e.WithLocation(file, perr.Position.Line, perr.Position.Col)
	}
	var serr *json.SyntaxError
	if stderrors.As(err, &serr) {
		data, rerr := os.ReadFile(file)
		if rerr != nil {
			return e
		}
		line, col := offsetToPosition(data, serr.Offset)
		return e.WithLocation(file, line, col)
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StoreError) WithSuggestion(s string) *StoreError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *StoreError) WithDetail(d string) *StoreError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *StoreError) Wrap(err error) *StoreError {
	e.Wrapped = err
	return e
}

// offsetToPosition converts a byte offset into a 1-based line and column.
func offsetToPosition(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a StoreError from a registered error code.
func New(code string) *StoreError {
	template, ok := registry[code]
	if !ok {
		return &StoreError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &StoreError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new StoreError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *StoreError {
	return &StoreError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a StoreError.
func FromError(err error, code string) *StoreError {
	if err == nil {
		return nil
	}
	var se *StoreError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}
