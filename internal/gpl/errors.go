package gpl

import (
	"fmt"
	"strconv"
)

// FormatError reports malformed palette text or colour literals.
// Source and Line are zero-valued when the error is not tied to a file.
type FormatError struct {
	// Source is the file name or identifier being parsed, if any.
	Source string
	// Line is the 1-based line number, or 0 when unknown.
	Line int
	// Msg describes the problem.
	Msg string
	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var loc string
	switch {
	case e.Source != "" && e.Line > 0:
		loc = e.Source + ":" + strconv.Itoa(e.Line) + ": "
	case e.Line > 0:
		loc = "line " + strconv.Itoa(e.Line) + ": "
	case e.Source != "":
		loc = e.Source + ": "
	}
	return loc + e.Msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IndexError reports a positional component access outside 0..2.
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("color component index out of range: %d", e.Index)
}

// KeyError reports a named component access with an unknown key.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("unknown color component key: %q", e.Key)
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}
