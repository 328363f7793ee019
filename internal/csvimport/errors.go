package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Common import errors
var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is neither UTF-8 nor Shift_JIS
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrNoDataRows is returned when the CSV file has no data rows
	ErrNoDataRows = errors.New("CSV file contains no data rows")
)

// MissingColumnsError lists required columns absent from the header
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required column(s): " + strings.Join(e.Columns, ", ")
}

// RowError represents an invalid row
type RowError struct {
	Row  int    `json:"row"`
	Side string `json:"side,omitempty"` // "to" or "from"
	Err  error  `json:"-"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Side != "" {
		return fmt.Sprintf("row %d [%s]: %v", e.Row, e.Side, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ImportError collects every invalid row of a file
type ImportError struct {
	Rows []RowError
}

func (e *ImportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CSV file has %d invalid row(s):", len(e.Rows))
	for _, r := range e.Rows {
		b.WriteString("\n  ")
		b.WriteString(r.Error())
	}
	return b.String()
}
