package series

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when the resolved end date is not after the start date.
	ErrInvalidRange = errors.New("end date must be after start date")
	// ErrEmpty is returned when a series has no records but one is required.
	ErrEmpty = errors.New("series has no records")
)

// ParseError describes a malformed source row.
type ParseError struct {
	Symbol string
	Line   int // 1-based data row, 0 for the header
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse %s header: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("parse %s row %d field %q (%q): %v", e.Symbol, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
