package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInputNotFound  = errors.New("input file not found")
	ErrMalformedInput = errors.New("malformed input")

	// Malformed input variants
	ErrMissingColumn   = fmt.Errorf("%w: required column missing", ErrMalformedInput)
	ErrNonNumericCell  = fmt.Errorf("%w: non-numeric metric value", ErrMalformedInput)
	ErrNoDataRows      = fmt.Errorf("%w: no data rows", ErrMalformedInput)
	ErrDuplicateColumn = fmt.Errorf("%w: duplicate column", ErrMalformedInput)

	// Output errors
	ErrOutputWrite = errors.New("output write failed")

	// Exclusion errors (strict mode only)
	ErrUnknownExclusion = errors.New("excluded shot number not present in input")
)

// Error constructors with context
func NewInputNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrInputNotFound, path)
}

func NewMalformedCSVError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedInput, path, err)
}

func NewNoDataRowsError(path string) error {
	return fmt.Errorf("%w: %s", ErrNoDataRows, path)
}

func NewDuplicateColumnError(path, column string) error {
	return fmt.Errorf("%w: %q in %s", ErrDuplicateColumn, column, path)
}

func NewMissingColumnError(path, column string) error {
	return fmt.Errorf("%w: %q in %s", ErrMissingColumn, column, path)
}

func NewNonNumericCellError(path, column string, row int, value string) error {
	return fmt.Errorf("%w: %q in column %q, row %d of %s", ErrNonNumericCell, value, column, row, path)
}

func NewOutputWriteError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
}

func NewUnknownExclusionError(shot int) error {
	return fmt.Errorf("%w: %d", ErrUnknownExclusion, shot)
}

// Error checking helpers
func IsInputNotFound(err error) bool {
	return errors.Is(err, ErrInputNotFound)
}

func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

func IsOutputWrite(err error) bool {
	return errors.Is(err, ErrOutputWrite)
}
