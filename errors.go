package sheetdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the base error matched by both ErrSpreadsheetNotFound
	// and ErrSheetNotFound.
	ErrNotFound = errors.New("not found")

	// ErrSpreadsheetNotFound is returned when the given spreadsheet id
	// doesn't exist.
	ErrSpreadsheetNotFound = fmt.Errorf("spreadsheet %w", ErrNotFound)

	// ErrSheetNotFound is returned when no sheet of the spreadsheet has the
	// given title or ordinal.
	ErrSheetNotFound = fmt.Errorf("sheet %w", ErrNotFound)

	// ErrExists is returned when creating or renaming a sheet would duplicate
	// a sibling title.
	ErrExists = errors.New("already exists")

	// ErrInvalidRange is the base error of RangeError.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidRole is the base error of RoleError.
	ErrInvalidRole = errors.New("invalid role")
)

// RangeError reports malformed A1-style range notation. Token is the
// offending component of the input.
type RangeError struct {
	Input string
	Token string
}

func rangeErrf(input, token string) error {
	return &RangeError{Input: input, Token: token}
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

func (e *RangeError) Error() string {
	if e.Token != "" && e.Token != e.Input {
		return fmt.Sprintf("invalid range %q: bad token %q", e.Input, e.Token)
	}
	return fmt.Sprintf("invalid range %q", e.Input)
}

// RoleError reports a sharing grant with an unrecognized role. It is
// attached to the failing recipient, never to the whole batch.
type RoleError struct {
	Email string
	Role  Role
}

func (e *RoleError) Unwrap() error {
	return ErrInvalidRole
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("invalid role %q for %s", string(e.Role), e.Email)
}
