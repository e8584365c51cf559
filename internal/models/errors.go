package models

import "errors"

// The error taxonomy every layer reports against. All failures are surfaced
// synchronously to the immediate caller and are never retried.
var (
	// ErrInvalidInput signals a missing or empty required field - a caller error.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey signals a uniqueness violation on insert or rename.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrReferentialViolation signals a foreign key target that does not exist.
	ErrReferentialViolation = errors.New("referential violation")

	// ErrAlreadyOnLoan signals lending a book that is currently lent out.
	ErrAlreadyOnLoan = errors.New("book is already on loan")

	// ErrAlreadyAvailable signals returning a book that is not lent out.
	ErrAlreadyAvailable = errors.New("book is already available")

	// ErrStorageUnavailable signals that the database could not be created or
	// opened. Fatal, there is no retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
