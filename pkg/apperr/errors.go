// Package apperr defines the sentinel errors shared by all use cases.
// Handlers translate them to HTTP statuses in a single place
// (presenter.FromError); services wrap them with fmt.Errorf("%w: ...").
package apperr

import "errors"

var (
	// ErrValidation marks bad input shape or range.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a missing, invalid or expired credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated caller without sufficient rights.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks an absent referenced entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation (duplicate email).
	ErrConflict = errors.New("conflict")
	// ErrInternal marks an unexpected failure hidden from the caller.
	ErrInternal = errors.New("internal error")
)
