package service

import "errors"

// Error taxonomy shared by every backend. Backends wrap transport detail
// around these sentinels; callers check with errors.Is.
var (
	// ErrValidation indicates rejected input: an empty title, an empty or
	// duplicate list name, a malformed request body.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a stale id referencing a deleted task or list.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates a cross-user or cross-list access attempt.
	// No detail about the other side is carried.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a malformed reorder batch (duplicate position).
	// Seeing it means a client bug, not a normal race.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates a missing, expired, or revoked token.
	ErrUnauthorized = errors.New("unauthorized")
)
