// Package board holds the discussion domain logic: claim and reply
// validation, the reply lifecycle state machine, and the authorization
// guard clauses for private threads.
package board

import "errors"

// The error taxonomy every operation reports through. Handlers translate
// these to HTTP statuses with errors.Is; anything else is surfaced as an
// opaque internal failure.
var (
	// ErrValidation covers empty or oversized text and unknown enum values.
	ErrValidation = errors.New("invalid input")
	// ErrForbidden means the actor lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the referenced claim, reply, or thread is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a terminal reply status would be overwritten with a
	// different one. Repeating the same terminal transition is a no-op
	// success, not a conflict.
	ErrConflict = errors.New("conflict")
)
