// Package service holds the business rules between the HTTP handlers and the
// store: membership checks, expense splitting, invite flow, and the calls
// into the balance calculator.
package service

import "errors"

// Sentinel errors the API layer maps to HTTP status codes.
var (
	// ErrForbidden means the acting user is not allowed to touch the resource
	// (typically: not a member of the trip).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidArgument means the request payload failed validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict means the request is valid but clashes with current state
	// (duplicate invite, already a member, expired invite).
	ErrConflict = errors.New("conflict")
)
