package models

import "errors"

// Sentinel errors shared between services and handlers. Handlers match
// these with errors.Is to pick an HTTP status.
var (
	// ErrNotFound is returned for any owner-scoped lookup miss. A record
	// owned by someone else reports the same error as a missing record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUser is returned when a username or email is taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so that login failures cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakPassword is returned when a password fails the entropy check.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrNotEnoughSamples is returned when voice training is requested
	// with fewer than the required number of stored samples.
	ErrNotEnoughSamples = errors.New("not enough voice samples")
)
