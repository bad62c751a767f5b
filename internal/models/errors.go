package models

import "errors"

// Expected business outcomes. Handlers match these with errors.Is and map
// them to HTTP statuses; anything else is an internal fault.
var (
	// ErrGemNotFound means no gem exists with the requested id.
	ErrGemNotFound = errors.New("gem not found")
	// ErrUserNotFound means no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthorized means the actor is authenticated but not permitted:
	// not a seller, or not the owner of the target gem.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnauthenticated means credentials or token were missing or invalid.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUsernameTaken means registration collided with an existing username.
	ErrUsernameTaken = errors.New("username is taken")
	// ErrPasswordMismatch means password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords don't match")
)
