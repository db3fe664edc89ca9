// Package services defines the business logic above the storage layer.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Authentication errors.
var (
	// ErrUsernameTaken is returned by Register when the requested username
	// already belongs to another account.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned by Login when the username is unknown
	// or the password does not match. The two cases are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated is returned when a session token is missing, unknown,
	// or expired, or when its user no longer exists.
	ErrUnauthenticated = errors.New("not authenticated")
)
