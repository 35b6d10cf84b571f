package services

import "errors"

// Error taxonomy recovered at the handler boundary and translated into a
// status code plus a minimal JSON body. Nothing below this layer ever
// reaches the transport unhandled.
var (
	// ErrMissingFields reports absent required input.
	ErrMissingFields = errors.New("missing information")
	// ErrEmailTaken reports a registration attempt for an existing email.
	ErrEmailTaken = errors.New("user already has an account")
	// ErrInvalidCredentials merges "wrong password" and "unknown email"
	// into one outward failure so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("email or password don't match")
	// ErrUserNotFound reports a dangling reference or absent user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken covers malformed, badly signed and expired tokens
	// alike; the three cases are deliberately indistinguishable.
	ErrInvalidToken = errors.New("invalid or expired token")
)
