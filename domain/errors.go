package domain

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes; anything unrecognized becomes a generic 500.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrRateLimited  = errors.New("too many requests")

	ErrOTPNotFound    = errors.New("no otp found")
	ErrOTPExpired     = errors.New("otp expired")
	ErrOTPMismatch    = errors.New("otp mismatch")
	ErrOTPRateLimited = errors.New("otp request limit reached")
)
