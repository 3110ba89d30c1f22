// Package auth provides JWT-based authentication for client-facing routes.
package auth

import "errors"

// Authentication errors returned by token validation.
var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation for any reason other than expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)
