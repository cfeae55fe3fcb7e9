package auth

import "errors"

// Token validation errors. The middleware maps each to a 401 message.
var (
	// ErrInvalidToken covers malformed tokens, bad signatures, unexpected
	// algorithms and subjects that are not user UUIDs.
	ErrInvalidToken = errors.New("invalid bearer token")

	// ErrExpiredToken is returned once exp has passed, beyond clock skew.
	ErrExpiredToken = errors.New("bearer token expired")

	// ErrTokenNotYetValid is returned while nbf is still in the future.
	ErrTokenNotYetValid = errors.New("bearer token not yet valid")
)
