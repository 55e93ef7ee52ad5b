package common

import "errors"

var (
	// ErrInvalidToken reports a credential that cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")

	// ErrValidation reports input rejected before it reaches the server.
	ErrValidation = errors.New("validation error")

	// ErrInvalidCookie reports a cookie name or value that cannot be encoded.
	ErrInvalidCookie = errors.New("invalid cookie")
)
