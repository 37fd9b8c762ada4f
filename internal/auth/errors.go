package auth

import "errors"

var (
	ErrEmptyCredentials   = errors.New("identifier and password are required")
	ErrNoRefreshToken     = errors.New("no refresh token in session")
	ErrInvalidCredentials = errors.New("invalid email or password") // token endpoint answered 401
)
