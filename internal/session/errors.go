package session

import "errors"

var (
	ErrEmptyToken = errors.New("session token is empty")
	ErrEmptyUser  = errors.New("session user has no id")
	ErrPersist    = errors.New("failed to persist session")
)
