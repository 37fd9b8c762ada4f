package note

import "errors"

var (
	ErrEmptyID      = errors.New("note id is empty")
	ErrEmptyTitle   = errors.New("note title is empty")
	ErrEmptyContent = errors.New("note content is empty")
)
