package note

import "github.com/aakashsubedi/NoteSpace/internal/model"

// --- UseCase Inputs ---

// ListInput filters the listed notes. Empty fields match everything.
type ListInput struct {
	Search string // case-insensitive substring of title or content
	Tag    string // exact tag
}

type CreateInput struct {
	Title   string
	Content string
	Tags    []string
}

type UpdateInput struct {
	ID      string
	Title   string
	Content string
}

// --- UseCase Outputs ---

type ListOutput struct {
	Notes []model.Note // filtered, in backend order
	Tags  []string     // unique tags across all fetched notes, first-seen order
	Total int          // number of notes before filtering
}
