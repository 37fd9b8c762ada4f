package repository

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
)

// Repository is typed CRUD over the backend's note endpoint. It performs
// no validation beyond what is needed to build a request.
type Repository interface {
	ListNotes(ctx context.Context) ([]model.Note, error)
	GetNote(ctx context.Context, id string) (model.Note, error)
	CreateNote(ctx context.Context, opt CreateNoteOptions) (model.Note, error)
	UpdateNote(ctx context.Context, opt UpdateNoteOptions) (model.Note, error)
	DeleteNote(ctx context.Context, id string) error
}
