package note

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// List fetches the user's notes and applies the search and tag filters.
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id string) (model.Note, error)
	Create(ctx context.Context, input CreateInput) (model.Note, error)
	Update(ctx context.Context, input UpdateInput) (model.Note, error)
	Delete(ctx context.Context, id string) error
}
