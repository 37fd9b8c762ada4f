package usecase

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/internal/note"
)

// List fetches every note, collects their tags and keeps the ones matching
// input. Filtering is local; the backend always returns the full list.
func (uc *implUseCase) List(ctx context.Context, input note.ListInput) (note.ListOutput, error) {
	notes, err := uc.repo.ListNotes(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListNotes: %v", err)
		return note.ListOutput{}, err
	}

	filtered := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if matches(n, input) {
			filtered = append(filtered, n)
		}
	}

	return note.ListOutput{
		Notes: filtered,
		Tags:  collectTags(notes),
		Total: len(notes),
	}, nil
}
