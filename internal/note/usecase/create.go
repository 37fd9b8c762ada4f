package usecase

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/internal/note"
	repo "github.com/aakashsubedi/NoteSpace/internal/note/repository"
)

// Create rejects blank title or content before anything is sent.
func (uc *implUseCase) Create(ctx context.Context, input note.CreateInput) (model.Note, error) {
	if err := validateText(input.Title, input.Content); err != nil {
		return model.Note{}, err
	}

	n, err := uc.repo.CreateNote(ctx, repo.CreateNoteOptions{
		Title:   input.Title,
		Content: input.Content,
		Tags:    normalizeTags(input.Tags),
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateNote: %v", err)
		return model.Note{}, err
	}
	return n, nil
}
