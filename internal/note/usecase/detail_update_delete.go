package usecase

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/internal/note"
	repo "github.com/aakashsubedi/NoteSpace/internal/note/repository"
)

// Detail retrieves a single note by id.
func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, note.ErrEmptyID
	}
	n, err := uc.repo.GetNote(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail GetNote: %v", err)
		return model.Note{}, err
	}
	return n, nil
}

// Update replaces title and content of an existing note.
func (uc *implUseCase) Update(ctx context.Context, input note.UpdateInput) (model.Note, error) {
	if input.ID == "" {
		return model.Note{}, note.ErrEmptyID
	}
	if err := validateText(input.Title, input.Content); err != nil {
		return model.Note{}, err
	}

	n, err := uc.repo.UpdateNote(ctx, repo.UpdateNoteOptions{
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateNote: %v", err)
		return model.Note{}, err
	}
	return n, nil
}

// Delete removes a note. Deleting a missing note surfaces NotFound.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return note.ErrEmptyID
	}
	if err := uc.repo.DeleteNote(ctx, id); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteNote: %v", err)
		return err
	}
	return nil
}
