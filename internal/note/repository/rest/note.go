package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/internal/note/repository"
)

const notesPath = "/notes/"

func notePath(id string) string {
	return notesPath + url.PathEscape(id) + "/"
}

type createNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

type updateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes returns the notes in the order the backend sent them.
func (r *implRepository) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := r.client.Do(ctx, http.MethodGet, notesPath, nil, &notes); err != nil {
		r.l.Errorf(ctx, "note.repository.ListNotes: %v", err)
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

func (r *implRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	var n model.Note
	if err := r.client.Do(ctx, http.MethodGet, notePath(id), nil, &n); err != nil {
		r.l.Errorf(ctx, "note.repository.GetNote %s: %v", id, err)
		return model.Note{}, err
	}
	return n, nil
}

func (r *implRepository) CreateNote(ctx context.Context, opt repository.CreateNoteOptions) (model.Note, error) {
	req := createNoteRequest{
		Title:   opt.Title,
		Content: opt.Content,
		Tags:    opt.Tags,
	}

	var n model.Note
	if err := r.client.Do(ctx, http.MethodPost, notesPath, req, &n); err != nil {
		r.l.Errorf(ctx, "note.repository.CreateNote: %v", err)
		return model.Note{}, err
	}
	return n, nil
}

func (r *implRepository) UpdateNote(ctx context.Context, opt repository.UpdateNoteOptions) (model.Note, error) {
	req := updateNoteRequest{
		Title:   opt.Title,
		Content: opt.Content,
	}

	var n model.Note
	if err := r.client.Do(ctx, http.MethodPut, notePath(opt.ID), req, &n); err != nil {
		r.l.Errorf(ctx, "note.repository.UpdateNote %s: %v", opt.ID, err)
		return model.Note{}, err
	}
	return n, nil
}

// DeleteNote reports NotFound for an id that is already gone.
func (r *implRepository) DeleteNote(ctx context.Context, id string) error {
	if err := r.client.Do(ctx, http.MethodDelete, notePath(id), nil, nil); err != nil {
		r.l.Errorf(ctx, "note.repository.DeleteNote %s: %v", id, err)
		return err
	}
	return nil
}
