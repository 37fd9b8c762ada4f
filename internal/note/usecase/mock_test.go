package usecase

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
	repo "github.com/aakashsubedi/NoteSpace/internal/note/repository"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock repository recording the last call
type mockRepo struct {
	notes   []model.Note
	note    model.Note
	err     error
	calls   int
	created repo.CreateNoteOptions
	updated repo.UpdateNoteOptions
	deleted string
}

func (m *mockRepo) ListNotes(ctx context.Context) ([]model.Note, error) {
	m.calls++
	return m.notes, m.err
}

func (m *mockRepo) GetNote(ctx context.Context, id string) (model.Note, error) {
	m.calls++
	return m.note, m.err
}

func (m *mockRepo) CreateNote(ctx context.Context, opt repo.CreateNoteOptions) (model.Note, error) {
	m.calls++
	m.created = opt
	return m.note, m.err
}

func (m *mockRepo) UpdateNote(ctx context.Context, opt repo.UpdateNoteOptions) (model.Note, error) {
	m.calls++
	m.updated = opt
	return m.note, m.err
}

func (m *mockRepo) DeleteNote(ctx context.Context, id string) error {
	m.calls++
	m.deleted = id
	return m.err
}
