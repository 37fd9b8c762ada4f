package usecase

import (
	"github.com/aakashsubedi/NoteSpace/internal/note/repository"
	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

// implUseCase is the private implementation of note.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

// New creates a new note UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
