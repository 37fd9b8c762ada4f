package usecase

import (
	"github.com/aakashsubedi/NoteSpace/internal/auth/repository"
	"github.com/aakashsubedi/NoteSpace/internal/session"
	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

// implUseCase is the private implementation of auth.UseCase.
type implUseCase struct {
	repo  repository.Repository
	store session.Store
	l     log.Logger
}

// New creates a new auth UseCase. store is the session every authenticated
// request reads its token from.
func New(repo repository.Repository, store session.Store, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:  repo,
		store: store,
		l:     l,
	}
}
