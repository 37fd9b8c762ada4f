package auth

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
)

//go:generate mockery --name UseCase

// UseCase drives the session lifecycle: it is the only writer of the
// session store apart from the HTTP client clearing it on a 401.
type UseCase interface {
	Login(ctx context.Context, identifier, password string) (model.User, error)
	Signup(ctx context.Context, identifier, password string) (model.User, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (model.User, error)
	Status() Status
}
