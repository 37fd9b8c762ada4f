package repository

import (
	"context"

	"github.com/aakashsubedi/NoteSpace/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	ObtainToken(ctx context.Context, identifier, password string) (Tokens, error)
	RefreshToken(ctx context.Context, refresh string) (Tokens, error)
	FetchProfile(ctx context.Context, token string) (model.User, error)
	CreateUser(ctx context.Context, identifier, password string) (model.User, error)
}

// Tokens is the pair issued by the token endpoint. Refresh may be empty
// when the backend does not rotate it.
type Tokens struct {
	Access  string
	Refresh string
}
