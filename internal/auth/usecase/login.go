package usecase

import (
	"context"
	"strings"

	"github.com/aakashsubedi/NoteSpace/internal/auth"
	"github.com/aakashsubedi/NoteSpace/internal/model"
)

// Login exchanges credentials for a token, fetches the profile with it and
// only then stores both. Any failure, including missing credentials,
// leaves the store empty.
func (uc *implUseCase) Login(ctx context.Context, identifier, password string) (model.User, error) {
	if err := validateCredentials(identifier, password); err != nil {
		uc.clear(ctx)
		return model.User{}, err
	}

	tokens, err := uc.repo.ObtainToken(ctx, strings.TrimSpace(identifier), password)
	if err != nil {
		uc.clear(ctx)
		return model.User{}, err
	}

	user, err := uc.repo.FetchProfile(ctx, tokens.Access)
	if err != nil {
		uc.l.Warnf(ctx, "auth.usecase.Login: profile fetch failed, discarding token: %v", err)
		uc.clear(ctx)
		return model.User{}, err
	}

	if err := uc.store.SetTokens(tokens.Access, tokens.Refresh, user); err != nil {
		uc.l.Errorf(ctx, "auth.usecase.Login: store session: %v", err)
		uc.clear(ctx)
		return model.User{}, err
	}

	uc.l.Infof(ctx, "auth.usecase.Login: logged in as %s", user.Username)
	return user, nil
}

// Signup creates the account and logs in with the same credentials.
func (uc *implUseCase) Signup(ctx context.Context, identifier, password string) (model.User, error) {
	if err := validateCredentials(identifier, password); err != nil {
		uc.clear(ctx)
		return model.User{}, err
	}

	if _, err := uc.repo.CreateUser(ctx, strings.TrimSpace(identifier), password); err != nil {
		uc.clear(ctx)
		return model.User{}, err
	}

	return uc.Login(ctx, identifier, password)
}

// Logout is local only; the backend keeps no session to end.
func (uc *implUseCase) Logout(ctx context.Context) error {
	uc.clear(ctx)
	return nil
}

func (uc *implUseCase) clear(ctx context.Context) {
	if err := uc.store.Clear(); err != nil {
		uc.l.Errorf(ctx, "auth.usecase: clear session: %v", err)
	}
}

func validateCredentials(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return auth.ErrEmptyCredentials
	}
	return nil
}
