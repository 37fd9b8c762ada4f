package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aakashsubedi/NoteSpace/internal/auth"
	"github.com/aakashsubedi/NoteSpace/internal/auth/repository"
	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/pkg/httpclient"
)

const (
	tokenPath        = "/token/"
	tokenRefreshPath = "/token/refresh/"
	usersPath        = "/users/"
	profilePath      = "/users/me/"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ObtainToken sends no stored credential.
func (r *implRepository) ObtainToken(ctx context.Context, identifier, password string) (repository.Tokens, error) {
	var resp tokenResponse
	err := r.client.Do(ctx, http.MethodPost, tokenPath, tokenRequest{
		Username: identifier,
		Password: password,
	}, &resp, httpclient.WithoutAuth())
	if err != nil {
		r.l.Warnf(ctx, "auth.repository.ObtainToken: %v", err)
		if httpclient.KindOf(err) == httpclient.KindUnauthenticated {
			return repository.Tokens{}, fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
		}
		return repository.Tokens{}, err
	}
	if resp.Access == "" {
		r.l.Errorf(ctx, "auth.repository.ObtainToken: response has no access token")
		return repository.Tokens{}, &httpclient.APIError{Kind: httpclient.KindUnknown, Status: http.StatusOK, Detail: "token response has no access token"}
	}
	return repository.Tokens{Access: resp.Access, Refresh: resp.Refresh}, nil
}

func (r *implRepository) RefreshToken(ctx context.Context, refresh string) (repository.Tokens, error) {
	var resp tokenResponse
	err := r.client.Do(ctx, http.MethodPost, tokenRefreshPath, refreshRequest{Refresh: refresh}, &resp, httpclient.WithoutAuth())
	if err != nil {
		r.l.Warnf(ctx, "auth.repository.RefreshToken: %v", err)
		return repository.Tokens{}, err
	}
	if resp.Access == "" {
		return repository.Tokens{}, &httpclient.APIError{Kind: httpclient.KindUnknown, Status: http.StatusOK, Detail: "refresh response has no access token"}
	}
	return repository.Tokens{Access: resp.Access, Refresh: resp.Refresh}, nil
}

// FetchProfile uses token explicitly; during login it is not stored yet.
func (r *implRepository) FetchProfile(ctx context.Context, token string) (model.User, error) {
	var u model.User
	if err := r.client.Do(ctx, http.MethodGet, profilePath, nil, &u, httpclient.WithToken(token)); err != nil {
		r.l.Warnf(ctx, "auth.repository.FetchProfile: %v", err)
		return model.User{}, err
	}
	if u.ID == "" {
		return model.User{}, &httpclient.APIError{Kind: httpclient.KindUnknown, Status: http.StatusOK, Detail: "profile response has no user id"}
	}
	return u, nil
}

// CreateUser registers identifier as both username and email.
func (r *implRepository) CreateUser(ctx context.Context, identifier, password string) (model.User, error) {
	var u model.User
	err := r.client.Do(ctx, http.MethodPost, usersPath, createUserRequest{
		Username: identifier,
		Email:    identifier,
		Password: password,
	}, &u, httpclient.WithoutAuth())
	if err != nil {
		r.l.Warnf(ctx, "auth.repository.CreateUser: %v", err)
		return model.User{}, err
	}
	return u, nil
}
