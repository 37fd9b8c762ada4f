package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakashsubedi/NoteSpace/internal/auth"
	authRest "github.com/aakashsubedi/NoteSpace/internal/auth/repository/rest"
	"github.com/aakashsubedi/NoteSpace/internal/auth/usecase"
	"github.com/aakashsubedi/NoteSpace/internal/backendtest"
	"github.com/aakashsubedi/NoteSpace/internal/model"
	noteRest "github.com/aakashsubedi/NoteSpace/internal/note/repository/rest"
	"github.com/aakashsubedi/NoteSpace/internal/session"
	"github.com/aakashsubedi/NoteSpace/pkg/httpclient"
	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

type fixture struct {
	backend *backendtest.Server
	store   session.Store
	client  *httpclient.Client
	uc      auth.UseCase
}

func setup(t *testing.T, timeout time.Duration) fixture {
	t.Helper()
	backend, err := backendtest.New(backendtest.Config{})
	require.NoError(t, err)
	baseURL := backend.Start()
	t.Cleanup(backend.Close)

	store := session.NewMemory()
	client := httpclient.New(httpclient.Config{BaseURL: baseURL, Timeout: timeout}, store, log.NewNop())
	return fixture{
		backend: backend,
		store:   store,
		client:  client,
		uc:      usecase.New(authRest.New(client, log.NewNop()), store, log.NewNop()),
	}
}

func assertAnonymous(t *testing.T, store session.Store) {
	t.Helper()
	s := store.Get()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token, "no orphan token")
	assert.Nil(t, s.User)
}

func TestLogin(t *testing.T) {
	f := setup(t, 0)
	require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))

	u, err := f.uc.Login(context.Background(), "a@x.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", u.Username)

	s := f.store.Get()
	require.True(t, s.Authenticated())
	assert.Equal(t, u, *s.User)
	assert.NotEmpty(t, s.RefreshToken)

	status := f.uc.Status()
	assert.Equal(t, model.StateAuthenticated, status.State)
	assert.Equal(t, "a@x.io", status.User.Username)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), status.ExpiresAt, time.Minute)
	assert.False(t, status.Expired(time.Now()))

	reqs := f.backend.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/api/token/", reqs[0].Path)
	assert.Empty(t, reqs[0].Authorization)
	assert.Equal(t, "/api/users/me/", reqs[1].Path)
	assert.Equal(t, "Bearer "+s.Token, reqs[1].Authorization)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		password string
		prepare  func(b *backendtest.Server)
		wantErr  error
		badCreds bool
	}{
		{"wrong password", "nope", func(*backendtest.Server) {}, httpclient.ErrUnauthenticated, true},
		{"profile fetch fails", "secret", func(b *backendtest.Server) {
			b.FailNext("/users/me/", http.StatusInternalServerError, nil)
		}, httpclient.ErrServerError, false},
		{"profile token rejected", "secret", func(b *backendtest.Server) {
			b.FailNext("/users/me/", http.StatusUnauthorized, map[string]string{"detail": "bad"})
		}, httpclient.ErrUnauthenticated, false},
		{"token endpoint down", "secret", func(b *backendtest.Server) {
			b.FailNext("/token/", http.StatusServiceUnavailable, nil)
		}, httpclient.ErrServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, 0)
			require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))
			// A previous session must not survive a failed login either.
			require.NoError(t, f.store.Set("old", model.User{ID: "9", Username: "old"}))
			tt.prepare(f.backend)

			_, err := f.uc.Login(context.Background(), "a@x.io", tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.badCreds, errors.Is(err, auth.ErrInvalidCredentials))
			assertAnonymous(t, f.store)
			assert.Equal(t, model.StateAnonymous, f.uc.Status().State)
		})
	}
}

func TestLoginTimeout(t *testing.T) {
	f := setup(t, 50*time.Millisecond)
	require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))
	f.backend.SetLatency(time.Second)

	_, err := f.uc.Login(context.Background(), "a@x.io", "secret")
	assert.ErrorIs(t, err, httpclient.ErrTimeout)
	assertAnonymous(t, f.store)
}

func TestEmptyCredentials(t *testing.T) {
	f := setup(t, 0)
	ctx := context.Background()

	require.NoError(t, f.store.Set("old", model.User{ID: "9", Username: "old"}))
	_, err := f.uc.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, auth.ErrEmptyCredentials)
	assertAnonymous(t, f.store)

	require.NoError(t, f.store.Set("old", model.User{ID: "9", Username: "old"}))
	_, err = f.uc.Login(ctx, "  ", "pw")
	assert.ErrorIs(t, err, auth.ErrEmptyCredentials)
	assertAnonymous(t, f.store)

	require.NoError(t, f.store.Set("old", model.User{ID: "9", Username: "old"}))
	_, err = f.uc.Signup(ctx, "a@x.io", "")
	assert.ErrorIs(t, err, auth.ErrEmptyCredentials)
	assertAnonymous(t, f.store)

	assert.Empty(t, f.backend.Requests(), "validation happens before any request")
}

func TestSignup(t *testing.T) {
	f := setup(t, 0)
	ctx := context.Background()

	u, err := f.uc.Signup(ctx, "new@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", u.Username)
	assert.Equal(t, "new@x.io", u.Email)
	assert.True(t, f.store.Get().Authenticated())

	require.NoError(t, f.uc.Logout(ctx))

	_, err = f.uc.Signup(ctx, "new@x.io", "pw")
	apiErr, ok := httpclient.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, httpclient.KindInvalidRequest, apiErr.Kind)
	assert.Equal(t, "username: A user with that username already exists.", apiErr.Detail)
	assertAnonymous(t, f.store)
}

func TestLogoutIsLocal(t *testing.T) {
	f := setup(t, 0)
	require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))
	ctx := context.Background()

	_, err := f.uc.Login(ctx, "a@x.io", "secret")
	require.NoError(t, err)
	before := len(f.backend.Requests())

	require.NoError(t, f.uc.Logout(ctx))
	assertAnonymous(t, f.store)
	assert.Equal(t, before, len(f.backend.Requests()))

	require.NoError(t, f.uc.Logout(ctx), "logout when anonymous is fine")
}

func TestUnauthorizedEndsSession(t *testing.T) {
	f := setup(t, 0)
	require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))
	ctx := context.Background()

	_, err := f.uc.Login(ctx, "a@x.io", "secret")
	require.NoError(t, err)

	f.backend.ExpireTokens()
	_, err = noteRest.New(f.client, log.NewNop()).ListNotes(ctx)
	assert.ErrorIs(t, err, httpclient.ErrUnauthenticated)
	assertAnonymous(t, f.store)
	assert.Equal(t, model.StateAnonymous, f.uc.Status().State)
}

func TestRefresh(t *testing.T) {
	f := setup(t, 0)
	require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))
	ctx := context.Background()

	_, err := f.uc.Refresh(ctx)
	assert.ErrorIs(t, err, auth.ErrNoRefreshToken)

	u, err := f.uc.Login(ctx, "a@x.io", "secret")
	require.NoError(t, err)
	before := f.store.Get()

	got, err := f.uc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	after := f.store.Get()
	assert.NotEqual(t, before.Token, after.Token)
	assert.Equal(t, before.RefreshToken, after.RefreshToken)
	assert.Equal(t, u, *after.User)

	f.backend.ExpireTokens()
	_, err = f.uc.Refresh(ctx)
	assert.ErrorIs(t, err, httpclient.ErrUnauthenticated)
	assertAnonymous(t, f.store)
}

func TestRefreshKeepsSessionOnTransientFailure(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(b *backendtest.Server)
		wantErr error
	}{
		{"server error", func(b *backendtest.Server) {
			b.FailNext("/token/refresh/", http.StatusBadGateway, nil)
		}, httpclient.ErrServerError},
		{"backend down", func(b *backendtest.Server) { b.Close() }, httpclient.ErrNetworkUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, 0)
			require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))
			ctx := context.Background()

			u, err := f.uc.Login(ctx, "a@x.io", "secret")
			require.NoError(t, err)
			before := f.store.Get()

			tt.prepare(f.backend)
			_, err = f.uc.Refresh(ctx)
			assert.ErrorIs(t, err, tt.wantErr)

			after := f.store.Get()
			require.True(t, after.Authenticated())
			assert.Equal(t, before.Token, after.Token)
			assert.Equal(t, before.RefreshToken, after.RefreshToken)
			assert.Equal(t, u, *after.User)
		})
	}
}

func TestRefreshRejectedTokenEndsSession(t *testing.T) {
	f := setup(t, 0)
	require.NoError(t, f.backend.AddUser("a@x.io", "a@x.io", "secret"))
	ctx := context.Background()

	_, err := f.uc.Login(ctx, "a@x.io", "secret")
	require.NoError(t, err)

	f.backend.FailNext("/token/refresh/", http.StatusBadRequest, map[string][]string{"refresh": {"This field may not be blank."}})
	_, err = f.uc.Refresh(ctx)
	assert.ErrorIs(t, err, httpclient.ErrInvalidRequest)
	assertAnonymous(t, f.store)
}
