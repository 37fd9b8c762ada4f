package backendtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, APIPrefix+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, req)
	return w
}

func TestSignupAndToken(t *testing.T) {
	srv, err := New(Config{})
	require.NoError(t, err)

	w := do(t, srv, http.MethodPost, "/users/", "", map[string]string{"username": "a@x.io", "email": "a@x.io", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, srv, http.MethodPost, "/users/", "", map[string]string{"username": "a@x.io", "password": "pw"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"username": ["A user with that username already exists."]}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/token/", "", map[string]string{"username": "a@x.io", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, srv, http.MethodPost, "/token/", "", map[string]string{"username": "a@x.io", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	var tokens struct{ Access, Refresh string }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)

	w = do(t, srv, http.MethodGet, "/users/me/", tokens.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 1, "username": "a@x.io", "email": "a@x.io"}`, w.Body.String())

	srv.ExpireTokens()
	w = do(t, srv, http.MethodGet, "/users/me/", tokens.Access, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(t, srv, http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": tokens.Refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotesAreScopedToOwner(t *testing.T) {
	srv, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, srv.AddUser("alice", "", "pw"))
	require.NoError(t, srv.AddUser("bob", "", "pw"))
	alice, err := srv.Token("alice")
	require.NoError(t, err)
	bob, err := srv.Token("bob")
	require.NoError(t, err)

	w := do(t, srv, http.MethodPost, "/notes/", alice, map[string]any{"title": "t", "content": "c", "tags": []string{"x"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, srv, http.MethodGet, "/notes/1/", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, srv, http.MethodGet, "/notes/", bob, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/notes/", alice, map[string]any{"title": " ", "content": "c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"title": ["This field may not be blank."]}`, w.Body.String())

	w = do(t, srv, http.MethodDelete, "/notes/1/", alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, srv, http.MethodDelete, "/notes/1/", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/notes/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFailNext(t *testing.T) {
	srv, err := New(Config{})
	require.NoError(t, err)

	srv.FailNext("/token/", http.StatusBadGateway, nil)
	w := do(t, srv, http.MethodPost, "/users/", "", map[string]string{"username": "u", "password": "p"})
	assert.Equal(t, http.StatusCreated, w.Code, "other paths are unaffected")

	w = do(t, srv, http.MethodPost, "/token/", "", map[string]string{"username": "u", "password": "p"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	w = do(t, srv, http.MethodPost, "/token/", "", map[string]string{"username": "u", "password": "p"})
	assert.Equal(t, http.StatusOK, w.Code, "only the next request fails")

	assert.Len(t, srv.Requests(), 3)
}
