package main

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakashsubedi/NoteSpace/internal/backendtest"
)

type cli struct {
	t       *testing.T
	baseURL string
	session string
}

func newCLI(t *testing.T) (*cli, *backendtest.Server) {
	t.Helper()
	color.NoColor = true

	backend, err := backendtest.New(backendtest.Config{})
	require.NoError(t, err)
	baseURL := backend.Start()
	t.Cleanup(backend.Close)

	return &cli{
		t:       t,
		baseURL: baseURL,
		session: filepath.Join(t.TempDir(), "session.json"),
	}, backend
}

func (c *cli) run(stdin string, args ...string) (int, string, string) {
	c.t.Helper()
	viper.Reset()
	c.t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	full := append([]string{"--api-url", c.baseURL, "--session", c.session, "--log-level", "fatal"}, args...)
	code := run(full, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestNoteLifecycle(t *testing.T) {
	c, _ := newCLI(t)

	code, out, _ := c.run("", "signup", "--email", "a@x.io", "--password", "pw")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Logged in as a@x.io")

	code, out, _ = c.run("", "whoami")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Logged in as a@x.io")
	assert.Contains(t, out, "Access token valid until")

	code, out, _ = c.run("", "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No notes yet")

	code, out, _ = c.run("", "create", "--title", "Groceries", "--content", "milk", "--tag", "home,todo")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Created note 1")

	code, _, _ = c.run("", "create", "--title", "Standup", "--content", "notes", "--tag", "work")
	require.Equal(t, 0, code)

	code, out, _ = c.run("", "list", "--tag", "todo")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Standup")
	assert.Contains(t, out, "1 of 2 notes")

	code, out, _ = c.run("", "tags")
	require.Equal(t, 0, code)
	assert.ElementsMatch(t, []string{"home", "todo", "work"}, strings.Fields(out))

	code, _, _ = c.run("", "edit", "1", "--title", "Shopping", "--content", "milk and eggs")
	require.Equal(t, 0, code)

	code, out, _ = c.run("", "show", "1")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "# Shopping")
	assert.Contains(t, out, "milk and eggs")
	assert.Contains(t, out, "Tags: home, todo")

	code, _, _ = c.run("", "delete", "1")
	require.Equal(t, 0, code)

	code, _, errOut := c.run("", "delete", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not found")

	code, _, _ = c.run("", "logout")
	require.Equal(t, 0, code)
	code, out, _ = c.run("", "whoami")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Not logged in")
}

func TestExpiredSessionShowsLoginHint(t *testing.T) {
	c, backend := newCLI(t)

	code, _, _ := c.run("a@x.io\npw\n", "signup")
	require.Equal(t, 0, code)

	backend.ExpireTokens()
	code, _, errOut := c.run("", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Session expired")
	assert.Contains(t, errOut, "notespace login")

	code, out, _ := c.run("", "whoami")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Not logged in")
}

func TestErrors(t *testing.T) {
	c, _ := newCLI(t)

	code, _, errOut := c.run("", "login", "--email", "nobody@x.io", "--password", "pw")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Invalid email or password")

	code, _, _ = c.run("", "signup", "--email", "a@x.io", "--password", "pw")
	require.Equal(t, 0, code)
	code, _, errOut = c.run("", "signup", "--email", "a@x.io", "--password", "pw")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "A user with that username already exists.")

	code, _, errOut = c.run("", "create", "--title", " ", "--content", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Note title is empty")

	code, _, errOut = c.run("", "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)

	code, _, errOut = c.run("", "show")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "expected exactly one note id")
}

func TestLoginProfileRejected(t *testing.T) {
	c, backend := newCLI(t)
	require.NoError(t, backend.AddUser("a@x.io", "a@x.io", "pw"))
	backend.FailNext("/users/me/", http.StatusUnauthorized, map[string]string{"detail": "Token is blacklisted"})

	code, _, errOut := c.run("", "login", "--email", "a@x.io", "--password", "pw")
	assert.Equal(t, 1, code)
	assert.NotContains(t, errOut, "Invalid email or password")
	assert.Contains(t, errOut, "Session expired")
}

func TestNetworkUnavailable(t *testing.T) {
	c, backend := newCLI(t)
	backend.Close()

	code, _, errOut := c.run("", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Could not connect to the server")
}
