package session

import "github.com/aakashsubedi/NoteSpace/internal/model"

// Store is the single source of truth for "am I logged in, and as whom".
// Token and user are written and removed together; readers never see one
// without the other.
type Store interface {
	// Get returns a snapshot of the current session.
	Get() model.Session
	// Set stores token and user together.
	Set(token string, user model.User) error
	// SetTokens is Set with a refresh token.
	SetTokens(token, refresh string, user model.User) error
	// Clear removes the session.
	Clear() error
	// Token returns the current bearer token, or "".
	Token() string
}
