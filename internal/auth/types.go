package auth

import (
	"time"

	"github.com/aakashsubedi/NoteSpace/internal/model"
)

// Status describes the current session as seen from the store.
type Status struct {
	State     model.AuthState
	User      *model.User
	ExpiresAt time.Time // zero when the token carries no readable expiry
}

// Expired reports whether the access token's expiry has passed at now.
func (s Status) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
