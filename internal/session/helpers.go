package session

import "github.com/aakashsubedi/NoteSpace/internal/model"

func newSession(token, refresh string, user model.User) (model.Session, error) {
	if token == "" {
		return model.Session{}, ErrEmptyToken
	}
	if user.ID == "" {
		return model.Session{}, ErrEmptyUser
	}
	u := user
	return model.Session{Token: token, RefreshToken: refresh, User: &u}, nil
}

// snapshot copies s so callers cannot mutate stored state through User.
func snapshot(s model.Session) model.Session {
	if s.User == nil {
		return model.Session{}
	}
	u := *s.User
	s.User = &u
	return s
}
