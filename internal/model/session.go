package model

// Session is the client's authentication state. Token and User are always
// set and cleared together.
type Session struct {
	Token        string
	RefreshToken string
	User         *User
}

// Authenticated reports whether the session holds both a token and a user.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// AuthState is the client's position in the login state machine.
type AuthState string

const (
	StateAnonymous      AuthState = "anonymous"
	StateAuthenticating AuthState = "authenticating"
	StateAuthenticated  AuthState = "authenticated"
)
