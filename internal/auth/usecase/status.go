package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aakashsubedi/NoteSpace/internal/auth"
	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/pkg/httpclient"
)

// Status reports the session state. Authenticating is never returned: it
// exists only while a Login call is in flight.
func (uc *implUseCase) Status() auth.Status {
	sess := uc.store.Get()
	if !sess.Authenticated() {
		return auth.Status{State: model.StateAnonymous}
	}
	return auth.Status{
		State:     model.StateAuthenticated,
		User:      sess.User,
		ExpiresAt: tokenExpiry(sess.Token),
	}
}

// Refresh trades the stored refresh token for a new access token. The user
// is kept. Only a refresh token the backend rejects ends the session;
// transport and server failures leave it in place.
func (uc *implUseCase) Refresh(ctx context.Context) (model.User, error) {
	sess := uc.store.Get()
	if !sess.Authenticated() || sess.RefreshToken == "" {
		return model.User{}, auth.ErrNoRefreshToken
	}

	tokens, err := uc.repo.RefreshToken(ctx, sess.RefreshToken)
	if err != nil {
		uc.l.Warnf(ctx, "auth.usecase.Refresh: %v", err)
		switch httpclient.KindOf(err) {
		case httpclient.KindUnauthenticated, httpclient.KindInvalidRequest:
			uc.clear(ctx)
		}
		return model.User{}, err
	}

	refresh := tokens.Refresh
	if refresh == "" {
		refresh = sess.RefreshToken
	}
	if err := uc.store.SetTokens(tokens.Access, refresh, *sess.User); err != nil {
		uc.l.Errorf(ctx, "auth.usecase.Refresh: store session: %v", err)
		uc.clear(ctx)
		return model.User{}, err
	}
	return *sess.User, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client has no key and only uses it for display.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
