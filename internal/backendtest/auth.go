package backendtest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const ctxUserKey = "backendtest.user"

type user struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	passwordHash []byte
}

type refreshEntry struct {
	username   string
	generation int
}

type accessClaims struct {
	Generation int `json:"gen"`
	jwt.RegisteredClaims
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// createUser registers an account. Duplicate usernames get the field error
// the real backend returns.
func (srv *Server) createUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "JSON parse error")
		return
	}
	if errs := requireFields(map[string]string{"username": req.Username, "password": req.Password}); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), srv.bcryptCost)
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "backendtest.createUser: bcrypt: %v", err)
		detail(c, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, exists := srv.users[req.Username]; exists {
		fieldErrors(c, map[string]string{"username": msgUserExists})
		return
	}

	srv.nextUserID++
	u := &user{ID: srv.nextUserID, Username: req.Username, Email: req.Email, passwordHash: hash}
	srv.users[u.Username] = u
	c.JSON(http.StatusCreated, u)
}

func (srv *Server) obtainToken(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "JSON parse error")
		return
	}
	if errs := requireFields(map[string]string{"username": req.Username, "password": req.Password}); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	u, ok := srv.users[req.Username]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		unauthorized(c, msgBadLogin)
		return
	}

	access, err := srv.issueAccess(u)
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "backendtest.obtainToken: sign: %v", err)
		detail(c, http.StatusInternalServerError, "A server error occurred.")
		return
	}
	refresh := uuid.NewString()
	srv.refresh.Add(refresh, refreshEntry{username: u.Username, generation: srv.generation})

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// refreshToken returns a new access token only; the refresh token is not
// rotated.
func (srv *Server) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		fieldErrors(c, map[string]string{"refresh": msgRequired})
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	entry, ok := srv.refresh.Get(req.Refresh)
	if !ok || entry.generation != srv.generation {
		unauthorized(c, "Token is invalid or expired")
		return
	}
	u, ok := srv.users[entry.username]
	if !ok {
		unauthorized(c, "Token is invalid or expired")
		return
	}

	access, err := srv.issueAccess(u)
	if err != nil {
		detail(c, http.StatusInternalServerError, "A server error occurred.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (srv *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// requireAuth resolves the bearer token to a user or answers 401.
func (srv *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, msgNoCredential)
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			unauthorized(c, msgBadToken)
			return
		}

		u, err := srv.verifyAccess(raw)
		if err != nil {
			srv.l.Debugf(c.Request.Context(), "backendtest.requireAuth: %v", err)
			unauthorized(c, msgBadToken)
			return
		}

		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// issueAccess signs an HS256 access token. Callers hold srv.mu.
func (srv *Server) issueAccess(u *user) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Generation: srv.generation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(srv.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(srv.secret)
}

func (srv *Server) verifyAccess(raw string) (*user, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return srv.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if claims.Generation != srv.generation {
		return nil, errors.New("token revoked")
	}
	u, ok := srv.users[claims.Subject]
	if !ok {
		return nil, fmt.Errorf("unknown user %q", claims.Subject)
	}
	return u, nil
}

func currentUser(c *gin.Context) *user {
	v, _ := c.Get(ctxUserKey)
	u, _ := v.(*user)
	return u
}

func requireFields(fields map[string]string) map[string]string {
	errs := make(map[string]string)
	for name, value := range fields {
		if value == "" {
			errs[name] = msgRequired
		}
	}
	return errs
}

// Token signs a fresh access token for username, for tests that need a
// session without going through the login endpoint.
func (srv *Server) Token(username string) (string, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	u, ok := srv.users[username]
	if !ok {
		return "", errors.New("backendtest: unknown user " + strconv.Quote(username))
	}
	return srv.issueAccess(u)
}

// AddUser registers an account directly, bypassing HTTP.
func (srv *Server) AddUser(username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), srv.bcryptCost)
	if err != nil {
		return err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if _, exists := srv.users[username]; exists {
		return errors.New("backendtest: " + msgUserExists)
	}
	srv.nextUserID++
	srv.users[username] = &user{ID: srv.nextUserID, Username: username, Email: email, passwordHash: hash}
	return nil
}
