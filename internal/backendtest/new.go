// Package backendtest runs an in-memory NoteSpace backend over real HTTP.
// It speaks the same wire format as the production API and exists for
// end-to-end tests of the client packages.
package backendtest

import (
	"errors"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/bcrypt"

	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

const (
	// APIPrefix is the path every route lives under, like the real backend.
	APIPrefix = "/api"

	defaultAccessTTL   = 5 * time.Minute
	defaultRefreshTTL  = 24 * time.Hour
	defaultRefreshSize = 1024
)

// Server holds the fake backend state.
type Server struct {
	gin        *gin.Engine
	l          log.Logger
	secret     []byte
	accessTTL  time.Duration
	bcryptCost int

	mu         sync.Mutex
	users      map[string]*user // by username
	nextUserID int
	notes      map[int]*note
	nextNoteID int
	generation int
	refresh    *expirable.LRU[string, refreshEntry]
	hooks      hooks

	ts *httptest.Server
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger     log.Logger
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// New creates a Server. Call Start to serve it.
func New(cfg Config) (*Server, error) {
	gin.SetMode(gin.TestMode)

	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}
	if cfg.Secret == "" {
		cfg.Secret = "backendtest-secret"
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.MinCost
	}

	srv := &Server{
		gin:        gin.New(),
		l:          cfg.Logger,
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		bcryptCost: cfg.BcryptCost,
		users:      make(map[string]*user),
		notes:      make(map[int]*note),
		refresh:    expirable.NewLRU[string, refreshEntry](defaultRefreshSize, nil, cfg.RefreshTTL),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv *Server) validate() error {
	if srv.accessTTL < 0 {
		return errors.New("access token ttl must not be negative")
	}
	if srv.bcryptCost < bcrypt.MinCost || srv.bcryptCost > bcrypt.MaxCost {
		return errors.New("bcrypt cost out of range")
	}
	return nil
}

// Start serves the backend on a loopback port and returns the API base URL
// (including APIPrefix).
func (srv *Server) Start() string {
	if srv.ts == nil {
		srv.ts = httptest.NewServer(srv.gin)
	}
	return srv.ts.URL + APIPrefix
}

// Close stops serving. It is safe to call more than once.
func (srv *Server) Close() {
	if srv.ts != nil {
		srv.ts.Close()
		srv.ts = nil
	}
}
