package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

// fileRecord is the on-disk layout. Key names are fixed.
type fileRecord struct {
	Token   string      `json:"token"`
	Refresh string      `json:"refresh,omitempty"`
	User    *model.User `json:"user"`
}

type fileStore struct {
	mu   sync.RWMutex
	path string
	cur  model.Session
	l    log.Logger
}

// NewFile returns a Store persisted as JSON at path, restoring any session
// a previous process left there. A missing, corrupt or half-populated file
// restores as anonymous.
func NewFile(path string, l log.Logger) (Store, error) {
	if path == "" {
		return nil, errors.New("session: file path is required")
	}
	if l == nil {
		l = log.NewNop()
	}

	s := &fileStore{path: path, l: l}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	ctx := context.Background()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: read %s: %w", s.path, err)
	}

	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.l.Warnf(ctx, "session.load: ignoring unreadable session file %s: %v", s.path, err)
		return nil
	}

	if rec.Token == "" || rec.User == nil || rec.User.ID == "" {
		s.l.Warnf(ctx, "session.load: ignoring incomplete session file %s", s.path)
		return nil
	}

	s.cur = model.Session{Token: rec.Token, RefreshToken: rec.Refresh, User: rec.User}
	return nil
}

func (s *fileStore) Get() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.cur)
}

func (s *fileStore) Set(token string, user model.User) error {
	return s.SetTokens(token, "", user)
}

func (s *fileStore) SetTokens(token, refresh string, user model.User) error {
	sess, err := newSession(token, refresh, user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(fileRecord{Token: sess.Token, Refresh: sess.RefreshToken, User: sess.User}); err != nil {
		return err
	}
	s.cur = sess
	return nil
}

// Clear always drops the in-memory session, even when the file cannot be
// removed, so a logout never leaves the process authenticated.
func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = model.Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", ErrPersist, s.path, err)
	}
	return nil
}

func (s *fileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// write replaces the session file through a temp file and rename so a
// crash leaves either the old file or the new one.
func (s *fileStore) write(rec fileRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
