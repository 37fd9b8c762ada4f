package session

import (
	"github.com/patrickmn/go-cache"

	"github.com/aakashsubedi/NoteSpace/internal/model"
)

const sessionKey = "session"

type memoryStore struct {
	cache *cache.Cache
}

// NewMemory returns a process-local Store. The whole session lives under
// one cache key so a write replaces token and user in a single step.
func NewMemory() Store {
	return &memoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *memoryStore) Get() model.Session {
	x, found := s.cache.Get(sessionKey)
	if !found {
		return model.Session{}
	}
	return snapshot(x.(model.Session))
}

func (s *memoryStore) Set(token string, user model.User) error {
	return s.SetTokens(token, "", user)
}

func (s *memoryStore) SetTokens(token, refresh string, user model.User) error {
	sess, err := newSession(token, refresh, user)
	if err != nil {
		return err
	}
	s.cache.Set(sessionKey, sess, cache.NoExpiration)
	return nil
}

func (s *memoryStore) Clear() error {
	s.cache.Delete(sessionKey)
	return nil
}

func (s *memoryStore) Token() string {
	return s.Get().Token
}
