package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is a server-side session table. The cookie only carries a
// random id; entries expire after ttl or when the table overflows.
type MemoryStore struct {
	table *expirable.LRU[string, string]
	opts  CookieOptions
}

func NewMemoryStore(size int, ttl time.Duration, opts CookieOptions) *MemoryStore {
	return &MemoryStore{
		table: expirable.NewLRU[string, string](size, nil, ttl),
		opts:  opts,
	}
}

func (s *MemoryStore) Load(r *http.Request) (Session, error) {
	id, ok := s.opts.read(r)
	if !ok {
		return Session{}, nil
	}
	username, ok := s.table.Get(id)
	if !ok {
		return Session{}, nil
	}
	return Session{Username: username}, nil
}

func (s *MemoryStore) Save(w http.ResponseWriter, r *http.Request, sess Session) error {
	if old, ok := s.opts.read(r); ok {
		s.table.Remove(old)
	}
	if !sess.Authenticated() {
		s.opts.expire(w)
		return nil
	}
	id, err := newSessionID()
	if err != nil {
		return err
	}
	s.table.Add(id, sess.Username)
	s.opts.set(w, id)
	return nil
}

func (s *MemoryStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if id, ok := s.opts.read(r); ok {
		s.table.Remove(id)
	}
	s.opts.expire(w)
	return nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
