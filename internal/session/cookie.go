package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xxxsen/wikid/internal/pkg/jwt"
)

// CookieStore keeps the username in a signed token inside the cookie
// itself, so nothing is held server side.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	opts   CookieOptions
}

func NewCookieStore(secret []byte, ttl time.Duration, opts CookieOptions) *CookieStore {
	return &CookieStore{secret: secret, ttl: ttl, opts: opts}
}

func (s *CookieStore) Load(r *http.Request) (Session, error) {
	value, ok := s.opts.read(r)
	if !ok {
		return Session{}, nil
	}
	claims, err := jwt.ParseToken(value, s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("parse session token: %w", err)
	}
	return Session{Username: claims.Username}, nil
}

func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, sess Session) error {
	_ = r
	if !sess.Authenticated() {
		s.opts.expire(w)
		return nil
	}
	token, err := jwt.GenerateToken(sess.Username, s.secret, s.ttl)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}
	s.opts.set(w, token)
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	_ = r
	s.opts.expire(w)
	return nil
}
