// Package session keeps track of who is logged in for a request.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xxxsen/wikid/internal/config"
)

// Session is the per-request identity. The zero value is anonymous.
type Session struct {
	Username string
}

func (s Session) Authenticated() bool {
	return s.Username != ""
}

// Store loads and persists sessions between requests. Load never fails on
// a missing or unreadable cookie; it returns an anonymous session instead
// and reports the problem through the error.
type Store interface {
	Load(r *http.Request) (Session, error)
	Save(w http.ResponseWriter, r *http.Request, s Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

func New(cfg config.SessionConfig) (Store, error) {
	ttl := time.Duration(cfg.TTLHours) * time.Hour
	opts := CookieOptions{Name: cfg.CookieName, Secure: cfg.Secure}
	switch cfg.Type {
	case "", "cookie":
		if cfg.Secret == "" {
			return nil, fmt.Errorf("session secret is required")
		}
		return NewCookieStore([]byte(cfg.Secret), ttl, opts), nil
	case "memory":
		return NewMemoryStore(cfg.MemorySize, ttl, opts), nil
	default:
		return nil, fmt.Errorf("unsupported session type: %s", cfg.Type)
	}
}

type CookieOptions struct {
	Name   string
	Secure bool
}

func (o CookieOptions) cookieName() string {
	if o.Name == "" {
		return "wikid_session"
	}
	return o.Name
}

// set writes a browser-session cookie: no Max-Age, so it goes away when
// the browser closes.
func (o CookieOptions) set(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.cookieName(),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.cookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) read(r *http.Request) (string, bool) {
	c, err := r.Cookie(o.cookieName())
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
