package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/colossusofNero/smartonboarding/pkg/wizard"
)

const sessionCookie = "onboarding_session"

// session pairs a wizard with the lock that serializes request handling for
// it; the wizard itself is not safe for concurrent use.
type session struct {
	mu       sync.Mutex
	wizard   *wizard.Wizard
	lastSeen time.Time
}

// sessionStore is an in-memory, cookie-keyed wizard registry. Progress lives
// only for the lifetime of the process; everything not recoverable from the
// return URL's step indicator is lost on restart, matching the one-page-app
// lifecycle this replaces.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	create   func() *wizard.Wizard
}

func newSessionStore(ttl time.Duration, create func() *wizard.Wizard) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		create:   create,
	}
}

// get returns the session for the request's cookie, creating a session (and
// setting the cookie) when none exists.
func (s *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[cookie.Value]; ok {
			sess.lastSeen = time.Now()
			return sess
		}
	}

	id := newSessionID()
	sess := &session{wizard: s.create(), lastSeen: time.Now()}
	s.sessions[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *sessionStore) expireLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in a bad way; fall
		// back to a timestamp rather than panicking mid-request.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(buf)
}
