package auth

import (
	"fmt"
	"sync"

	"github.com/gaillardy/crm/internal/bus"
)

// Identity is the display identity of an active session.
type Identity struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// DemoDisplayName is the fixed placeholder identity name. Authentication
// is a demo mock: any credentials are accepted.
const DemoDisplayName = "Demo User"

// Session is the persisted session state. Identity is non-nil exactly
// when Authenticated is true.
type Session struct {
	Authenticated bool      `json:"authenticated"`
	Identity      *Identity `json:"identity,omitempty"`
}

// Persister mirrors the session state to durable storage.
type Persister interface {
	SaveSession(s *Session) error
	// LoadSession returns (nil, nil) when nothing was saved yet.
	LoadSession() (*Session, error)
}

// Store holds the session state. Login always succeeds; there is no
// credential verification and no expiry.
type Store struct {
	mu      sync.RWMutex
	session Session

	persister Persister
	bus       *bus.Bus
}

// New creates a session store in the unauthenticated state.
func New(p Persister, b *bus.Bus) *Store {
	return &Store{persister: p, bus: b}
}

// Rehydrate restores the last persisted session state.
func (s *Store) Rehydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.persister.LoadSession()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if saved != nil {
		if saved.Authenticated && saved.Identity == nil {
			// Repair a corrupt mirror rather than violating the invariant.
			saved.Authenticated = false
		}
		if !saved.Authenticated {
			saved.Identity = nil
		}
		s.session = *saved
	}
	return nil
}

// Login transitions to authenticated with the supplied email and the
// fixed demo display name. The password is ignored.
func (s *Store) Login(email, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Session{
		Authenticated: true,
		Identity:      &Identity{DisplayName: DemoDisplayName, Email: email},
	}
	if err := s.persister.SaveSession(&next); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.session = next
	if s.bus != nil {
		s.bus.PublishKind(bus.KindLoggedIn, email)
	}
	return nil
}

// Logout transitions to unauthenticated. Idempotent.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Session{}
	if err := s.persister.SaveSession(&next); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.session = next
	if s.bus != nil {
		s.bus.PublishKind(bus.KindLoggedOut, nil)
	}
	return nil
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated
}

// Current returns the active identity, or (zero, false) when logged out.
func (s *Store) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Authenticated || s.session.Identity == nil {
		return Identity{}, false
	}
	return *s.session.Identity, true
}
