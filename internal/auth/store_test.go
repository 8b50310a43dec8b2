package auth

import (
	"testing"
	"time"

	"github.com/gaillardy/crm/internal/bus"
)

type memPersister struct {
	saved *Session
}

func (m *memPersister) SaveSession(s *Session) error {
	cp := *s
	if s.Identity != nil {
		id := *s.Identity
		cp.Identity = &id
	}
	m.saved = &cp
	return nil
}

func (m *memPersister) LoadSession() (*Session, error) {
	if m.saved == nil {
		return nil, nil
	}
	cp := *m.saved
	return &cp, nil
}

func TestLoginLogout(t *testing.T) {
	s := New(&memPersister{}, nil)

	if s.Authenticated() {
		t.Fatal("new store should be unauthenticated")
	}

	if err := s.Login("a@b.com", "anything"); err != nil {
		t.Fatal(err)
	}
	if !s.Authenticated() {
		t.Error("Authenticated() = false after Login")
	}
	id, ok := s.Current()
	if !ok {
		t.Fatal("Current() empty after Login")
	}
	if id.Email != "a@b.com" {
		t.Errorf("Email = %q, want a@b.com", id.Email)
	}
	if id.DisplayName != DemoDisplayName {
		t.Errorf("DisplayName = %q, want %q", id.DisplayName, DemoDisplayName)
	}

	if err := s.Logout(); err != nil {
		t.Fatal(err)
	}
	if s.Authenticated() {
		t.Error("Authenticated() = true after Logout")
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() non-empty after Logout")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	s := New(&memPersister{}, nil)
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() on fresh store = %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("second Logout() = %v", err)
	}
	if s.Authenticated() {
		t.Error("still authenticated")
	}
}

func TestRehydrateRestoresSession(t *testing.T) {
	p := &memPersister{}
	s := New(p, nil)
	if err := s.Login("demo@example.com", "x"); err != nil {
		t.Fatal(err)
	}

	s2 := New(p, nil)
	if err := s2.Rehydrate(); err != nil {
		t.Fatal(err)
	}
	if !s2.Authenticated() {
		t.Error("rehydrated store not authenticated")
	}
	id, _ := s2.Current()
	if id.Email != "demo@example.com" {
		t.Errorf("Email = %q, want demo@example.com", id.Email)
	}
}

func TestRehydrateRepairsInvariant(t *testing.T) {
	p := &memPersister{saved: &Session{Authenticated: true, Identity: nil}}
	s := New(p, nil)
	if err := s.Rehydrate(); err != nil {
		t.Fatal(err)
	}
	if s.Authenticated() {
		t.Error("authenticated without identity should be repaired to logged out")
	}
}

func TestLoginPublishes(t *testing.T) {
	b := bus.New()
	s := New(&memPersister{}, b)

	ch, unsub := b.Subscribe("auth.", 4)
	defer unsub()

	if err := s.Login("a@b.com", ""); err != nil {
		t.Fatal(err)
	}
	select {
	case evt := <-ch:
		if evt.Kind != bus.KindLoggedIn {
			t.Errorf("kind = %q, want %q", evt.Kind, bus.KindLoggedIn)
		}
	case <-time.After(time.Second):
		t.Fatal("no auth event")
	}
}
