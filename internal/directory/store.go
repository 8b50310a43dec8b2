package directory

import (
	"fmt"
	"sync"
	"time"

	"github.com/gaillardy/crm/internal/bus"
	"github.com/google/uuid"
)

// Store owns the in-memory client collection plus the UI query state.
// Every mutation is mirrored synchronously through the Persister and
// announced on the bus. Reads return deep copies.
type Store struct {
	mu      sync.RWMutex
	clients []Client
	query   Query

	persister Persister
	bus       *bus.Bus

	now   func() time.Time
	newID func() string
}

// New creates a directory store. defaultQuery is used until a persisted
// query state is rehydrated.
func New(p Persister, b *bus.Bus, defaultQuery Query) *Store {
	return &Store{
		query:     defaultQuery,
		persister: p,
		bus:       b,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Rehydrate loads the persisted collection and query state. On the very
// first run it seeds the demo clients before loading.
func (s *Store) Rehydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded, err := s.persister.Seeded()
	if err != nil {
		return fmt.Errorf("check seed marker: %w", err)
	}
	if !seeded {
		if err := s.seed(); err != nil {
			return fmt.Errorf("seed directory: %w", err)
		}
	}

	clients, err := s.persister.LoadClients()
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}
	s.clients = clients

	q, err := s.persister.LoadQuery()
	if err != nil {
		return fmt.Errorf("load query state: %w", err)
	}
	if q != nil {
		if q.CurrentPage < 1 {
			q.CurrentPage = 1
		}
		if q.ItemsPerPage <= 0 {
			q.ItemsPerPage = s.query.ItemsPerPage
		}
		s.query = *q
	}
	return nil
}

func (s *Store) seed() error {
	for _, c := range SeedClients() {
		if err := s.persister.UpsertClient(&c); err != nil {
			return err
		}
		for _, a := range c.Activities {
			if err := s.persister.InsertActivity(c.ID, &a); err != nil {
				return err
			}
		}
	}
	if err := s.persister.MarkSeeded(); err != nil {
		return err
	}
	if s.bus != nil {
		s.bus.PublishKind(bus.KindDirectorySeeded, len(SeedClients()))
	}
	return nil
}

// AddClient appends a new record with a generated id, the current time
// as CreatedAt and no activities.
func (s *Store) AddClient(in ClientInput) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Client{
		ID:         s.newID(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Company:    in.Company,
		Position:   in.Position,
		Notes:      in.Notes,
		Tags:       append([]string(nil), in.Tags...),
		CreatedAt:  s.now(),
		Activities: []Activity{},
	}
	if err := s.persister.UpsertClient(&c); err != nil {
		return Client{}, fmt.Errorf("persist client: %w", err)
	}
	s.clients = append(s.clients, c)
	if s.bus != nil {
		s.bus.PublishKind(bus.KindClientAdded, c.ID)
	}
	return c.Clone(), nil
}

// UpdateClient merges the supplied fields into an existing record.
// ID, CreatedAt and Activities are not updatable.
func (s *Store) UpdateClient(id string, upd ClientUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	merged := s.clients[i].Clone()
	if upd.FirstName != nil {
		merged.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		merged.LastName = *upd.LastName
	}
	if upd.Email != nil {
		merged.Email = *upd.Email
	}
	if upd.Phone != nil {
		merged.Phone = *upd.Phone
	}
	if upd.Company != nil {
		merged.Company = *upd.Company
	}
	if upd.Position != nil {
		merged.Position = *upd.Position
	}
	if upd.Notes != nil {
		merged.Notes = *upd.Notes
	}
	if upd.Tags != nil {
		merged.Tags = append([]string(nil), (*upd.Tags)...)
	}

	if err := s.persister.UpsertClient(&merged); err != nil {
		return fmt.Errorf("persist client: %w", err)
	}
	s.clients[i] = merged
	if s.bus != nil {
		s.bus.PublishKind(bus.KindClientUpdated, id)
	}
	return nil
}

// DeleteClient removes the record and its activities.
func (s *Store) DeleteClient(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if err := s.persister.DeleteClient(id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	s.clients = append(s.clients[:i], s.clients[i+1:]...)
	if s.bus != nil {
		s.bus.PublishKind(bus.KindClientDeleted, id)
	}
	return nil
}

// AddActivity appends an activity with a generated id and the current
// time to the named client. The type must be one of the known kinds.
func (s *Store) AddActivity(clientID string, in ActivityInput) (Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !in.Type.Valid() {
		return Activity{}, ErrInvalidActivityType
	}
	i := s.indexOf(clientID)
	if i < 0 {
		return Activity{}, ErrNotFound
	}

	a := Activity{
		ID:          s.newID(),
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Date:        s.now(),
	}
	if err := s.persister.InsertActivity(clientID, &a); err != nil {
		return Activity{}, fmt.Errorf("persist activity: %w", err)
	}
	s.clients[i].Activities = append(s.clients[i].Activities, a)
	if s.bus != nil {
		s.bus.PublishKind(bus.KindActivityAdded, clientID)
	}
	return a, nil
}

// SetSearchTerm updates the search filter and resets pagination to the
// first page.
func (s *Store) SetSearchTerm(term string) error {
	return s.setQuery(func(q *Query) {
		q.SearchTerm = term
		q.CurrentPage = 1
	})
}

// SetSelectedTags replaces the tag filter and resets pagination to the
// first page.
func (s *Store) SetSelectedTags(tags []string) error {
	return s.setQuery(func(q *Query) {
		q.SelectedTags = append([]string(nil), tags...)
		q.CurrentPage = 1
	})
}

// SetSortBy updates the sort key.
func (s *Store) SetSortBy(field SortField) error {
	return s.setQuery(func(q *Query) { q.SortBy = field })
}

// SetSortOrder updates the sort direction.
func (s *Store) SetSortOrder(order SortOrder) error {
	return s.setQuery(func(q *Query) { q.SortOrder = order })
}

// SetCurrentPage moves the pagination window.
func (s *Store) SetCurrentPage(page int) error {
	if page < 1 {
		page = 1
	}
	return s.setQuery(func(q *Query) { q.CurrentPage = page })
}

// SetItemsPerPage resizes the pagination window.
func (s *Store) SetItemsPerPage(n int) error {
	if n < 1 {
		n = 1
	}
	return s.setQuery(func(q *Query) {
		q.ItemsPerPage = n
		q.CurrentPage = 1
	})
}

func (s *Store) setQuery(mutate func(*Query)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.query
	next.SelectedTags = append([]string(nil), s.query.SelectedTags...)
	mutate(&next)
	if err := s.persister.SaveQuery(&next); err != nil {
		return fmt.Errorf("persist query state: %w", err)
	}
	s.query = next
	if s.bus != nil {
		s.bus.PublishKind(bus.KindQueryChanged, next)
	}
	return nil
}

// Get returns a copy of the client with the given id.
func (s *Store) Get(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.clients[i].Clone(), true
	}
	return Client{}, false
}

// All returns a copy of the whole collection in insertion order.
func (s *Store) All() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Client, len(s.clients))
	for i := range s.clients {
		out[i] = s.clients[i].Clone()
	}
	return out
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// CurrentQuery returns a copy of the query state.
func (s *Store) CurrentQuery() Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := s.query
	q.SelectedTags = append([]string(nil), s.query.SelectedTags...)
	return q
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}
	return -1
}
