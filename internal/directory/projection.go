package directory

import (
	"slices"
	"strings"
)

// Projection is the filtered, sorted, paginated view of the collection.
// It is computed on read and never stored.
type Projection struct {
	Clients      []Client // the current page
	TotalMatched int      // matches before pagination
	TotalPages   int
	Page         int
	ItemsPerPage int
}

// Projection computes the derived view for the current query state.
func (s *Store) Projection() Projection {
	s.mu.RLock()
	q := s.query
	matched := filterClients(s.clients, q.SearchTerm, q.SelectedTags)
	s.mu.RUnlock()

	sortClients(matched, q.SortBy, q.SortOrder)

	total := len(matched)
	totalPages := (total + q.ItemsPerPage - 1) / q.ItemsPerPage

	start := (q.CurrentPage - 1) * q.ItemsPerPage
	end := start + q.ItemsPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]Client, 0, end-start)
	for _, c := range matched[start:end] {
		page = append(page, c.Clone())
	}

	return Projection{
		Clients:      page,
		TotalMatched: total,
		TotalPages:   totalPages,
		Page:         q.CurrentPage,
		ItemsPerPage: q.ItemsPerPage,
	}
}

// Matched returns all clients passing the current filters, sorted but
// not paginated.
func (s *Store) Matched() []Client {
	s.mu.RLock()
	q := s.query
	matched := filterClients(s.clients, q.SearchTerm, q.SelectedTags)
	s.mu.RUnlock()

	sortClients(matched, q.SortBy, q.SortOrder)
	for i := range matched {
		matched[i] = matched[i].Clone()
	}
	return matched
}

// AllTags returns every tag in use, deduplicated, in first-seen order.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tags []string
	seen := make(map[string]struct{})
	for i := range s.clients {
		for _, t := range s.clients[i].Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// filterClients applies the search term and tag filters, preserving
// insertion order. Search matches case-insensitively on first name,
// last name and email, and literally on phone. An empty tag selection
// matches everything; otherwise the client's tags must intersect it.
func filterClients(clients []Client, term string, selectedTags []string) []Client {
	lowered := strings.ToLower(term)
	var out []Client
	for i := range clients {
		c := &clients[i]
		if !matchesSearch(c, term, lowered) {
			continue
		}
		if !matchesTags(c, selectedTags) {
			continue
		}
		out = append(out, *c)
	}
	return out
}

func matchesSearch(c *Client, term, lowered string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.FirstName), lowered) ||
		strings.Contains(strings.ToLower(c.LastName), lowered) ||
		strings.Contains(strings.ToLower(c.Email), lowered) ||
		strings.Contains(c.Phone, term)
}

func matchesTags(c *Client, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range selected {
		if c.HasTag(t) {
			return true
		}
	}
	return false
}

// sortClients orders in place with a stable sort, so records comparing
// equal on the projected key keep their insertion order.
func sortClients(clients []Client, by SortField, order SortOrder) {
	slices.SortStableFunc(clients, func(a, b Client) int {
		var cmp int
		switch by {
		case SortByName:
			cmp = strings.Compare(a.FullName(), b.FullName())
		case SortByEmail:
			cmp = strings.Compare(a.Email, b.Email)
		case SortByCreated:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if order == SortDesc {
			cmp = -cmp
		}
		return cmp
	})
}
