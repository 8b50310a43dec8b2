package directory

import (
	"math"
	"slices"
)

// TagCount is one row of the tag distribution.
type TagCount struct {
	Tag     string
	Count   int
	Percent int
}

// Stats is the dashboard summary derived from the whole collection,
// ignoring the query state.
type Stats struct {
	TotalClients    int
	NewThisMonth    int
	TotalActivities int
	RecentClients   []Client // up to 5, newest first
	TagCounts       []TagCount
}

// Stats computes the dashboard summary.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	st := Stats{TotalClients: len(s.clients)}

	recent := make([]Client, 0, len(s.clients))
	for i := range s.clients {
		c := &s.clients[i]
		st.TotalActivities += len(c.Activities)
		if c.CreatedAt.Month() == now.Month() && c.CreatedAt.Year() == now.Year() {
			st.NewThisMonth++
		}
		recent = append(recent, c.Clone())
	}

	slices.SortStableFunc(recent, func(a, b Client) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	st.RecentClients = recent

	// Tag distribution in first-seen order. A tag counts each client
	// once, even if the client carries it twice.
	seen := make(map[string]struct{})
	var order []string
	for i := range s.clients {
		for _, t := range s.clients[i].Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				order = append(order, t)
			}
		}
	}
	for _, tag := range order {
		count := 0
		for i := range s.clients {
			if s.clients[i].HasTag(tag) {
				count++
			}
		}
		pct := 0
		if st.TotalClients > 0 {
			pct = int(math.Round(float64(count) / float64(st.TotalClients) * 100))
		}
		st.TagCounts = append(st.TagCounts, TagCount{Tag: tag, Count: count, Percent: pct})
	}
	return st
}
