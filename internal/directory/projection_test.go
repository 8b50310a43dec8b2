package directory

import (
	"slices"
	"strings"
	"testing"
)

func TestSearchFilterProperty(t *testing.T) {
	s, _ := testStore(t)

	for _, term := range []string{"marie", "MARIE", "example.com", "33", "rousseau", "zzz-no-match"} {
		if err := s.SetSearchTerm(term); err != nil {
			t.Fatal(err)
		}
		for _, c := range s.Matched() {
			lowered := strings.ToLower(term)
			ok := strings.Contains(strings.ToLower(c.FirstName), lowered) ||
				strings.Contains(strings.ToLower(c.LastName), lowered) ||
				strings.Contains(strings.ToLower(c.Email), lowered) ||
				strings.Contains(c.Phone, term)
			if !ok {
				t.Errorf("term %q matched client %s (%s %s)", term, c.ID, c.FirstName, c.LastName)
			}
		}
	}
}

func TestPhoneSearchIsLiteral(t *testing.T) {
	s, _ := testStore(t)

	// "+261 33" appears in two seed phones.
	if err := s.SetSearchTerm("+261 33"); err != nil {
		t.Fatal(err)
	}
	matched := s.Matched()
	if len(matched) != 2 {
		t.Fatalf("matched %d clients, want 2", len(matched))
	}
	for _, c := range matched {
		if !strings.Contains(c.Phone, "+261 33") {
			t.Errorf("client %s phone %q does not contain the term", c.ID, c.Phone)
		}
	}
}

func TestTagFilterScenario(t *testing.T) {
	s, _ := testStore(t)

	if err := s.SetSelectedTags([]string{"VIP"}); err != nil {
		t.Fatal(err)
	}
	matched := s.Matched()

	var got []string
	for _, c := range matched {
		got = append(got, c.ID)
		if !c.HasTag("VIP") {
			t.Errorf("client %s in VIP filter result without VIP tag", c.ID)
		}
	}
	slices.Sort(got)
	if !slices.Equal(got, []string{"1", "3"}) {
		t.Errorf("VIP filter matched %v, want [1 3]", got)
	}
}

func TestTagFilterIntersects(t *testing.T) {
	s, _ := testStore(t)

	// Any overlap is enough: a client needs one of the selected tags.
	if err := s.SetSelectedTags([]string{"VIP", "Design"}); err != nil {
		t.Fatal(err)
	}
	if n := len(s.Matched()); n != 3 {
		t.Errorf("matched %d, want 3 (VIP: 1,3 plus Design: 5)", n)
	}
}

func TestSortByCreatedReverses(t *testing.T) {
	s, _ := testStore(t)

	if err := s.SetSortBy(SortByCreated); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSortOrder(SortDesc); err != nil {
		t.Fatal(err)
	}
	desc := s.Matched()

	if err := s.SetSortOrder(SortAsc); err != nil {
		t.Fatal(err)
	}
	asc := s.Matched()

	if len(desc) != len(asc) {
		t.Fatalf("lengths differ: %d vs %d", len(desc), len(asc))
	}
	// No ties in the seed data, so the orders are exact mirrors.
	for i := range desc {
		if desc[i].ID != asc[len(asc)-1-i].ID {
			t.Errorf("index %d: desc %s, asc mirror %s", i, desc[i].ID, asc[len(asc)-1-i].ID)
		}
	}
}

func TestSortByNameUsesFullName(t *testing.T) {
	s, _ := testStore(t)

	if err := s.SetSortBy(SortByName); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSortOrder(SortAsc); err != nil {
		t.Fatal(err)
	}
	matched := s.Matched()
	for i := 1; i < len(matched); i++ {
		if matched[i-1].FullName() > matched[i].FullName() {
			t.Errorf("names out of order: %q before %q", matched[i-1].FullName(), matched[i].FullName())
		}
	}
}

func TestStableSortKeepsInsertionOrderOnTies(t *testing.T) {
	s, _ := testStore(t)

	// Two clients with identical names; insertion order must survive.
	first, err := s.AddClient(ClientInput{FirstName: "Alex", LastName: "Tie", Email: "a@tie.test"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.AddClient(ClientInput{FirstName: "Alex", LastName: "Tie", Email: "b@tie.test"})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetSortBy(SortByName); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSortOrder(SortAsc); err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, c := range s.Matched() {
		if c.FullName() == "Alex Tie" {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) != 2 || ids[0] != first.ID || ids[1] != second.ID {
		t.Errorf("tie order = %v, want [%s %s]", ids, first.ID, second.ID)
	}
}

func TestPagination(t *testing.T) {
	s, _ := testStore(t)

	if err := s.SetItemsPerPage(2); err != nil {
		t.Fatal(err)
	}
	proj := s.Projection()
	if proj.TotalMatched != 5 || proj.TotalPages != 3 {
		t.Fatalf("TotalMatched = %d TotalPages = %d, want 5 and 3", proj.TotalMatched, proj.TotalPages)
	}
	if len(proj.Clients) != 2 {
		t.Errorf("page 1 size = %d, want 2", len(proj.Clients))
	}

	if err := s.SetCurrentPage(3); err != nil {
		t.Fatal(err)
	}
	proj = s.Projection()
	if len(proj.Clients) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(proj.Clients))
	}

	// A page beyond the result set is empty, not an error.
	if err := s.SetCurrentPage(9); err != nil {
		t.Fatal(err)
	}
	proj = s.Projection()
	if len(proj.Clients) != 0 {
		t.Errorf("page 9 size = %d, want 0", len(proj.Clients))
	}
}

func TestProjectionEmptyCollection(t *testing.T) {
	s, _ := testStore(t)
	for _, c := range s.All() {
		if err := s.DeleteClient(c.ID); err != nil {
			t.Fatal(err)
		}
	}
	proj := s.Projection()
	if proj.TotalMatched != 0 || proj.TotalPages != 0 || len(proj.Clients) != 0 {
		t.Errorf("empty projection = %+v", proj)
	}
}

func TestAllTagsFirstSeenOrder(t *testing.T) {
	s, _ := testStore(t)
	got := s.AllTags()
	want := []string{"VIP", "Marketing", "Tech", "Innovation", "Startup", "Corporate", "Design", "Créatif"}
	if !slices.Equal(got, want) {
		t.Errorf("AllTags() = %v, want %v", got, want)
	}
}

func TestStats(t *testing.T) {
	s, _ := testStore(t)
	st := s.Stats()

	if st.TotalClients != 5 {
		t.Errorf("TotalClients = %d, want 5", st.TotalClients)
	}
	// Test clock is 2025-01-30; all seed clients were created that month.
	if st.NewThisMonth != 5 {
		t.Errorf("NewThisMonth = %d, want 5", st.NewThisMonth)
	}
	if st.TotalActivities != 5 {
		t.Errorf("TotalActivities = %d, want 5", st.TotalActivities)
	}
	if len(st.RecentClients) != 5 {
		t.Fatalf("RecentClients = %d, want 5", len(st.RecentClients))
	}
	if st.RecentClients[0].ID != "1" {
		t.Errorf("most recent = %s, want 1 (2025-01-15)", st.RecentClients[0].ID)
	}

	for _, tc := range st.TagCounts {
		if tc.Tag == "VIP" {
			if tc.Count != 2 || tc.Percent != 40 {
				t.Errorf("VIP count/percent = %d/%d, want 2/40", tc.Count, tc.Percent)
			}
		}
	}
}
