package views

import (
	"testing"
	"time"

	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/tui/ui"
)

func listProjection(clients ...directory.Client) directory.Projection {
	return directory.Projection{
		Clients:      clients,
		Page:         1,
		TotalPages:   1,
		TotalMatched: len(clients),
	}
}

func listClient(id, first, last string) directory.Client {
	return directory.Client{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     first + "@example.com",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestClientListKeepsSelectionAcrossRefresh(t *testing.T) {
	cl := NewClientList(ui.DarkTheme())
	q := directory.DefaultQuery(10)
	p := listProjection(
		listClient("1", "Marie", "Dubois"),
		listClient("2", "Pierre", "Martin"),
		listClient("3", "Sophie", "Leroy"),
	)

	cl.Update(p, q)
	cl.Table().Select(2, 0)
	if got := cl.SelectedClient(); got != "2" {
		t.Fatalf("SelectedClient() = %q, want %q", got, "2")
	}

	cl.Update(p, q)
	if got := cl.SelectedClient(); got != "2" {
		t.Errorf("SelectedClient() after refresh = %q, want %q", got, "2")
	}
}

func TestClientListSelectionFallsBackWhenClientLeavesPage(t *testing.T) {
	cl := NewClientList(ui.DarkTheme())
	q := directory.DefaultQuery(10)

	cl.Update(listProjection(
		listClient("1", "Marie", "Dubois"),
		listClient("2", "Pierre", "Martin"),
	), q)
	cl.Table().Select(2, 0)

	cl.Update(listProjection(listClient("1", "Marie", "Dubois")), q)
	if got := cl.SelectedClient(); got != "1" {
		t.Errorf("SelectedClient() = %q, want fallback to %q", got, "1")
	}
}
