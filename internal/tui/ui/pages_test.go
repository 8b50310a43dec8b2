package ui

import (
	"slices"
	"testing"

	"github.com/rivo/tview"
)

func stackPages(names ...string) *Pages {
	p := NewPages()
	for _, n := range names {
		p.AddPage(n, tview.NewBox(), true, false)
	}
	return p
}

func TestPagesPushPop(t *testing.T) {
	p := stackPages("dashboard", "clients", "detail")

	p.Push("dashboard")
	p.Push("clients")
	p.Push("detail")

	if got := p.Current(); got != "detail" {
		t.Errorf("Current() = %q, want %q", got, "detail")
	}
	if got := p.Stack(); !slices.Equal(got, []string{"dashboard", "clients", "detail"}) {
		t.Errorf("Stack() = %v", got)
	}

	if popped := p.Pop(); popped != "detail" {
		t.Errorf("Pop() = %q, want %q", popped, "detail")
	}
	if got := p.Current(); got != "clients" {
		t.Errorf("Current() after pop = %q, want %q", got, "clients")
	}
	if p.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", p.Depth())
	}
}

func TestPagesPopEmpty(t *testing.T) {
	p := stackPages()
	if popped := p.Pop(); popped != "" {
		t.Errorf("Pop() on empty stack = %q, want empty", popped)
	}
	if got := p.Current(); got != "" {
		t.Errorf("Current() on empty stack = %q, want empty", got)
	}
}

func TestPagesResetRebasesHistory(t *testing.T) {
	p := stackPages("login", "dashboard", "clients")
	p.Push("dashboard")
	p.Push("clients")

	var notified [][]string
	p.SetOnChange(func(stack []string) {
		notified = append(notified, stack)
	})

	p.Reset("login")
	if got := p.Stack(); !slices.Equal(got, []string{"login"}) {
		t.Errorf("Stack() after Reset = %v, want [login]", got)
	}
	if len(notified) != 1 || !slices.Equal(notified[0], []string{"login"}) {
		t.Errorf("onChange notifications = %v", notified)
	}
}
