package ui

import (
	"slices"

	"github.com/rivo/tview"
)

// Pages tracks the navigation history of the content area as a stack
// over tview.Pages. The top entry is the visible view; Push and Pop
// walk the history, Reset rebases it after login/logout transitions.
type Pages struct {
	*tview.Pages
	stack    []string
	onChange func(stack []string)
}

// NewPages creates an empty page stack.
func NewPages() *Pages {
	return &Pages{Pages: tview.NewPages()}
}

// SetOnChange registers a callback fired after every stack change with
// a copy of the new stack, bottom first.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push makes name the visible page on top of the current one.
func (p *Pages) Push(name string) {
	if top := p.Current(); top != "" {
		p.HidePage(top)
	}
	p.stack = append(p.stack, name)
	p.show(name)
}

// Pop hides the top page and reveals the one beneath it. It returns
// the popped name, or "" on an empty stack.
func (p *Pages) Pop() string {
	if len(p.stack) == 0 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top)
	p.stack = p.stack[:len(p.stack)-1]
	if next := p.Current(); next != "" {
		p.show(next)
	} else {
		p.notify()
	}
	return top
}

// Current returns the visible page name, or "" when the stack is empty.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Stack returns a copy of the history, bottom first.
func (p *Pages) Stack() []string {
	return slices.Clone(p.stack)
}

// Depth returns the history length.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset drops the whole history and shows name as the only page.
func (p *Pages) Reset(name string) {
	for _, n := range p.stack {
		p.HidePage(n)
	}
	p.stack = append(p.stack[:0], name)
	p.show(name)
}

func (p *Pages) show(name string) {
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
