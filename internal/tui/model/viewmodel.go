package model

import (
	"sync"

	"github.com/gaillardy/crm/internal/auth"
	"github.com/gaillardy/crm/internal/directory"
)

// ViewModel caches snapshots from the stores and signals UI refreshes.
// Views read the cached snapshots during draw; Reload recomputes them
// after a mutation or query change.
type ViewModel struct {
	mu sync.RWMutex

	directory *directory.Store
	sessions  *auth.Store

	projection directory.Projection
	stats      directory.Stats
	tags       []string
	identity   auth.Identity
	loggedIn   bool

	refreshCh chan struct{}
}

// NewViewModel creates a view model over the two stores.
func NewViewModel(dir *directory.Store, sessions *auth.Store) *ViewModel {
	vm := &ViewModel{
		directory: dir,
		sessions:  sessions,
		refreshCh: make(chan struct{}, 1),
	}
	vm.Reload()
	return vm
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

// Reload recomputes all cached snapshots and signals a refresh.
func (vm *ViewModel) Reload() {
	projection := vm.directory.Projection()
	stats := vm.directory.Stats()
	tags := vm.directory.AllTags()
	identity, loggedIn := vm.sessions.Current()

	vm.mu.Lock()
	vm.projection = projection
	vm.stats = stats
	vm.tags = tags
	vm.identity = identity
	vm.loggedIn = loggedIn
	vm.mu.Unlock()
	vm.signalRefresh()
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// Directory returns the underlying directory store for mutations.
func (vm *ViewModel) Directory() *directory.Store {
	return vm.directory
}

// Sessions returns the underlying session store.
func (vm *ViewModel) Sessions() *auth.Store {
	return vm.sessions
}

// Projection returns the cached page of the client list.
func (vm *ViewModel) Projection() directory.Projection {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.projection
}

// Stats returns the cached dashboard statistics.
func (vm *ViewModel) Stats() directory.Stats {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.stats
}

// Tags returns the cached tag list in first-seen order.
func (vm *ViewModel) Tags() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.tags
}

// Identity returns the cached session identity and whether it is active.
func (vm *ViewModel) Identity() (auth.Identity, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.identity, vm.loggedIn
}
