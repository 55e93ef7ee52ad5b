package cli

import (
	"sync"

	"github.com/dmitrijs2005/boardkeeper/internal/client/routes"
)

// navigator queues the redirect requested by the request pipeline. The
// REPL follows it once the running command has returned. Later redirects
// are dropped until the pending one is taken.
type navigator struct {
	mu      sync.Mutex
	pending *routes.Redirect
}

func newNavigator() *navigator {
	return &navigator{}
}

func (n *navigator) Navigate(r routes.Redirect) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == nil {
		n.pending = &r
	}
}

func (n *navigator) take() (routes.Redirect, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == nil {
		return routes.Redirect{}, false
	}
	r := *n.pending
	n.pending = nil
	return r, true
}
