package mariner

import (
	"sync"

	"github.com/harborline/mariner/pkg/conditions"
)

// ConditionsUpdatedHook is called when a port's conditions snapshot changes.
type ConditionsUpdatedHook func(snapshot conditions.Snapshot)

// hooks manages event callbacks.
type hooks struct {
	mu                  sync.RWMutex
	onConditionsUpdated []ConditionsUpdatedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnConditionsUpdated registers a callback for applied condition snapshots.
func (h *hooks) OnConditionsUpdated(fn ConditionsUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConditionsUpdated = append(h.onConditionsUpdated, fn)
}

func (h *hooks) triggerConditionsUpdated(snapshot conditions.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onConditionsUpdated {
		fn(snapshot)
	}
}
