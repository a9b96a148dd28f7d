package citecheck

import "sync"

// StageHook is called after a stage has written its output
type StageHook func(summary Summary)

// hooks manages stage callbacks
type hooks struct {
	mu      sync.RWMutex
	onStage []StageHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnStage registers a callback for completed stages
func (h *hooks) OnStage(fn StageHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStage = append(h.onStage, fn)
}

func (h *hooks) triggerStage(summary Summary) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onStage {
		fn(summary)
	}
}
