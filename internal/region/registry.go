package region

import "sync/atomic"

// Registry publishes the current pack Snapshot. Reads are lock-free;
// Replace swaps the whole snapshot so readers never see a partial table.
type Registry struct {
	current atomic.Pointer[Snapshot]
}

// NewRegistry returns a Registry publishing snap. A nil snap publishes the
// built-in defaults.
func NewRegistry(snap *Snapshot) *Registry {
	if snap == nil {
		snap = DefaultSnapshot()
	}
	r := &Registry{}
	r.current.Store(snap)
	return r
}

// Default returns a Registry publishing the built-in pack set.
func Default() *Registry {
	return NewRegistry(DefaultSnapshot())
}

// Current returns the published snapshot. Never nil.
func (r *Registry) Current() *Snapshot {
	return r.current.Load()
}

// Replace atomically publishes a new snapshot. A nil snap is ignored.
func (r *Registry) Replace(snap *Snapshot) {
	if snap == nil {
		return
	}
	r.current.Store(snap)
}
