package confirm

import (
	"context"
	"sync"
)

type key struct {
	resource string
	id       string
}

// Registry holds the deletes in flight per entity so that concurrent
// submissions for the same entity never issue a second request. Dialog
// text and failures belong to the request that rendered them; only the
// in-flight flag is shared, and an entry lives only while its delete runs.
type Registry struct {
	mu    sync.Mutex
	flows map[key]*DeleteFlow
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{flows: make(map[key]*DeleteFlow)}
}

// Lookup returns the delete in flight for (resource, id).
func (r *Registry) Lookup(resource, id string) (*DeleteFlow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[key{resource: resource, id: id}]
	return f, ok
}

// State reports Pending while a delete for (resource, id) runs and Idle
// otherwise.
func (r *Registry) State(resource, id string) State {
	if _, ok := r.Lookup(resource, id); ok {
		return Pending
	}
	return Idle
}

// Confirm runs del for (resource, id) unless a delete for the entity is
// already in flight, in which case the running flow and ErrPending are
// returned. The entry is dropped as soon as the attempt finishes, so the
// returned flow is Closed on success and Failed otherwise.
func (r *Registry) Confirm(ctx context.Context, resource, id string, del DeleteFunc, onSuccess func()) (*DeleteFlow, error) {
	k := key{resource: resource, id: id}
	r.mu.Lock()
	if f, ok := r.flows[k]; ok {
		r.mu.Unlock()
		return f, ErrPending
	}
	f := NewDeleteFlow(del, onSuccess)
	r.flows[k] = f
	r.mu.Unlock()

	defer r.forget(k, f)
	return f, f.Confirm(ctx)
}

// Cancel reports whether the dialog for (resource, id) may close, which is
// the case unless a delete is in flight.
func (r *Registry) Cancel(resource, id string) bool {
	_, busy := r.Lookup(resource, id)
	return !busy
}

// Len returns the number of deletes in flight.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flows)
}

func (r *Registry) forget(k key, f *DeleteFlow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flows[k] == f {
		delete(r.flows, k)
	}
}
