// Package memory holds an in-process preference store used in development
// and tests.
package memory

import (
	"context"
	"sync"

	"mesa-console/internal/core/port"
)

// PreferenceRepository keeps preferences in a map guarded by a RWMutex.
type PreferenceRepository struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{sessions: make(map[string]map[string]string)}
}

func (r *PreferenceRepository) Get(_ context.Context, sessionID, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.sessions[sessionID][key]
	if !ok {
		return "", port.ErrPreferenceNotFound
	}
	return v, nil
}

func (r *PreferenceRepository) Load(_ context.Context, sessionID string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.sessions[sessionID]))
	for k, v := range r.sessions[sessionID] {
		out[k] = v
	}
	return out, nil
}

func (r *PreferenceRepository) Set(_ context.Context, sessionID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		s = make(map[string]string)
		r.sessions[sessionID] = s
	}
	s[key] = value
	return nil
}

func (r *PreferenceRepository) Delete(_ context.Context, sessionID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions[sessionID], key)
	return nil
}
