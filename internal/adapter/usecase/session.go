// Package usecase holds the per-session providers behind the console: auth,
// theme and language state read from the preference store, plus the delete
// confirmation service. Each provider is the only writer of its preference
// key and persists synchronously on change.
package usecase

import (
	"context"
	"log/slog"

	"mesa-console/internal/core/port"
)

// Session is the persisted state of one browser session, read once per
// request.
type Session struct {
	ID     string
	Values map[string]string
}

// Get returns the value under key, or "".
func (s *Session) Get(key string) string {
	if s == nil {
		return ""
	}
	return s.Values[key]
}

func (s *Session) set(key, value string) {
	if s.Values == nil {
		s.Values = map[string]string{}
	}
	s.Values[key] = value
}

func (s *Session) unset(key string) {
	delete(s.Values, key)
}

// Sessions loads session snapshots from the preference store.
type Sessions struct {
	prefs  port.PreferenceRepository
	logger *slog.Logger
}

func NewSessions(prefs port.PreferenceRepository, logger *slog.Logger) *Sessions {
	return &Sessions{prefs: prefs, logger: logger}
}

// Load reads every stored value for id. A store failure is logged and
// yields an empty session so pages still render with defaults.
func (s *Sessions) Load(ctx context.Context, id string) *Session {
	values, err := s.prefs.Load(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "load session preferences", slog.String("session", id), slog.Any("error", err))
		values = map[string]string{}
	}
	return &Session{ID: id, Values: values}
}
