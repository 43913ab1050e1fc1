package port

import (
	"context"
	"errors"
)

var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceRepository is the persisted key/value storage behind the auth,
// theme and language providers. Values are scoped to a browser session and
// stored as plain strings. It is an outbound port; implementations must be
// safe for concurrent use.
type PreferenceRepository interface {
	// Get returns the value stored under key, or ErrPreferenceNotFound.
	Get(ctx context.Context, sessionID, key string) (string, error)
	// Load returns every key stored for the session. A session with no
	// values yields an empty map.
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	// Set inserts or replaces the value under key.
	Set(ctx context.Context, sessionID, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, sessionID, key string) error
}
