package session

import "context"

// CurrentUserKey is the key under which the logged-in user's id is stored.
const CurrentUserKey = "current_user_id"

// Repository is the small key/value store that carries session state
// (currently just the logged-in user) across CLI runs.
type Repository interface {
	// Get returns the value for key, or "" if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the value for key, replacing any existing one.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
