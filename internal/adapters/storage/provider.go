package storage

import "context"

// Provider is the string-keyed, string-valued persistence abstraction backing
// the participant store. Reads and writes happen at whole-value granularity;
// there is no partial update and no locking across processes. Two processes
// sharing one provider can race and overwrite each other's writes — an
// accepted limitation of the single-writer model.
type Provider interface {
	// Get returns the value under key. The second return is false when the
	// key has never been written.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
