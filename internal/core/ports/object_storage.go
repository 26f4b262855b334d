package ports

import "context"

// ObjectStorage stores invoice artifacts under slash-separated keys.
type ObjectStorage interface {
	// Put stores body under key and returns a location callers can persist.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)

	// Get returns errs.ObjectNotFoundError for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
