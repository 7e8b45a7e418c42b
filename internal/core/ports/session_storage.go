package ports

import "context"

// SessionStorage is the key-value store the session writes through to. Values
// are strings; absent keys read as domain.ErrKeyNotFound. Deleting an absent
// key is not an error.
type SessionStorage interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
