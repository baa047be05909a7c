// Package credstore provides the secure credential storage capability used
// by the credential lifecycle manager: an opaque key/value store for tokens,
// backed by an owner-only SQLite file. No other component touches this file.
package credstore

import "context"

// Store holds credential material between runs. Get returns an empty string
// (and nil error) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error

	// PutAll stores several values in a single transaction, so a crash
	// cannot leave a partially written credential set behind.
	PutAll(ctx context.Context, values map[string]string) error

	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Well-known credential keys.
const (
	KeyIDToken     = "id_token"
	KeyAccessToken = "access_token"
)
