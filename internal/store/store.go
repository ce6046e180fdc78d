// Package store persists opaque save blobs under string keys.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Store holds save snapshots. Load returns nil data and a nil error when no
// blob exists under the key.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Scheme returns the lower-cased scheme of a storage DSN.
func Scheme(dsn string) (string, error) {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok || scheme == "" {
		return "", fmt.Errorf("storage dsn %q has no scheme", dsn)
	}
	return strings.ToLower(scheme), nil
}
