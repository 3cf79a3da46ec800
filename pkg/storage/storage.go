package storage

import (
	"context"
	"errors"
)

// ErrExists is returned when a file with the same name was already stored
var ErrExists = errors.New("file already exists")

// Store persists uploaded files under a caller-chosen name
type Store interface {
	// Save writes data and returns where it ended up (a path or URL)
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
	// Backend names the store in logs and metrics
	Backend() string
}
