package client

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by a Repository when no Client
	// with the requested ID exists.
	ErrNotFound = errors.New("client: not found")

	// ErrAlreadyExists is returned by a Repository when adding a Client
	// whose ID is already in use.
	ErrAlreadyExists = errors.New("client: already exists")
)

// Getter is a Repository subset used to look up Clients by their ID.
type Getter interface {
	// Get returns ErrNotFound if no Client has the specified ID.
	Get(ctx context.Context, id ID) (*Client, error)
}

// Adder is a Repository subset used to store new Clients.
type Adder interface {
	// Add returns ErrAlreadyExists if a Client with the same ID is
	// already stored. Existing Clients are never overwritten.
	Add(ctx context.Context, c *Client) error
}

// Remover is a Repository subset used to delete Clients.
type Remover interface {
	// Remove is a no-op if no Client has the specified ID.
	Remove(ctx context.Context, id ID) error
}

// Repository is the storage abstraction for Clients, keyed by ID.
type Repository interface {
	Getter
	Adder
	Remover
}

// Exists reports whether a Client with the specified ID is stored
// in the Getter.
func Exists(ctx context.Context, getter Getter, id ID) (bool, error) {
	_, err := getter.Get(ctx, id)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
