package client

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// Interface implementation assertion.
var _ Repository = new(InMemoryRepository)

// InMemoryRepository is a thread-safe, in-memory Repository implementation.
//
// Clients are copied on the way in and on the way out, so changes made by
// callers to their own values do not leak into the stored state.
type InMemoryRepository struct {
	mx      sync.RWMutex
	clients map[ID]*Client
}

// NewInMemoryRepository creates a new, empty client.InMemoryRepository instance.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		mx:      sync.RWMutex{},
		clients: make(map[ID]*Client),
	}
}

func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("client.InMemoryRepository: context error, %w", err)
	}

	return nil
}

// Get implements the client.Getter interface.
func (r *InMemoryRepository) Get(ctx context.Context, id ID) (*Client, error) {
	if err := contextErr(ctx); err != nil {
		return nil, err
	}

	r.mx.RLock()
	defer r.mx.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}

	return c.Clone(), nil
}

// Add implements the client.Adder interface.
func (r *InMemoryRepository) Add(ctx context.Context, c *Client) error {
	if err := contextErr(ctx); err != nil {
		return err
	}

	r.mx.Lock()
	defer r.mx.Unlock()

	if _, ok := r.clients[c.ID]; ok {
		return fmt.Errorf("client.InMemoryRepository: failed to add client %s, %w", c.ID, ErrAlreadyExists)
	}

	r.clients[c.ID] = c.Clone()

	return nil
}

// Remove implements the client.Remover interface.
func (r *InMemoryRepository) Remove(ctx context.Context, id ID) error {
	if err := contextErr(ctx); err != nil {
		return err
	}

	r.mx.Lock()
	defer r.mx.Unlock()

	delete(r.clients, id)

	return nil
}

// Len returns the number of Clients currently stored.
func (r *InMemoryRepository) Len() int {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return len(r.clients)
}

// Clients returns a copy of all the stored Clients, sorted by ID.
func (r *InMemoryRepository) Clients() []*Client {
	r.mx.RLock()
	defer r.mx.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c.Clone())
	}

	slices.SortFunc(clients, func(a, b *Client) int { return cmp.Compare(a.ID, b.ID) })

	return clients
}
