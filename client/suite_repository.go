package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suiteIDs atomic.Int64

// nextSuiteID returns IDs unlikely to clash with data already stored
// in a shared database used by multiple suite runs.
func nextSuiteID() ID {
	return ID(time.Now().UnixNano()/1000 + suiteIDs.Add(1))
}

// RepositorySuite returns an executable testing suite running on the
// Repository value provided in input.
//
// Every Repository implementation is expected to pass this suite.
func RepositorySuite(repository Repository) func(t *testing.T) { //nolint:funlen // It's a test suite.
	return func(t *testing.T) {
		ctx := context.Background()

		t.Run("get returns ErrNotFound for unknown clients", func(t *testing.T) {
			c, err := repository.Get(ctx, nextSuiteID())
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, c)
		})

		t.Run("added clients can be retrieved", func(t *testing.T) {
			expected := &Client{
				ID:    nextSuiteID(),
				Name:  "Alice",
				Email: "alice@example.com",
				Attributes: map[string]string{
					"tier": "gold",
				},
			}

			require.NoError(t, repository.Add(ctx, expected))

			got, err := repository.Get(ctx, expected.ID)
			assert.NoError(t, err)
			assert.Equal(t, expected, got)
		})

		t.Run("adding a duplicate id fails without overwriting", func(t *testing.T) {
			id := nextSuiteID()
			original := &Client{ID: id, Name: "Bob"}

			require.NoError(t, repository.Add(ctx, original))

			err := repository.Add(ctx, &Client{ID: id, Name: "Impostor"})
			assert.ErrorIs(t, err, ErrAlreadyExists)

			got, err := repository.Get(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, original, got)
		})

		t.Run("removed clients are not found anymore", func(t *testing.T) {
			c := &Client{ID: nextSuiteID(), Name: "Carol"}

			require.NoError(t, repository.Add(ctx, c))
			require.NoError(t, repository.Remove(ctx, c.ID))

			_, err := repository.Get(ctx, c.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			// A removed identifier can be used again.
			assert.NoError(t, repository.Add(ctx, c))
		})

		t.Run("removing unknown clients is a no-op", func(t *testing.T) {
			assert.NoError(t, repository.Remove(ctx, nextSuiteID()))
		})

		t.Run("add and undo restore the previous state", func(t *testing.T) {
			c := &Client{ID: nextSuiteID(), Name: "Dave"}
			cmd := NewAddCommand(repository, c)

			ok, err := cmd.CanExecute(ctx)
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, cmd.Execute(ctx))

			got, err := repository.Get(ctx, c.ID)
			assert.NoError(t, err)
			assert.Equal(t, c, got)

			require.NoError(t, cmd.Undo(ctx))

			_, err = repository.Get(ctx, c.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
