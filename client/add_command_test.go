package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-eventually/go-command/client"
)

// failingRepository fails every operation with the configured error.
type failingRepository struct{ err error }

func (r failingRepository) Get(context.Context, client.ID) (*client.Client, error) { return nil, r.err }
func (r failingRepository) Add(context.Context, *client.Client) error            { return r.err }
func (r failingRepository) Remove(context.Context, client.ID) error              { return r.err }

func TestAddCommand(t *testing.T) {
	ctx := context.Background()
	alice := &client.Client{ID: 1, Name: "Alice"}

	t.Run("clients not present can be added", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		cmd := client.NewAddCommand(repository, alice)

		assert.Equal(t, client.AddCommandName, cmd.Name())
		assert.Same(t, alice, cmd.Client())

		ok, err := cmd.CanExecute(ctx)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, cmd.Execute(ctx))

		got, err := repository.Get(ctx, alice.ID)
		assert.NoError(t, err)
		assert.Equal(t, alice, got)
	})

	t.Run("clients already present cannot be added", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		existing := &client.Client{ID: alice.ID, Name: "Alice Original"}
		require.NoError(t, repository.Add(ctx, existing))

		cmd := client.NewAddCommand(repository, alice)

		ok, err := cmd.CanExecute(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		// Execute is a no-op, and so is the following Undo.
		assert.NoError(t, cmd.Execute(ctx))
		assert.NoError(t, cmd.Undo(ctx))

		got, err := repository.Get(ctx, alice.ID)
		assert.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("a missing client makes every operation a no-op", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		cmd := client.NewAddCommand(repository, nil)

		ok, err := cmd.CanExecute(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, cmd.Execute(ctx))
		assert.NoError(t, cmd.Undo(ctx))
		assert.Zero(t, repository.Len())
	})

	t.Run("execute followed by undo restores the repository", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		cmd := client.NewAddCommand(repository, alice)

		require.NoError(t, cmd.Execute(ctx))
		require.NoError(t, cmd.Undo(ctx))

		_, err := repository.Get(ctx, alice.ID)
		assert.ErrorIs(t, err, client.ErrNotFound)
		assert.Zero(t, repository.Len())
	})

	t.Run("execute after undo adds the client again", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		cmd := client.NewAddCommand(repository, alice)

		require.NoError(t, cmd.Execute(ctx))
		require.NoError(t, cmd.Undo(ctx))
		require.NoError(t, cmd.Execute(ctx))

		got, err := repository.Get(ctx, alice.ID)
		assert.NoError(t, err)
		assert.Equal(t, alice, got)
	})

	t.Run("undo without execute is a no-op", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		require.NoError(t, repository.Add(ctx, alice))

		cmd := client.NewAddCommand(repository, alice)
		require.NoError(t, cmd.Undo(ctx))

		_, err := repository.Get(ctx, alice.ID)
		assert.NoError(t, err)
	})

	t.Run("repository failures are returned", func(t *testing.T) {
		expectedErr := errors.New("storage unavailable")
		cmd := client.NewAddCommand(failingRepository{err: expectedErr}, alice)

		ok, err := cmd.CanExecute(ctx)
		assert.ErrorIs(t, err, expectedErr)
		assert.False(t, ok)

		assert.ErrorIs(t, cmd.Execute(ctx), expectedErr)
	})
}
