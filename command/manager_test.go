package command_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/get-eventually/go-command/client"
	"github.com/get-eventually/go-command/command"
	"github.com/get-eventually/go-command/logger"
)

func newManager(t *testing.T, opts ...command.ManagerOption) *command.Manager {
	return command.NewManager(append([]command.ManagerOption{command.WithLogger(logger.NewTest(t))}, opts...)...)
}

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("add a client and undo it", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t)

		alice := &client.Client{ID: 1, Name: "Alice"}
		require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, alice)))

		got, err := repository.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, &client.Client{ID: 1, Name: "Alice"}, got)

		require.NoError(t, manager.Undo(ctx))

		_, err = repository.Get(ctx, 1)
		assert.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("history tracks executed commands only", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t)

		require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: 1})))
		assert.Len(t, manager.History(), 1)
		assert.True(t, manager.CanUndo())

		err := manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: 1}))
		assert.ErrorIs(t, err, command.ErrCannotExecute)
		assert.Len(t, manager.History(), 1)

		err = manager.Invoke(ctx, client.NewAddCommand(repository, nil))
		assert.ErrorIs(t, err, command.ErrCannotExecute)
		assert.Len(t, manager.History(), 1)

		require.NoError(t, manager.Undo(ctx))
		assert.Empty(t, manager.History())
		assert.False(t, manager.CanUndo())
	})

	t.Run("undo on empty history signals there is nothing to undo", func(t *testing.T) {
		manager := newManager(t)

		assert.ErrorIs(t, manager.Undo(ctx), command.ErrNothingToUndo)
		assert.ErrorIs(t, manager.Undo(ctx), command.ErrNothingToUndo)
		assert.Empty(t, manager.History())
	})

	t.Run("nil commands are rejected", func(t *testing.T) {
		manager := newManager(t)

		assert.ErrorIs(t, manager.Invoke(ctx, nil), command.ErrNilCommand)
		assert.Empty(t, manager.History())
	})

	t.Run("undo happens in last-in-first-out order", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t)

		for id := client.ID(1); id <= 3; id++ {
			require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: id})))
		}

		require.NoError(t, manager.Undo(ctx))

		_, err := repository.Get(ctx, 3)
		assert.ErrorIs(t, err, client.ErrNotFound)

		for _, id := range []client.ID{1, 2} {
			_, err := repository.Get(ctx, id)
			assert.NoError(t, err)
		}
	})

	t.Run("undone commands can be redone", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t)

		assert.ErrorIs(t, manager.Redo(ctx), command.ErrNothingToRedo)

		require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: 1})))
		require.NoError(t, manager.Undo(ctx))
		assert.True(t, manager.CanRedo())

		require.NoError(t, manager.Redo(ctx))
		assert.False(t, manager.CanRedo())
		assert.Len(t, manager.History(), 1)

		_, err := repository.Get(ctx, 1)
		assert.NoError(t, err)
	})

	t.Run("invoking a new command clears the redo history", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t)

		require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: 1})))
		require.NoError(t, manager.Undo(ctx))
		require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: 2})))

		assert.False(t, manager.CanRedo())
		assert.ErrorIs(t, manager.Redo(ctx), command.ErrNothingToRedo)
	})

	t.Run("failed redo keeps the command available", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t)

		require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: 1})))
		require.NoError(t, manager.Undo(ctx))

		// Someone else took the identifier in the meantime.
		require.NoError(t, repository.Add(ctx, &client.Client{ID: 1, Name: "Other"}))

		assert.ErrorIs(t, manager.Redo(ctx), command.ErrCannotExecute)
		assert.True(t, manager.CanRedo())
		assert.Empty(t, manager.History())
	})

	t.Run("failed undo keeps the command in the history", func(t *testing.T) {
		expectedErr := errors.New("undo failed")
		manager := newManager(t)

		require.NoError(t, manager.Invoke(ctx, command.Func{
			CommandName: "Failing",
			UndoFunc:    func(context.Context) error { return expectedErr },
		}))

		assert.ErrorIs(t, manager.Undo(ctx), expectedErr)
		assert.Len(t, manager.History(), 1)
		assert.False(t, manager.CanRedo())
	})

	t.Run("failed executions are not recorded", func(t *testing.T) {
		expectedErr := errors.New("execute failed")
		manager := newManager(t)

		err := manager.Invoke(ctx, command.Func{
			CommandName: "Failing",
			ExecuteFunc: func(context.Context) error { return expectedErr },
		})

		assert.ErrorIs(t, err, expectedErr)
		assert.Empty(t, manager.History())

		err = manager.Invoke(ctx, command.Func{
			CommandName:    "Unchecked",
			CanExecuteFunc: func(context.Context) (bool, error) { return false, expectedErr },
		})

		assert.ErrorIs(t, err, expectedErr)
		assert.NotErrorIs(t, err, command.ErrCannotExecute)
		assert.Empty(t, manager.History())
	})

	t.Run("history entries are identified and timestamped", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		id := uuid.New()

		manager := newManager(t,
			command.WithClock(func() time.Time { return now }),
			command.WithUUIDGenerator(func() uuid.UUID { return id }),
		)

		cmd := command.Func{CommandName: "Noop"}
		require.NoError(t, manager.Invoke(ctx, cmd))

		assert.Equal(t, []command.Entry{{ID: id, Command: cmd, ExecutedAt: now}}, manager.History())
	})

	t.Run("history limit drops the oldest entries", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t, command.WithHistoryLimit(2))

		for id := client.ID(1); id <= 3; id++ {
			require.NoError(t, manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{ID: id})))
		}

		history := manager.History()
		require.Len(t, history, 2)
		assert.Equal(t, client.ID(2), history[0].Command.(*client.AddCommand).Client().ID)
		assert.Equal(t, client.ID(3), history[1].Command.(*client.AddCommand).Client().ID)

		require.NoError(t, manager.Undo(ctx))
		require.NoError(t, manager.Undo(ctx))
		assert.ErrorIs(t, manager.Undo(ctx), command.ErrNothingToUndo)

		// The first client is out of the history, and stays in the repository.
		_, err := repository.Get(ctx, 1)
		assert.NoError(t, err)
	})

	t.Run("concurrent invocations for the same id add the client once", func(t *testing.T) {
		repository := client.NewInMemoryRepository()
		manager := newManager(t)

		var succeeded, rejected atomic.Int32

		group, ctx := errgroup.WithContext(ctx)

		for i := range 16 {
			group.Go(func() error {
				err := manager.Invoke(ctx, client.NewAddCommand(repository, &client.Client{
					ID:   42,
					Name: "Concurrent " + client.ID(i).String(),
				}))

				switch {
				case err == nil:
					succeeded.Add(1)
				case errors.Is(err, command.ErrCannotExecute):
					rejected.Add(1)
				default:
					return err
				}

				return nil
			})
		}

		require.NoError(t, group.Wait())
		assert.EqualValues(t, 1, succeeded.Load())
		assert.EqualValues(t, 15, rejected.Load())
		assert.Len(t, manager.History(), 1)
		assert.Equal(t, 1, repository.Len())
	})
}
