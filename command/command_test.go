package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/get-eventually/go-command/command"
)

func TestFunc(t *testing.T) {
	ctx := context.Background()

	t.Run("zero value is an executable no-op", func(t *testing.T) {
		var cmd command.Func

		ok, err := cmd.CanExecute(ctx)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, cmd.Execute(ctx))
		assert.NoError(t, cmd.Undo(ctx))
	})

	t.Run("functions are delegated to", func(t *testing.T) {
		expectedErr := errors.New("boom")

		var calls []string

		cmd := command.Func{
			CommandName: "Record",
			CanExecuteFunc: func(context.Context) (bool, error) {
				calls = append(calls, "can-execute")
				return false, nil
			},
			ExecuteFunc: func(context.Context) error {
				calls = append(calls, "execute")
				return nil
			},
			UndoFunc: func(context.Context) error {
				calls = append(calls, "undo")
				return expectedErr
			},
		}

		ok, err := cmd.CanExecute(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, cmd.Execute(ctx))
		assert.ErrorIs(t, cmd.Undo(ctx), expectedErr)

		assert.Equal(t, "Record", cmd.Name())
		assert.Equal(t, []string{"can-execute", "execute", "undo"}, calls)
	})
}
