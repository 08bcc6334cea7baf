package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/get-eventually/go-command/client"
	"github.com/get-eventually/go-command/command"
)

func TestScenario(t *testing.T) {
	alice := &client.Client{ID: 1, Name: "Alice", Email: "alice@example.com"}
	bob := &client.Client{ID: 2, Name: "Bob"}

	addClient := func(c *client.Client) client.CommandFactory {
		return func(repository client.Repository) command.Command {
			return client.NewAddCommand(repository, c)
		}
	}

	t.Run("add a client to an empty repository", func(t *testing.T) {
		client.Scenario().
			When(addClient(alice)).
			Then(alice).
			AssertOn(t)
	})

	t.Run("add a client next to existing ones", func(t *testing.T) {
		client.Scenario().
			Given(bob).
			When(addClient(alice)).
			Then(alice, bob).
			AssertOn(t)
	})

	t.Run("cannot add a client with a duplicate id", func(t *testing.T) {
		client.Scenario().
			Given(alice).
			When(addClient(&client.Client{ID: alice.ID, Name: "Impostor"})).
			ThenError(command.ErrCannotExecute).
			AssertOn(t)
	})

	t.Run("cannot add a missing client", func(t *testing.T) {
		client.Scenario().
			Given(bob).
			When(addClient(nil)).
			ThenError(command.ErrCannotExecute).
			AssertOn(t)
	})

	t.Run("failing commands leave the repository untouched", func(t *testing.T) {
		client.Scenario().
			Given(alice).
			When(func(client.Repository) command.Command {
				return command.Func{
					CommandName: "Broken",
					ExecuteFunc: func(context.Context) error { return errors.New("broken") },
				}
			}).
			ThenFails().
			AssertOn(t)
	})
}
