package client

import (
	"context"
	"fmt"

	"github.com/get-eventually/go-command/command"
)

// AddCommandName is the name of the AddCommand.
const AddCommandName = "AddClient"

var _ command.Command = new(AddCommand)

// AddCommand is a Command that adds a Client to a Repository.
//
// A nil Client makes every operation a no-op, and the Command never executable.
//
// Use NewAddCommand to create a new instance of this type.
type AddCommand struct {
	repository Repository
	client     *Client

	// Set when Execute has actually added the Client, so that Undo
	// never removes a Client that was already in the Repository.
	applied bool
}

// NewAddCommand returns a Command that adds c to the Repository.
//
// The Repository is shared with the caller, and it's the only collaborator
// mutated by the Command.
func NewAddCommand(repository Repository, c *Client) *AddCommand {
	return &AddCommand{
		repository: repository,
		client:     c,
	}
}

// Name implements the command.Command interface.
func (*AddCommand) Name() string { return AddCommandName }

// Client returns the Client added by the Command.
func (cmd *AddCommand) Client() *Client { return cmd.client }

// CanExecute returns true if the Command has a Client to add, and no
// Client with the same ID is in the Repository already.
func (cmd *AddCommand) CanExecute(ctx context.Context) (bool, error) {
	if cmd.client == nil {
		return false, nil
	}

	exists, err := Exists(ctx, cmd.repository, cmd.client.ID)
	if err != nil {
		return false, fmt.Errorf("client.AddCommand: failed to look up client %s, %w", cmd.client.ID, err)
	}

	return !exists, nil
}

// Execute adds the Client to the Repository.
//
// Execute is a no-op if the Client cannot be added, as reported by CanExecute.
func (cmd *AddCommand) Execute(ctx context.Context) error {
	ok, err := cmd.CanExecute(ctx)
	if err != nil || !ok {
		return err
	}

	if err := cmd.repository.Add(ctx, cmd.client); err != nil {
		return fmt.Errorf("client.AddCommand: failed to add client %s, %w", cmd.client.ID, err)
	}

	cmd.applied = true

	return nil
}

// Undo removes the Client added by the last Execute call from the Repository.
//
// Undo is a no-op if the last Execute call did not add the Client.
func (cmd *AddCommand) Undo(ctx context.Context) error {
	if cmd.client == nil || !cmd.applied {
		return nil
	}

	if err := cmd.repository.Remove(ctx, cmd.client.ID); err != nil {
		return fmt.Errorf("client.AddCommand: failed to remove client %s, %w", cmd.client.ID, err)
	}

	cmd.applied = false

	return nil
}
