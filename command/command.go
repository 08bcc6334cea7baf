package command

import "context"

// Command is an encapsulated, undoable unit of work.
//
// In order to enforce this concept, it is suggested to name Command types
// using "present tense" (e.g. AddClient).
type Command interface {
	// Name identifies the kind of Command, and it's used for logging
	// and instrumentation purposes.
	Name() string

	// CanExecute reports whether the Command preconditions hold.
	//
	// CanExecute must not produce side effects, and can be called any
	// number of times. An error is returned only when the preconditions
	// could not be evaluated (e.g. the underlying storage is unavailable).
	CanExecute(ctx context.Context) (bool, error)

	// Execute performs the Command side effects.
	//
	// If CanExecute would have returned false, Execute must be a no-op.
	Execute(ctx context.Context) error

	// Undo reverses the side effects of the most recent Execute call.
	//
	// Undo after a no-op Execute must also be a no-op.
	Undo(ctx context.Context) error
}

var _ Command = Func{}

// Func is a functional Command implementation, useful for ad-hoc
// Commands that don't need a dedicated type.
//
// A nil CanExecuteFunc always allows execution, while nil ExecuteFunc
// and UndoFunc are no-ops.
type Func struct {
	CommandName    string
	CanExecuteFunc func(ctx context.Context) (bool, error)
	ExecuteFunc    func(ctx context.Context) error
	UndoFunc       func(ctx context.Context) error
}

// Name implements the command.Command interface.
func (f Func) Name() string { return f.CommandName }

// CanExecute implements the command.Command interface.
func (f Func) CanExecute(ctx context.Context) (bool, error) {
	if f.CanExecuteFunc == nil {
		return true, nil
	}

	return f.CanExecuteFunc(ctx)
}

// Execute implements the command.Command interface.
func (f Func) Execute(ctx context.Context) error {
	if f.ExecuteFunc == nil {
		return nil
	}

	return f.ExecuteFunc(ctx)
}

// Undo implements the command.Command interface.
func (f Func) Undo(ctx context.Context) error {
	if f.UndoFunc == nil {
		return nil
	}

	return f.UndoFunc(ctx)
}
