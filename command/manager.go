package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/get-eventually/go-command/logger"
)

var (
	// ErrNilCommand is returned by Manager.Invoke when no Command is provided.
	ErrNilCommand = errors.New("command: nil command")

	// ErrCannotExecute is returned by the Manager when a Command
	// preconditions, checked through CanExecute, do not hold.
	ErrCannotExecute = errors.New("command: cannot execute")

	// ErrNothingToUndo is returned by Manager.Undo when the history is empty.
	ErrNothingToUndo = errors.New("command: nothing to undo")

	// ErrNothingToRedo is returned by Manager.Redo when no Command
	// has been undone since the last invocation.
	ErrNothingToRedo = errors.New("command: nothing to redo")
)

// Entry is a Command that has been executed by a Manager.
type Entry struct {
	ID         uuid.UUID
	Command    Command
	ExecutedAt time.Time
}

// Invoker is the public surface of a Command invoker.
type Invoker interface {
	Invoke(ctx context.Context, cmd Command) error
	Undo(ctx context.Context) error
}

var _ Invoker = new(Manager)

// Manager invokes Commands and keeps a last-in-first-out history of the
// executed ones, which can be undone and redone.
//
// Manager is thread-safe: every operation is serialized, so that the
// CanExecute and Execute calls of an invocation are never interleaved
// with another invocation on the same Manager. Commands sharing their
// collaborators with other Managers need external synchronization.
//
// Use NewManager to create a new instance of this type.
type Manager struct {
	mx      sync.Mutex
	history []Entry
	undone  []Entry

	historyLimit  int
	logger        logger.Logger
	clock         func() time.Time
	uuidGenerator func() uuid.UUID
}

// ManagerOption changes the configuration of a Manager.
type ManagerOption func(*Manager)

// WithHistoryLimit bounds the number of entries kept in the history:
// the oldest entries are discarded once the limit is exceeded.
//
// A non-positive limit keeps the history unbounded, which is the default.
func WithHistoryLimit(limit int) ManagerOption {
	return func(m *Manager) {
		m.historyLimit = limit
	}
}

// WithLogger sets the logger.Logger used by the Manager.
// By default, nothing is logged.
func WithLogger(l logger.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithClock sets the clock used to timestamp history entries.
func WithClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithUUIDGenerator sets the function used to identify history entries.
func WithUUIDGenerator(generator func() uuid.UUID) ManagerOption {
	return func(m *Manager) {
		m.uuidGenerator = generator
	}
}

// NewManager returns a new Manager with an empty history.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		clock:         time.Now,
		uuidGenerator: uuid.New,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func fields(entry Entry) []logger.Field {
	return []logger.Field{
		logger.With("command.name", entry.Command.Name()),
		logger.With("command.id", entry.ID.String()),
	}
}

func (m *Manager) execute(ctx context.Context, cmd Command) error {
	ok, err := cmd.CanExecute(ctx)
	if err != nil {
		return fmt.Errorf("command.Manager: failed to check %s preconditions, %w", cmd.Name(), err)
	}

	if !ok {
		return fmt.Errorf("command.Manager: %s rejected, %w", cmd.Name(), ErrCannotExecute)
	}

	if err := cmd.Execute(ctx); err != nil {
		return fmt.Errorf("command.Manager: failed to execute %s, %w", cmd.Name(), err)
	}

	return nil
}

func (m *Manager) record(entry Entry) {
	m.history = append(m.history, entry)

	if m.historyLimit > 0 && len(m.history) > m.historyLimit {
		m.history = slices.Delete(m.history, 0, len(m.history)-m.historyLimit)
	}
}

// Invoke checks whether the Command can be executed and, if so, executes it
// and records it on the history.
//
// ErrCannotExecute is returned if the Command preconditions do not hold:
// the Command is discarded and the history is left untouched.
//
// Invoking a Command successfully discards all the previously undone Commands,
// which cannot be redone anymore.
func (m *Manager) Invoke(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}

	m.mx.Lock()
	defer m.mx.Unlock()

	entry := Entry{
		ID:      m.uuidGenerator(),
		Command: cmd,
	}

	if err := m.execute(ctx, cmd); err != nil {
		logger.Error(m.logger, "command not executed", append(fields(entry), logger.With("error", err))...)
		return err
	}

	entry.ExecutedAt = m.clock()
	m.record(entry)
	m.undone = nil

	logger.Info(m.logger, "command executed", fields(entry)...)

	return nil
}

// Undo pops the most recent Command from the history and undoes it.
//
// ErrNothingToUndo is returned when the history is empty, in which case
// the Manager state is unchanged.
//
// If the Command fails to undo, it's kept in the history and the error
// is returned.
func (m *Manager) Undo(ctx context.Context) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if len(m.history) == 0 {
		return ErrNothingToUndo
	}

	last := len(m.history) - 1
	entry := m.history[last]

	if err := entry.Command.Undo(ctx); err != nil {
		logger.Error(m.logger, "command not undone", append(fields(entry), logger.With("error", err))...)
		return fmt.Errorf("command.Manager: failed to undo %s, %w", entry.Command.Name(), err)
	}

	m.history = m.history[:last]
	m.undone = append(m.undone, entry)

	logger.Info(m.logger, "command undone", fields(entry)...)

	return nil
}

// Redo executes again the most recently undone Command, and records it
// back on the history.
//
// ErrNothingToRedo is returned when no Command has been undone since
// the last invocation. If the Command cannot be executed again, the error
// is returned and the Command stays available for a later Redo.
func (m *Manager) Redo(ctx context.Context) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if len(m.undone) == 0 {
		return ErrNothingToRedo
	}

	last := len(m.undone) - 1
	entry := m.undone[last]

	if err := m.execute(ctx, entry.Command); err != nil {
		logger.Error(m.logger, "command not redone", append(fields(entry), logger.With("error", err))...)
		return err
	}

	entry.ExecutedAt = m.clock()
	m.undone = m.undone[:last]
	m.record(entry)

	logger.Info(m.logger, "command redone", fields(entry)...)

	return nil
}

// History returns a copy of the executed Commands, oldest first.
func (m *Manager) History() []Entry {
	m.mx.Lock()
	defer m.mx.Unlock()

	return slices.Clone(m.history)
}

// CanUndo reports whether there is a Command to undo.
func (m *Manager) CanUndo() bool {
	m.mx.Lock()
	defer m.mx.Unlock()

	return len(m.history) > 0
}

// CanRedo reports whether there is a Command to redo.
func (m *Manager) CanRedo() bool {
	m.mx.Lock()
	defer m.mx.Unlock()

	return len(m.undone) > 0
}
