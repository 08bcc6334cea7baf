// Package command contains the Command contract, used to encapsulate an undoable
// unit of work, and the Manager that invokes Commands while keeping track
// of their execution history.
//
// A Command checks its own preconditions through CanExecute, performs its
// side effects in Execute and reverses them in Undo. Commands should confine
// their side effects to the collaborators injected at construction time.
//
// Use a Manager to invoke Commands: only Commands that were executed
// successfully end up in the Manager history, and can later be undone
// (and redone) in last-in-first-out order.
package command
