// Package history implements a bounded undo/redo log of reversible
// commands. Commands must be self-contained: they hold value snapshots of
// before/after state, never live references that another operation could
// mutate or free between execute and undo.
package history

import "go.uber.org/zap"

// Command is one reversible operation.
type Command interface {
	// Name is the human-readable label shown in undo/redo UI.
	Name() string
	// Execute applies the operation. A failed Execute is never pushed.
	Execute() error
	// Undo reverts the operation. Commands are designed total once
	// executed; an error here is reported but does not halt the log.
	Undo() error
}

// DefaultDepth is how many commands the undo stack retains before the
// oldest entry is evicted.
const DefaultDepth = 50

// Log is the reversible-operation log. Not safe for concurrent use; all
// mutation happens on the caller's single interaction thread.
type Log struct {
	undo  []Command
	redo  []Command
	depth int
	log   *zap.Logger
}

// NewLog creates a log with the given maximum depth (DefaultDepth when
// depth <= 0).
func NewLog(depth int, logger *zap.Logger) *Log {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{depth: depth, log: logger}
}

// Execute runs the command and records it. The redo stack is always
// cleared: a new operation invalidates the redone future. On overflow the
// oldest undo entry is evicted.
func (l *Log) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	l.undo = append(l.undo, cmd)
	if len(l.undo) > l.depth {
		l.undo = l.undo[1:]
	}
	l.redo = l.redo[:0]
	l.log.Debug("command executed", zap.String("command", cmd.Name()), zap.Int("undoDepth", len(l.undo)))
	return nil
}

// Undo reverts the most recent command. Returns false on an empty stack;
// an empty undo is a routine no-op, not an error.
func (l *Log) Undo() bool {
	if len(l.undo) == 0 {
		return false
	}
	cmd := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	if err := cmd.Undo(); err != nil {
		l.log.Warn("undo failed", zap.String("command", cmd.Name()), zap.Error(err))
	}
	l.redo = append(l.redo, cmd)
	return true
}

// Redo re-applies the most recently undone command. Returns false on an
// empty redo stack.
func (l *Log) Redo() bool {
	if len(l.redo) == 0 {
		return false
	}
	cmd := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	if err := cmd.Execute(); err != nil {
		l.log.Warn("redo failed", zap.String("command", cmd.Name()), zap.Error(err))
	}
	l.undo = append(l.undo, cmd)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (l *Log) CanUndo() bool {
	return len(l.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (l *Log) CanRedo() bool {
	return len(l.redo) > 0
}

// UndoDepth returns the current undo stack size.
func (l *Log) UndoDepth() int {
	return len(l.undo)
}

// PeekUndo returns the label of the command Undo would revert, or "".
func (l *Log) PeekUndo() string {
	if len(l.undo) == 0 {
		return ""
	}
	return l.undo[len(l.undo)-1].Name()
}

// PeekRedo returns the label of the command Redo would apply, or "".
func (l *Log) PeekRedo() string {
	if len(l.redo) == 0 {
		return ""
	}
	return l.redo[len(l.redo)-1].Name()
}

// Clear drops both stacks. Model reload tears the whole session down and
// must not leak stale commands into the new character.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
}
