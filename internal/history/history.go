// Package history implements a generic command-pattern undo/redo stack.
// It records reversible commands without knowing what they mutate; the
// editing layer supplies explicit command objects.
package history

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMaxSize bounds the undo stack; oldest entries are evicted
// silently once it is exceeded.
const DefaultMaxSize = 100

// Direction selects which way a command is applied.
type Direction int

const (
	Backward Direction = iota // undo
	Forward                   // redo
)

// Command is one reversible state transition. Apply(Backward) must
// exactly invert Apply(Forward).
type Command interface {
	Apply(dir Direction) error
}

// Kind is the semantic category of an action, used for default labels.
type Kind string

const (
	KindAddClip          Kind = "add-clip"
	KindRemoveClip       Kind = "remove-clip"
	KindMoveClip         Kind = "move-clip"
	KindReorderClips     Kind = "reorder-clips"
	KindSplitClip        Kind = "split-clip"
	KindTrimClip         Kind = "trim-clip"
	KindUpdateAudio      Kind = "update-audio"
	KindAddKeyframe      Kind = "add-keyframe"
	KindRemoveKeyframe   Kind = "remove-keyframe"
	KindUpdateKeyframe   Kind = "update-keyframe"
	KindAddTransition    Kind = "add-transition"
	KindRemoveTransition Kind = "remove-transition"
	KindUpdateTransition Kind = "update-transition"
	KindUpdateFilters    Kind = "update-filters"
	KindBatch            Kind = "batch"
)

var defaultLabels = map[Kind]string{
	KindAddClip:          "Add Clip",
	KindRemoveClip:       "Remove Clip",
	KindMoveClip:         "Move Clip",
	KindReorderClips:     "Reorder Clips",
	KindSplitClip:        "Split Clip",
	KindTrimClip:         "Trim Clip",
	KindUpdateAudio:      "Update Audio Settings",
	KindAddKeyframe:      "Add Keyframe",
	KindRemoveKeyframe:   "Remove Keyframe",
	KindUpdateKeyframe:   "Update Keyframe",
	KindAddTransition:    "Add Transition",
	KindRemoveTransition: "Remove Transition",
	KindUpdateTransition: "Update Transition",
	KindUpdateFilters:    "Update Filters",
	KindBatch:            "Multiple Changes",
}

// DefaultLabel returns the human-readable label for a kind.
func DefaultLabel(k Kind) string {
	if l, ok := defaultLabels[k]; ok {
		return l
	}
	return "Edit"
}

// Action is one entry on the undo or redo stack.
type Action struct {
	ID    string
	Kind  Kind
	Label string
	At    time.Time
	cmd   Command
}

// batch applies sub-actions in reverse for undo and forward for redo.
type batch struct {
	actions []*Action
}

func (b *batch) Apply(dir Direction) error {
	if dir == Backward {
		for i := len(b.actions) - 1; i >= 0; i-- {
			if err := b.actions[i].cmd.Apply(Backward); err != nil {
				return err
			}
		}
		return nil
	}
	for _, a := range b.actions {
		if err := a.cmd.Apply(Forward); err != nil {
			return err
		}
	}
	return nil
}

// Stack is the undo/redo engine. Every recorded action sits on exactly
// one of the two stacks; any fresh push clears the redo stack.
type Stack struct {
	maxSize   int
	undo      []*Action
	redo      []*Action
	executing bool
	batching  bool
	pending   []*Action
}

// New returns a stack bounded to maxSize entries; maxSize <= 0 selects
// DefaultMaxSize.
func New(maxSize int) *Stack {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Stack{maxSize: maxSize}
}

func newAction(kind Kind, label string, cmd Command) *Action {
	if label == "" {
		label = DefaultLabel(kind)
	}
	return &Action{
		ID:    uuid.NewString(),
		Kind:  kind,
		Label: label,
		At:    time.Now(),
		cmd:   cmd,
	}
}

// Push records an already-applied command. Pushes that happen while an
// undo/redo is executing are dropped so a command's side effects cannot
// re-enter the history. During batch collection the action is held back
// until EndBatch.
func (s *Stack) Push(kind Kind, label string, cmd Command) {
	if s.executing {
		return
	}
	action := newAction(kind, label, cmd)
	if s.batching {
		s.pending = append(s.pending, action)
		return
	}
	s.commit(action)
}

func (s *Stack) commit(action *Action) {
	s.undo = append(s.undo, action)
	s.redo = s.redo[:0]
	if over := len(s.undo) - s.maxSize; over > 0 {
		s.undo = append([]*Action(nil), s.undo[over:]...)
	}
}

// Undo reverts the most recent action. Returns false when there is
// nothing to undo or the command failed.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	action := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	err := s.execute(action, Backward)
	s.redo = append(s.redo, action)
	return err == nil
}

// Redo re-applies the most recently undone action.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	action := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	err := s.execute(action, Forward)
	s.undo = append(s.undo, action)
	return err == nil
}

// execute runs the command with the reentrancy guard held. The guard is
// released even when the command fails.
func (s *Stack) execute(action *Action, dir Direction) error {
	s.executing = true
	defer func() { s.executing = false }()
	return action.cmd.Apply(dir)
}

// StartBatch begins collecting pushes into a single composite action.
// Nested calls are idempotent.
func (s *Stack) StartBatch() {
	if s.batching {
		return
	}
	s.batching = true
	s.pending = nil
}

// EndBatch commits the collected actions as one undo step. An empty
// batch commits nothing.
func (s *Stack) EndBatch(label string) {
	if !s.batching {
		return
	}
	s.batching = false
	if len(s.pending) == 0 {
		return
	}
	if label == "" {
		label = DefaultLabel(KindBatch)
	}
	s.commit(newAction(KindBatch, label, &batch{actions: s.pending}))
	s.pending = nil
}

// CancelBatch discards the collected actions without committing.
func (s *Stack) CancelBatch() {
	s.batching = false
	s.pending = nil
}

// CanUndo reports whether Undo would do anything.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoLabel returns the label of the next action Undo would revert.
func (s *Stack) UndoLabel() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Label
}

// RedoLabel returns the label of the next action Redo would re-apply.
func (s *Stack) RedoLabel() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Label
}

// Len reports the number of undoable actions.
func (s *Stack) Len() int { return len(s.undo) }

// Clear drops both stacks and any pending batch.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
	s.pending = nil
	s.batching = false
}
