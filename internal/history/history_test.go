package history

import (
	"errors"
	"testing"
)

// counterCommand adds delta going forward and subtracts it going
// backward, so test state is trivially checkable.
type counterCommand struct {
	target *int
	delta  int
}

func (c *counterCommand) Apply(dir Direction) error {
	if dir == Backward {
		*c.target -= c.delta
	} else {
		*c.target += c.delta
	}
	return nil
}

// push applies the command and records it, the way the editor does.
func push(s *Stack, kind Kind, target *int, delta int) {
	cmd := &counterCommand{target: target, delta: delta}
	cmd.Apply(Forward)
	s.Push(kind, "", cmd)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New(0)
	state := 0

	push(s, KindAddClip, &state, 1)  // A
	push(s, KindMoveClip, &state, 2) // B
	if state != 3 {
		t.Fatalf("state = %d, expected 3 after both actions", state)
	}

	if !s.Undo() || !s.Undo() {
		t.Fatal("both undos should succeed")
	}
	if state != 0 {
		t.Errorf("state = %d, expected 0 (pre-A)", state)
	}

	if !s.Redo() {
		t.Fatal("first redo should succeed")
	}
	if state != 1 {
		t.Errorf("state = %d, expected 1 (post-A/pre-B)", state)
	}
	if !s.Redo() {
		t.Fatal("second redo should succeed")
	}
	if state != 3 {
		t.Errorf("state = %d, expected 3 (post-B)", state)
	}
}

func TestPushClearsRedoStack(t *testing.T) {
	s := New(0)
	state := 0

	push(s, KindAddClip, &state, 1)
	s.Undo()
	if !s.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	push(s, KindAddClip, &state, 5)
	if s.CanRedo() {
		t.Error("a fresh push must clear the redo stack")
	}
}

func TestEmptyStacksAreBenign(t *testing.T) {
	s := New(0)

	if s.Undo() {
		t.Error("undo on empty stack should report false")
	}
	if s.Redo() {
		t.Error("redo on empty stack should report false")
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("empty stack should report nothing available")
	}
}

func TestBatch(t *testing.T) {
	s := New(0)
	state := 0
	order := []int{}

	applyOrder := func(id int) Command {
		return commandFunc(func(dir Direction) error {
			order = append(order, id*int(dir*2-1)) // -id on undo, +id on redo
			return nil
		})
	}

	s.StartBatch()
	push(s, KindAddClip, &state, 1) // X
	push(s, KindMoveClip, &state, 2)
	s.Push(KindMoveClip, "", applyOrder(1))
	s.Push(KindMoveClip, "", applyOrder(2))
	s.EndBatch("L")

	if s.Len() != 1 {
		t.Fatalf("batch should commit exactly one undo entry, got %d", s.Len())
	}
	if s.UndoLabel() != "L" {
		t.Errorf("batch label = %q, expected L", s.UndoLabel())
	}

	order = nil
	if !s.Undo() {
		t.Fatal("batch undo failed")
	}
	if state != 0 {
		t.Errorf("state = %d, expected 0 after batch undo", state)
	}
	// Sub-actions undone in reverse order: 2 before 1.
	if len(order) != 2 || order[0] != -2 || order[1] != -1 {
		t.Errorf("undo order = %v, expected [-2 -1]", order)
	}

	order = nil
	if !s.Redo() {
		t.Fatal("batch redo failed")
	}
	if state != 3 {
		t.Errorf("state = %d, expected 3 after batch redo", state)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("redo order = %v, expected [1 2]", order)
	}
}

func TestEmptyBatchCommitsNothing(t *testing.T) {
	s := New(0)
	s.StartBatch()
	s.EndBatch("nothing")
	if s.CanUndo() {
		t.Error("empty batch should leave the undo stack empty")
	}
}

func TestCancelBatchDiscards(t *testing.T) {
	s := New(0)
	state := 0

	s.StartBatch()
	push(s, KindAddClip, &state, 1)
	s.CancelBatch()

	if s.CanUndo() {
		t.Error("cancelled batch must not commit")
	}

	// The stack accepts ordinary pushes again afterwards.
	push(s, KindAddClip, &state, 1)
	if s.Len() != 1 {
		t.Errorf("stack length = %d, expected 1", s.Len())
	}
}

func TestDefaultBatchLabel(t *testing.T) {
	s := New(0)
	state := 0

	s.StartBatch()
	push(s, KindAddClip, &state, 1)
	s.EndBatch("")

	if s.UndoLabel() != "Multiple Changes" {
		t.Errorf("default batch label = %q", s.UndoLabel())
	}
}

func TestEvictionOldestFirst(t *testing.T) {
	s := New(3)
	state := 0

	for i := 0; i < 5; i++ {
		push(s, KindAddClip, &state, 1)
	}

	if s.Len() != 3 {
		t.Fatalf("stack length = %d, expected 3 after eviction", s.Len())
	}

	// Only the 3 newest survive; undoing all of them leaves the evicted
	// effects in place.
	for s.CanUndo() {
		s.Undo()
	}
	if state != 2 {
		t.Errorf("state = %d, expected 2 (two evicted actions remain applied)", state)
	}
}

func TestPushDuringExecutionIsIgnored(t *testing.T) {
	s := New(0)
	state := 0

	// A command that tries to record itself again while being undone.
	var sneaky Command
	sneaky = commandFunc(func(dir Direction) error {
		s.Push(KindAddClip, "", sneaky)
		return nil
	})
	s.Push(KindAddClip, "", sneaky)

	s.Undo()
	if s.CanUndo() {
		t.Error("push from inside an undo must be dropped")
	}
	if state != 0 {
		t.Errorf("state = %d", state)
	}
}

func TestGuardReleasedOnCommandError(t *testing.T) {
	s := New(0)
	boom := errors.New("boom")
	s.Push(KindAddClip, "", commandFunc(func(Direction) error { return boom }))

	if s.Undo() {
		t.Error("undo of a failing command should report false")
	}

	// The guard must be released: later pushes still land.
	state := 0
	push(s, KindAddClip, &state, 1)
	if !s.CanUndo() {
		t.Error("stack should accept pushes after a failed undo")
	}
}

func TestDefaultLabels(t *testing.T) {
	s := New(0)
	state := 0
	push(s, KindSplitClip, &state, 1)

	if s.UndoLabel() != "Split Clip" {
		t.Errorf("label = %q, expected Split Clip", s.UndoLabel())
	}
}

// commandFunc adapts a function to the Command interface.
type commandFunc func(Direction) error

func (f commandFunc) Apply(dir Direction) error { return f(dir) }
