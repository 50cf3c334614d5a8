package editor

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/piwi3910/seatmap/internal/logging"
	"github.com/piwi3910/seatmap/internal/model"
)

const defaultMaxDepth = 100

// History is a snapshot-based undo/redo state machine. The top of the undo
// stack is always the last committed scene state; redo[0] is the next state
// to redo.
//
// While a snapshot is being applied the history is in the applying state and
// ignores commits, so the object events raised by the load itself cannot
// corrupt the stacks.
type History struct {
	undoStack [][]byte
	redoStack [][]byte
	maxDepth  int // 0 = unbounded
	applying  bool
	log       *logging.Logger
}

// NewHistory creates a History keeping at most maxDepth undo entries.
// A negative depth selects the default; zero means unbounded.
func NewHistory(maxDepth int, log *logging.Logger) *History {
	if maxDepth < 0 {
		maxDepth = defaultMaxDepth
	}
	if log == nil {
		log = logging.Discard()
	}
	return &History{
		maxDepth: maxDepth,
		log:      log.WithComponent("history"),
	}
}

// Applying reports whether an undo, redo or load is in progress.
func (h *History) Applying() bool { return h.applying }

// Commit records the surface's current state. The snapshot is pushed only when
// it differs from the top of the undo stack; a push clears the redo stack.
// Commits are ignored while applying.
func (h *History) Commit(s Surface) (bool, error) {
	if h.applying {
		return false, nil
	}
	snap, err := s.Serialize()
	if err != nil {
		return false, fmt.Errorf("failed to capture scene: %w", err)
	}
	if n := len(h.undoStack); n > 0 && bytes.Equal(h.undoStack[n-1], snap) {
		return false, nil
	}
	h.undoStack = append(h.undoStack, snap)
	h.trim()
	h.redoStack = nil
	h.log.Debug("commit", slog.Int("undo", len(h.undoStack)))
	return true, nil
}

// Undo restores the state below the top of the undo stack. It needs at least
// two entries: the current state and the one before it.
func (h *History) Undo(s Surface) (bool, error) {
	if h.applying || len(h.undoStack) < 2 {
		return false, nil
	}
	h.applying = true
	defer func() { h.applying = false }()

	cur, err := s.Serialize()
	if err != nil {
		return false, h.desync("undo", err)
	}
	prev := h.undoStack[len(h.undoStack)-2]
	if err := s.Deserialize(prev); err != nil {
		return false, h.desync("undo", err)
	}
	restoreControls(s)

	h.redoStack = append([][]byte{cur}, h.redoStack...)
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	s.RequestRender()
	h.log.Debug("undo", slog.Int("undo", len(h.undoStack)), slog.Int("redo", len(h.redoStack)))
	return true, nil
}

// Redo re-applies the most recently undone state.
func (h *History) Redo(s Surface) (bool, error) {
	if h.applying || len(h.redoStack) == 0 {
		return false, nil
	}
	h.applying = true
	defer func() { h.applying = false }()

	before, err := s.Serialize()
	if err != nil {
		return false, h.desync("redo", err)
	}
	if err := s.Deserialize(h.redoStack[0]); err != nil {
		return false, h.desync("redo", err)
	}
	restoreControls(s)

	cur, err := s.Serialize()
	if err != nil {
		// Roll back so the scene matches the untouched stacks.
		if rbErr := s.Deserialize(before); rbErr == nil {
			restoreControls(s)
		}
		return false, h.desync("redo", err)
	}

	h.undoStack = append(h.undoStack, cur)
	h.trim()
	h.redoStack = h.redoStack[1:]
	s.RequestRender()
	h.log.Debug("redo", slog.Int("undo", len(h.undoStack)), slog.Int("redo", len(h.redoStack)))
	return true, nil
}

// Load replaces the scene with snapshot and makes it the new history baseline.
func (h *History) Load(s Surface, snapshot []byte) error {
	h.applying = true
	defer func() { h.applying = false }()

	if err := s.Deserialize(snapshot); err != nil {
		return h.desync("load", err)
	}
	restoreControls(s)
	h.applying = false
	return h.Reset(s)
}

// Reset clears both stacks and records the current state as the only entry.
func (h *History) Reset(s Surface) error {
	h.undoStack = nil
	h.redoStack = nil
	_, err := h.Commit(s)
	return err
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool {
	return len(h.undoStack) >= 2
}

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Len returns the undo and redo stack depths.
func (h *History) Len() (undo, redo int) {
	return len(h.undoStack), len(h.redoStack)
}

// Top returns the last committed snapshot, or nil.
func (h *History) Top() []byte {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// trim drops the oldest entries past maxDepth. Two entries always survive so
// the last commit can be undone.
func (h *History) trim() {
	if h.maxDepth <= 0 {
		return
	}
	if depth := max(h.maxDepth, 2); len(h.undoStack) > depth {
		h.undoStack = h.undoStack[len(h.undoStack)-depth:]
	}
}

func (h *History) desync(op string, err error) error {
	h.log.Error("history transition aborted", slog.String("op", op), slog.String("error", err.Error()))
	return &StateDesyncError{Op: op, Err: err}
}

// restoreControls reapplies per-kind handle settings, which are not part of snapshots.
func restoreControls(s Surface) {
	for _, o := range s.Objects() {
		model.ApplyControlDefaults(o)
	}
}
