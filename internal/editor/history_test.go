package editor

import (
	"errors"
	"testing"

	"github.com/piwi3910/seatmap/internal/logging"
	"github.com/piwi3910/seatmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *MemorySurface) {
	t.Helper()
	surface := NewMemorySurface(model.NewScene(800, 600))
	sess := NewSession(surface, DefaultOptions(), logging.Discard())
	t.Cleanup(sess.Close)
	return sess, surface
}

func undoLen(s *Session) int {
	u, _ := s.History().Len()
	return u
}

func TestNewHistory(t *testing.T) {
	h := NewHistory(-1, nil)
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestCommitsGrowUndoStack(t *testing.T) {
	sess, _ := newTestSession(t)
	require.Equal(t, 1, undoLen(sess), "session starts with a baseline entry")

	for i := 0; i < 3; i++ {
		sess.CreateSeat(model.Point{X: float64(i) * 30, Y: 10})
	}

	assert.Equal(t, 4, undoLen(sess))
	assert.False(t, sess.CanRedo())
}

func TestCommitSkipsUnchangedSnapshot(t *testing.T) {
	surface := NewMemorySurface(nil)
	h := NewHistory(0, nil)

	pushed, err := h.Commit(surface)
	require.NoError(t, err)
	assert.True(t, pushed)

	pushed, err = h.Commit(surface)
	require.NoError(t, err)
	assert.False(t, pushed)

	u, _ := h.Len()
	assert.Equal(t, 1, u)
}

func TestUndoRedoRoundTripIsByteIdentical(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.CreateZone(model.Point{X: 100, Y: 100})

	before, err := sess.Snapshot()
	require.NoError(t, err)

	ok, err := sess.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, sess.Scene().Objects, 1)

	ok, err = sess.Redo()
	require.NoError(t, err)
	require.True(t, ok)

	after, err := sess.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestUndoNeedsTwoEntries(t *testing.T) {
	sess, surface := newTestSession(t)
	before := surface.Renders()

	ok, err := sess.Undo()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, surface.Renders(), "no-op undo should not render")
	assert.Equal(t, 1, undoLen(sess))
}

func TestRedoWithEmptyStackIsNoop(t *testing.T) {
	sess, _ := newTestSession(t)
	ok, err := sess.Redo()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCommitAfterUndoClearsRedo(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.CreateSeat(model.Point{X: 40, Y: 10})

	_, err := sess.Undo()
	require.NoError(t, err)
	require.True(t, sess.CanRedo())

	sess.CreateZone(model.Point{X: 200, Y: 200})
	assert.False(t, sess.CanRedo())
}

func TestUndoDoesNotRecordItsOwnLoad(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.CreateSeat(model.Point{X: 40, Y: 10})
	require.Equal(t, 3, undoLen(sess))

	_, err := sess.Undo()
	require.NoError(t, err)

	u, r := sess.History().Len()
	assert.Equal(t, 2, u)
	assert.Equal(t, 1, r)
}

func TestUndoRestoresControlDefaults(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.CreateZone(model.Point{X: 100, Y: 100})
	sess.CreateLabel(model.Point{X: 300, Y: 300}, "Stage")

	_, err := sess.Undo()
	require.NoError(t, err)

	for _, o := range sess.Scene().Objects {
		if o.IsLabel() {
			assert.False(t, o.Controls.CornersOnly)
			continue
		}
		assert.True(t, o.Controls.CornersOnly, "%s should only have corner handles", o.Kind)
	}
}

func TestRedoCorruptSnapshotLeavesStateIntact(t *testing.T) {
	surface := NewMemorySurface(nil)
	h := NewHistory(0, nil)
	require.NoError(t, h.Reset(surface))

	surface.Add(model.NewSeat(model.Point{X: 1, Y: 1}, "1"))
	_, err := h.Commit(surface)
	require.NoError(t, err)

	h.redoStack = [][]byte{[]byte(`{"objects":[{"type":"triangle"}]}`)}
	before, _ := surface.Serialize()

	ok, err := h.Redo(surface)
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStateDesync))
	assert.True(t, errors.Is(err, model.ErrUnknownShape))

	var desync *StateDesyncError
	require.True(t, errors.As(err, &desync))
	assert.Equal(t, "redo", desync.Op)

	u, r := h.Len()
	assert.Equal(t, 2, u)
	assert.Equal(t, 1, r)
	after, _ := surface.Serialize()
	assert.Equal(t, string(before), string(after))
	assert.False(t, h.Applying())
}

func TestUndoCorruptSnapshotLeavesStateIntact(t *testing.T) {
	surface := NewMemorySurface(nil)
	h := NewHistory(0, nil)
	h.undoStack = [][]byte{[]byte("{not json"), []byte("{}")}

	ok, err := h.Undo(surface)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrStateDesync)

	u, r := h.Len()
	assert.Equal(t, 2, u)
	assert.Equal(t, 0, r)
}

func TestHistoryDepthCap(t *testing.T) {
	surface := NewMemorySurface(nil)
	h := NewHistory(3, nil)
	require.NoError(t, h.Reset(surface))

	var last []byte
	for i := 0; i < 5; i++ {
		surface.Add(model.NewSeat(model.Point{X: float64(i * 25), Y: 0}, ""))
		_, err := h.Commit(surface)
		require.NoError(t, err)
		last, _ = surface.Serialize()
	}

	u, _ := h.Len()
	assert.Equal(t, 3, u)
	assert.Equal(t, string(last), string(h.Top()), "trimming must keep the newest entry")
}

func TestHistoryDepthOneStillUndoes(t *testing.T) {
	surface := NewMemorySurface(model.NewScene(800, 600))
	h := NewHistory(1, nil)
	require.NoError(t, h.Reset(surface))

	for i := 0; i < 3; i++ {
		surface.Add(model.NewSeat(model.Point{X: float64(i * 25), Y: 0}, ""))
		_, err := h.Commit(surface)
		require.NoError(t, err)
	}
	u, _ := h.Len()
	assert.Equal(t, 2, u)
	require.True(t, h.CanUndo())

	ok, err := h.Undo(surface)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, surface.Scene().Objects, 2)
}

func TestSessionWithDepthOneCanUndo(t *testing.T) {
	opts := DefaultOptions()
	opts.HistoryDepth = 1
	sess := NewSession(NewMemorySurface(model.NewScene(800, 600)), opts, logging.Discard())
	t.Cleanup(sess.Close)

	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.CreateSeat(model.Point{X: 60, Y: 10})

	ok, err := sess.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, sess.Scene().Objects, 1)
}

func TestCommitIgnoredWhileApplying(t *testing.T) {
	surface := NewMemorySurface(nil)
	h := NewHistory(0, nil)
	h.applying = true

	pushed, err := h.Commit(surface)
	assert.NoError(t, err)
	assert.False(t, pushed)
	u, _ := h.Len()
	assert.Equal(t, 0, u)
}

func TestSessionLoadResetsHistory(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})

	other := model.NewScene(400, 300)
	other.Add(model.NewZone(model.Point{X: 5, Y: 5}), model.NewSeat(model.Point{X: 50, Y: 50}, "7"))
	data, err := model.EncodeScene(other)
	require.NoError(t, err)

	require.NoError(t, sess.Load(data))
	assert.Len(t, sess.Scene().Objects, 2)
	assert.False(t, sess.CanUndo())
	assert.False(t, sess.CanRedo())
	assert.Equal(t, 1, undoLen(sess))
	for _, o := range sess.Scene().Objects {
		assert.True(t, o.Controls.CornersOnly)
	}
}

func TestSessionLoadRejectsCorruptLayout(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})

	err := sess.Load([]byte(`{"objects":[],"extra":true}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStateDesync)
	assert.Len(t, sess.Scene().Objects, 1)
	assert.True(t, sess.CanUndo())
}
