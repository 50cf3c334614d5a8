package editor

import (
	"testing"

	"github.com/piwi3910/seatmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSize(t *testing.T) {
	tests := []struct {
		name       string
		start, end model.Point
		rows, cols int
	}{
		{"130x70", model.Point{X: 0, Y: 0}, model.Point{X: 130, Y: 70}, 1, 2},
		{"reversed drag", model.Point{X: 130, Y: 70}, model.Point{X: 0, Y: 0}, 1, 2},
		{"exact pitch", model.Point{X: 0, Y: 0}, model.Point{X: 120, Y: 180}, 3, 2},
		{"too small", model.Point{X: 0, Y: 0}, model.Point{X: 59, Y: 200}, 3, 0},
		{"no drag", model.Point{X: 10, Y: 10}, model.Point{X: 10, Y: 10}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols := GridSize(tt.start, tt.end, 60)
			assert.Equal(t, tt.rows, rows)
			assert.Equal(t, tt.cols, cols)
		})
	}
}

func TestGridSizeZeroPitch(t *testing.T) {
	rows, cols := GridSize(model.Point{}, model.Point{X: 500, Y: 500}, 0)
	assert.Zero(t, rows)
	assert.Zero(t, cols)
}

func TestGenerateSeatGridNumbersAfterExisting(t *testing.T) {
	sess, _ := newTestSession(t)
	for i := 0; i < 3; i++ {
		sess.CreateSeat(model.Point{X: float64(i) * 30, Y: 10})
	}
	sess.SetToolMode(ToolMultipleSeat)
	before := undoLen(sess)

	seats := sess.GenerateSeatGrid(model.Point{X: 330, Y: 270}, model.Point{X: 200, Y: 200})
	require.Len(t, seats, 2)

	assert.Equal(t, "4", seats[0].Seat.SeatNumber)
	assert.Equal(t, "5", seats[1].Seat.SeatNumber)
	assert.Equal(t, model.Point{X: 200, Y: 200}, model.Point{X: seats[0].Geometry.Left, Y: seats[0].Geometry.Top})
	assert.Equal(t, model.Point{X: 260, Y: 200}, model.Point{X: seats[1].Geometry.Left, Y: seats[1].Geometry.Top})

	assert.Equal(t, before+1, undoLen(sess), "a grid is one history step")
	assert.Equal(t, ToolSelect, sess.ToolMode())
	assert.Len(t, sess.Selected(), 2)
}

func TestGenerateSeatGridRowMajor(t *testing.T) {
	sess, _ := newTestSession(t)
	seats := sess.GenerateSeatGrid(model.Point{X: 0, Y: 0}, model.Point{X: 130, Y: 130})
	require.Len(t, seats, 4)

	want := []model.Point{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 0, Y: 60}, {X: 60, Y: 60}}
	for i, s := range seats {
		assert.Equal(t, want[i], model.Point{X: s.Geometry.Left, Y: s.Geometry.Top})
		assert.Equal(t, []string{"1", "2", "3", "4"}[i], s.Seat.SeatNumber)
	}
}

func TestGenerateSeatGridTooSmall(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.SetToolMode(ToolMultipleSeat)
	before := undoLen(sess)

	seats := sess.GenerateSeatGrid(model.Point{X: 0, Y: 0}, model.Point{X: 50, Y: 50})
	assert.Empty(t, seats)
	assert.Empty(t, sess.Scene().Objects)
	assert.Equal(t, before, undoLen(sess))
	assert.Equal(t, ToolSelect, sess.ToolMode())
}

func TestGenerateSeatGridUsesSessionDefaults(t *testing.T) {
	surface := NewMemorySurface(model.NewScene(800, 600))
	opts := DefaultOptions()
	opts.GridPitch = 30
	opts.SeatCategory = "vip"
	opts.SeatPrice = 80
	opts.SeatRadius = 12
	sess := NewSession(surface, opts, nil)
	defer sess.Close()

	seats := sess.GenerateSeatGrid(model.Point{X: 0, Y: 0}, model.Point{X: 65, Y: 35})
	require.Len(t, seats, 2)
	for _, s := range seats {
		assert.Equal(t, "vip", s.Seat.Category)
		assert.Equal(t, 80.0, s.Seat.Price)
		assert.Equal(t, 12.0, s.Seat.Radius)
		assert.Equal(t, 24.0, s.Geometry.Width)
	}
	assert.Equal(t, 30.0, seats[1].Geometry.Left)
}
