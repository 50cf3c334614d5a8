package editor

import (
	"log/slog"
	"math"

	"github.com/piwi3910/seatmap/internal/model"
)

// GridSize returns how many rows and columns of seats fit in the drag from
// start to end at the given pitch.
func GridSize(start, end model.Point, pitch float64) (rows, cols int) {
	if pitch <= 0 {
		return 0, 0
	}
	rows = int(math.Floor(math.Abs(end.Y-start.Y) / pitch))
	cols = int(math.Floor(math.Abs(end.X-start.X) / pitch))
	return rows, cols
}

// GenerateSeatGrid lays out a grid of seats over the dragged rectangle, row by
// row from its top-left corner, and selects them. Each seat takes the next
// free seat number after the previous one was placed. The whole grid is one
// history step. The tool reverts to select whether or not any seat was placed.
func (s *Session) GenerateSeatGrid(start, end model.Point) []*model.Object {
	defer s.SetToolMode(ToolSelect)

	pitch := s.opts.GridPitch
	rows, cols := GridSize(start, end, pitch)
	if rows == 0 || cols == 0 {
		return nil
	}
	originX := math.Min(start.X, end.X)
	originY := math.Min(start.Y, end.Y)

	seats := make([]*model.Object, 0, rows*cols)
	_ = s.batch(func() error {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				seat := s.newSeat(model.Point{
					X: originX + float64(col)*pitch,
					Y: originY + float64(row)*pitch,
				})
				s.surface.Add(seat)
				seats = append(seats, seat)
			}
		}
		return nil
	})
	s.surface.SetActiveObjects(seats...)
	s.surface.RequestRender()
	s.log.Info("seat grid generated", slog.Int("rows", rows), slog.Int("cols", cols))
	return seats
}
