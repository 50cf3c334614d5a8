package editor

import (
	"fmt"
	"log/slog"

	"github.com/piwi3910/seatmap/internal/model"
)

// ResizeCanvas changes the canvas size and background as one history step.
// Objects pushed off the canvas by a shrink are moved back inside.
func (s *Session) ResizeCanvas(width, height float64, background string) error {
	if width <= 0 || height <= 0 {
		return &model.ValidationError{
			Field:  "canvas size",
			Value:  fmt.Sprintf("%gx%g", width, height),
			Reason: "width and height must be greater than 0",
		}
	}
	if background == "" {
		background = model.DefaultBackground
	}
	if _, ok := model.ParseColor(background); !ok {
		return &model.ValidationError{Field: "background", Value: background, Reason: "unknown color"}
	}
	background = model.NormalizeColor(background)

	scene := s.surface.Scene()
	if scene.Width == width && scene.Height == height && scene.Background == background {
		return nil
	}
	return s.batch(func() error {
		scene.Width, scene.Height, scene.Background = width, height, background
		var moved []*model.Object
		for _, o := range scene.Objects {
			dx, dy := model.ClampDelta(o.BoundingRect(), width, height)
			if dx != 0 || dy != 0 {
				o.Translate(dx, dy)
				moved = append(moved, o)
			}
		}
		s.surface.Fire(EventObjectModified, moved...)
		s.surface.RequestRender()
		s.log.Debug("canvas resized", slog.Float64("width", width), slog.Float64("height", height),
			slog.Int("moved", len(moved)))
		return nil
	})
}

// DragSelection moves the selection by dx, dy as part of an ongoing drag.
// Nothing is committed until EndDrag.
func (s *Session) DragSelection(dx, dy float64) bool {
	objs := s.surface.ActiveObjects()
	if len(objs) == 0 {
		return false
	}
	s.dragging = true
	for _, o := range objs {
		o.Translate(dx, dy)
	}
	s.surface.Fire(EventObjectMoving, objs...)
	s.surface.RequestRender()
	return true
}

// EndDrag finishes a drag started with DragSelection and records it as one
// history step.
func (s *Session) EndDrag() {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.surface.Fire(EventObjectModified, s.surface.ActiveObjects()...)
}
