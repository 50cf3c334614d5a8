package editor

import (
	"log/slog"

	"github.com/piwi3910/seatmap/internal/model"
)

// Clipboard holds deep copies of copied or cut objects.
type Clipboard struct {
	items []*model.Object
}

// Set replaces the clipboard contents with copies of objs.
func (c *Clipboard) Set(objs []*model.Object) {
	c.items = make([]*model.Object, len(objs))
	for i, o := range objs {
		c.items[i] = o.Clone()
	}
}

// Len returns the number of objects on the clipboard.
func (c *Clipboard) Len() int { return len(c.items) }

// Items returns the clipboard objects. They must not be modified.
func (c *Clipboard) Items() []*model.Object { return c.items }

// Bounds returns the union of the members' unrotated frames.
func (c *Clipboard) Bounds() model.Rect {
	if len(c.items) == 0 {
		return model.Rect{}
	}
	r := c.items[0].Frame()
	for _, o := range c.items[1:] {
		r = r.Union(o.Frame())
	}
	return r
}

// PasteAt returns fresh copies of the clipboard, each with a new ID, shifted
// so the clipboard bounding box's top-left lands on anchor.
func (c *Clipboard) PasteAt(anchor model.Point) []*model.Object {
	if len(c.items) == 0 {
		return nil
	}
	b := c.Bounds()
	dx := anchor.X - b.Min.X
	dy := anchor.Y - b.Min.Y
	out := make([]*model.Object, len(c.items))
	for i, o := range c.items {
		cp := o.Clone()
		cp.ID = model.NewID()
		cp.Editing = false
		cp.Translate(dx, dy)
		model.ApplyControlDefaults(cp)
		out[i] = cp
	}
	return out
}

// Copy puts the selection on the clipboard.
func (s *Session) Copy() int {
	objs := s.surface.ActiveObjects()
	if len(objs) == 0 {
		return 0
	}
	s.clipboard.Set(objs)
	s.action = ActionCopy
	s.log.Debug("copied", slog.Int("count", len(objs)))
	return len(objs)
}

// Cut copies the selection to the clipboard and removes it from the canvas.
func (s *Session) Cut() int {
	objs := s.surface.ActiveObjects()
	if len(objs) == 0 {
		return 0
	}
	s.clipboard.Set(objs)
	s.action = ActionCut
	_ = s.batch(func() error {
		s.surface.Remove(objs...)
		return nil
	})
	s.surface.DiscardActiveObject()
	s.surface.RequestRender()
	s.log.Debug("cut", slog.Int("count", len(objs)))
	return len(objs)
}

// Paste inserts the clipboard at the last recorded anchor and selects the
// pasted objects. It does nothing without an anchor or with an empty clipboard.
// Pasted seats whose number is already taken get the next free number.
func (s *Session) Paste() []*model.Object {
	anchor, ok := s.Anchor()
	if !ok || s.clipboard.Len() == 0 {
		return nil
	}
	pasted := s.clipboard.PasteAt(anchor)
	_ = s.batch(func() error {
		for _, o := range pasted {
			if o.IsSeat() && !model.IsSeatNumberUnique(s.surface.Scene(), o.Seat.SeatNumber, o.ID) {
				o.Seat.SeatNumber = model.NextSeatNumber(s.surface.Scene())
			}
			s.surface.Add(o)
		}
		return nil
	})
	s.surface.SetActiveObjects(pasted...)
	s.action = ActionPaste
	s.surface.RequestRender()
	s.log.Debug("pasted", slog.Int("count", len(pasted)),
		slog.Float64("x", anchor.X), slog.Float64("y", anchor.Y))
	return pasted
}
