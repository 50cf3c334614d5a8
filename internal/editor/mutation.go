package editor

import (
	"errors"
	"log/slog"

	"github.com/piwi3910/seatmap/internal/model"
)

// UpdateObject applies a partial property update to every selected object.
// Only fields that differ from an object's current value are written. A seat
// number that collides with another seat is withheld for that object and
// reported as a *model.ValidationError; the remaining fields still apply.
// The whole update is one history step.
func (s *Session) UpdateObject(p Properties) error {
	objs := s.surface.ActiveObjects()
	if len(objs) == 0 || p.Empty() {
		return nil
	}

	var errs []error
	err := s.batch(func() error {
		var changed []*model.Object
		for _, o := range objs {
			ok, err := s.applyUpdate(o, p)
			if err != nil {
				errs = append(errs, err)
			}
			if ok {
				changed = append(changed, o)
			}
		}
		if len(changed) > 0 {
			s.surface.Fire(EventObjectModified, changed...)
			s.log.Debug("objects updated", slog.Int("count", len(changed)))
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}

	s.surface.RequestRender()
	s.refreshMerged()
	return errors.Join(errs...)
}

// fieldSetter writes only values that differ and remembers whether anything did.
type fieldSetter struct {
	changed bool
}

func (f *fieldSetter) float(dst *float64, v *float64) {
	if v != nil && *dst != *v {
		*dst = *v
		f.changed = true
	}
}

func (f *fieldSetter) str(dst *string, v *string) {
	if v != nil && *dst != *v {
		*dst = *v
		f.changed = true
	}
}

func (s *Session) applyUpdate(o *model.Object, p Properties) (bool, error) {
	set := &fieldSetter{}
	var errs []error
	g := &o.Geometry

	set.float(&g.Left, p.Left)
	set.float(&g.Top, p.Top)

	if p.Fill != nil {
		fill := model.NormalizeColor(*p.Fill)
		set.str(&o.Style.Fill, &fill)
	}
	if p.Stroke != nil {
		stroke := NormalizeStroke(p.Stroke)
		set.str(&o.Style.Stroke, &stroke)
	}
	set.float(&o.Style.StrokeWidth, p.StrokeWidth)

	switch {
	case o.IsSeat():
		if resizeSeat(o, p) {
			set.changed = true
		}
		if p.SeatNumber != nil && *p.SeatNumber != o.Seat.SeatNumber {
			if err := model.CheckSeatNumber(s.surface.Scene(), *p.SeatNumber, o.ID); err != nil {
				errs = append(errs, err)
			} else {
				set.str(&o.Seat.SeatNumber, p.SeatNumber)
			}
		}
		set.str(&o.Seat.Category, p.Category)
		set.float(&o.Seat.Price, p.Price)
		if p.Status != nil && *p.Status != o.Seat.Status {
			if !p.Status.Valid() {
				errs = append(errs, &model.ValidationError{
					Field:  string(FieldStatus),
					Value:  string(*p.Status),
					Reason: "unknown seat status",
				})
			} else {
				o.Seat.Status = *p.Status
				set.changed = true
			}
		}

	case o.IsZone():
		if s.resizeRendered(o, p.Width, p.Height) {
			set.changed = true
		}
		set.float(&o.Zone.RX, p.RX)
		set.float(&o.Zone.RY, p.RY)
		set.str(&o.Zone.Name, p.Name)

	case o.IsLabel():
		set.str(&o.Label.Text, p.Text)
		if p.FontSize != nil && *p.FontSize > 0 && *p.FontSize != o.Label.FontSize {
			o.SetFontSize(*p.FontSize)
			set.changed = true
		}
		set.str(&o.Label.FontFamily, p.FontFamily)
		set.str(&o.Label.FontWeight, p.FontWeight)
		if p.Width != nil && *p.Width > 0 && *p.Width != g.RenderedWidth() {
			g.Width = *p.Width
			g.ScaleX = 1
			set.changed = true
		}
		if pinLabelScale(o) {
			set.changed = true
		}
	}

	if p.Angle != nil && *p.Angle != g.Angle {
		g.Angle = *p.Angle
		set.changed = true
		s.correctBounds(o)
	}

	return set.changed, errors.Join(errs...)
}

// resizeSeat treats width/height as a diameter. An explicit radius wins.
func resizeSeat(o *model.Object, p Properties) bool {
	var r float64
	switch {
	case p.Radius != nil:
		r = *p.Radius
	case p.Width != nil:
		r = *p.Width / 2
	case p.Height != nil:
		r = *p.Height / 2
	default:
		return false
	}
	g := o.Geometry
	if r <= 0 || (r == o.Seat.Radius && g.ScaleX == 1 && g.ScaleY == 1) {
		return false
	}
	o.SetRadius(r)
	return true
}

// resizeRendered sets the rendered size of a zone. The requested size becomes
// the base size and scale goes back to 1, so later edits are absolute.
func (s *Session) resizeRendered(o *model.Object, w, h *float64) bool {
	if w == nil && h == nil {
		return false
	}
	g := &o.Geometry
	curW, curH := g.RenderedWidth(), g.RenderedHeight()
	newW, newH := curW, curH
	if w != nil && *w > 0 {
		newW = *w
	}
	if h != nil && *h > 0 {
		newH = *h
	}
	if s.aspectLock && curW > 0 && curH > 0 {
		wChanged := newW != curW
		hChanged := newH != curH
		switch {
		case wChanged && !hChanged:
			newH = curH * newW / curW
		case hChanged && !wChanged:
			newW = curW * newH / curH
		}
	}
	if newW == g.Width && newH == g.Height && g.ScaleX == 1 && g.ScaleY == 1 {
		return false
	}
	g.Width, g.Height = newW, newH
	g.ScaleX, g.ScaleY = 1, 1
	return true
}

// pinLabelScale folds any scale into the label's base width and resets it to 1.
func pinLabelScale(o *model.Object) bool {
	g := &o.Geometry
	if g.ScaleX == 1 && g.ScaleY == 1 {
		return false
	}
	if g.ScaleX > 0 {
		g.Width *= g.ScaleX
	}
	g.ScaleX, g.ScaleY = 1, 1
	return true
}

// correctBounds translates o by the smallest delta that brings its rotated
// bounding box back inside the canvas.
func (s *Session) correctBounds(o *model.Object) {
	w, h := s.surface.Size()
	dx, dy := model.ClampDelta(o.BoundingRect(), w, h)
	if dx != 0 || dy != 0 {
		o.Translate(dx, dy)
		s.log.Debug("rotation moved object on canvas",
			slog.String("id", o.ID), slog.Float64("dx", dx), slog.Float64("dy", dy))
	}
}
