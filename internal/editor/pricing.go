package editor

import (
	"log/slog"

	"github.com/piwi3910/seatmap/internal/model"
)

// ApplyPriceProfile sets the price, and the fill when the profile has a
// color, of every seat whose category the profile lists. It returns the
// number of seats changed. All changes are one history step.
func (s *Session) ApplyPriceProfile(p model.PriceProfile) int {
	var changed []*model.Object
	_ = s.batch(func() error {
		for _, o := range s.surface.Objects(model.KindSeat) {
			cp, ok := p.Lookup(o.Seat.Category)
			if !ok {
				continue
			}
			dirty := false
			if o.Seat.Price != cp.Price {
				o.Seat.Price = cp.Price
				dirty = true
			}
			if cp.Color != "" {
				if fill := model.NormalizeColor(cp.Color); fill != o.Style.Fill {
					o.Style.Fill = fill
					dirty = true
				}
			}
			if dirty {
				changed = append(changed, o)
			}
		}
		if len(changed) > 0 {
			s.surface.Fire(EventObjectModified, changed...)
		}
		return nil
	})
	if len(changed) > 0 {
		s.surface.RequestRender()
		s.log.Info("price profile applied", slog.String("profile", p.Name), slog.Int("seats", len(changed)))
	}
	return len(changed)
}
