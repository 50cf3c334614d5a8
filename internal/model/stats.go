package model

import "sort"

// SceneStats summarizes the seats of a layout.
type SceneStats struct {
	Seats      int                `json:"seats"`
	Zones      int                `json:"zones"`
	Labels     int                `json:"labels"`
	ByStatus   map[SeatStatus]int `json:"by_status"`
	ByCategory map[string]int     `json:"by_category"`
	Revenue    float64            `json:"revenue"`    // sum of all seat prices
	SoldValue  float64            `json:"sold_value"` // sum of sold seat prices
	OpenValue  float64            `json:"open_value"` // sum of available seat prices
}

// Stats computes seat counts and price totals for the scene.
func (s *Scene) Stats() SceneStats {
	st := SceneStats{
		ByStatus:   map[SeatStatus]int{},
		ByCategory: map[string]int{},
	}
	for _, o := range s.Objects {
		switch {
		case o.IsSeat():
			st.Seats++
			st.ByStatus[o.Seat.Status]++
			st.ByCategory[o.Seat.Category]++
			st.Revenue += o.Seat.Price
			switch o.Seat.Status {
			case StatusSold:
				st.SoldValue += o.Seat.Price
			case StatusAvailable:
				st.OpenValue += o.Seat.Price
			}
		case o.IsZone():
			st.Zones++
		case o.IsLabel():
			st.Labels++
		}
	}
	return st
}

// Categories returns the category names in alphabetical order.
func (st SceneStats) Categories() []string {
	names := make([]string, 0, len(st.ByCategory))
	for c := range st.ByCategory {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}
