package model

import (
	"strconv"
	"strings"
)

// NextSeatNumber returns one past the highest numeric seat number in the
// scene, or "1" when there is none. Non-numeric seat numbers are ignored.
//
// Numbers are not reserved: the caller must add the numbered seat to the scene
// before asking for the next one.
func NextSeatNumber(s *Scene) string {
	max := 0
	for _, o := range s.Objects {
		if !o.IsSeat() {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(o.Seat.SeatNumber))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// IsSeatNumberUnique reports whether no seat other than excludingID holds proposed.
func IsSeatNumberUnique(s *Scene, proposed, excludingID string) bool {
	proposed = strings.TrimSpace(proposed)
	for _, o := range s.Objects {
		if !o.IsSeat() || o.ID == excludingID {
			continue
		}
		if strings.TrimSpace(o.Seat.SeatNumber) == proposed {
			return false
		}
	}
	return true
}

// CheckSeatNumber returns a ValidationError when proposed is already taken.
func CheckSeatNumber(s *Scene, proposed, excludingID string) error {
	if IsSeatNumberUnique(s, proposed, excludingID) {
		return nil
	}
	return &ValidationError{
		Field:  "seatNumber",
		Value:  proposed,
		Reason: "seat number already in use",
		Err:    ErrDuplicateSeatNumber,
	}
}
