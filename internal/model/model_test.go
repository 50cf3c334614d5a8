package model

import (
	"testing"
)

func TestNewSeatDefaults(t *testing.T) {
	s := NewSeat(Point{X: 10, Y: 20}, "7")

	if s.Kind != KindSeat || s.Seat == nil {
		t.Fatal("expected a seat")
	}
	if len(s.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", s.ID)
	}
	if s.Seat.Radius != DefaultSeatRadius {
		t.Errorf("expected radius %f, got %f", DefaultSeatRadius, s.Seat.Radius)
	}
	if s.Geometry.Width != 20 || s.Geometry.Height != 20 {
		t.Errorf("expected 20x20 seat, got %fx%f", s.Geometry.Width, s.Geometry.Height)
	}
	if s.Style.Fill != TransparentFill {
		t.Errorf("expected transparent fill, got %s", s.Style.Fill)
	}
	if s.Seat.Status != StatusAvailable {
		t.Errorf("expected available status, got %s", s.Seat.Status)
	}
	if !s.Controls.CornersOnly {
		t.Error("seats should only have corner handles")
	}
}

func TestNewZoneDefaults(t *testing.T) {
	z := NewZone(Point{X: 5, Y: 5})
	if z.Geometry.Width != 100 || z.Geometry.Height != 100 {
		t.Errorf("expected 100x100 zone, got %fx%f", z.Geometry.Width, z.Geometry.Height)
	}
	if z.Style.Fill == "" || z.Style.Fill == TransparentFill {
		t.Errorf("expected a zone fill, got %q", z.Style.Fill)
	}
	if z.Zone.RX != 0 || z.Zone.RY != 0 {
		t.Error("expected square corners")
	}
	if !z.Controls.CornersOnly {
		t.Error("zones should only have corner handles")
	}
}

func TestNewLabelDefaults(t *testing.T) {
	l := NewLabel(Point{}, "")
	if l.Label.Text != DefaultLabelText {
		t.Errorf("expected placeholder text, got %q", l.Label.Text)
	}
	if l.Label.FontSize != 20 {
		t.Errorf("expected font size 20, got %f", l.Label.FontSize)
	}
	if !l.Editing {
		t.Error("new labels should start in editing mode")
	}
	if l.Controls.CornersOnly {
		t.Error("labels keep all handles")
	}

	named := NewLabel(Point{}, "Stage")
	if named.Label.Text != "Stage" {
		t.Errorf("expected text Stage, got %q", named.Label.Text)
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := NewSeat(Point{}, "").ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestObjectCloneIsDeep(t *testing.T) {
	orig := NewSeat(Point{X: 1, Y: 1}, "1")
	cp := orig.Clone()

	cp.Seat.SeatNumber = "99"
	cp.Geometry.Left = 500

	if orig.Seat.SeatNumber != "1" {
		t.Error("clone should not share seat attributes")
	}
	if orig.Geometry.Left != 1 {
		t.Error("clone should not share geometry")
	}
	if cp.ID != orig.ID {
		t.Error("clone keeps the identity")
	}
}

func TestSetRadiusKeepsUnitScale(t *testing.T) {
	s := NewSeat(Point{}, "1")
	s.Geometry.ScaleX = 2
	s.SetRadius(15)
	if s.Geometry.Width != 30 || s.Geometry.Height != 30 {
		t.Errorf("expected 30x30, got %fx%f", s.Geometry.Width, s.Geometry.Height)
	}
	if s.Geometry.ScaleX != 1 || s.Geometry.ScaleY != 1 {
		t.Error("seat scale must be reset to 1")
	}
}

func TestSceneAddRemoveFind(t *testing.T) {
	s := NewScene(800, 600)
	a := NewZone(Point{})
	b := NewSeat(Point{}, "1")
	s.Add(a, b)

	if s.Find(b.ID) != b {
		t.Error("expected to find seat")
	}
	if s.IndexOf(a.ID) != 0 || s.IndexOf(b.ID) != 1 {
		t.Error("unexpected z-order")
	}
	if !s.Remove(a.ID) {
		t.Error("remove should succeed")
	}
	if s.Remove(a.ID) {
		t.Error("second remove should fail")
	}
	if len(s.Objects) != 1 {
		t.Errorf("expected 1 object, got %d", len(s.Objects))
	}
}

func TestSceneFilter(t *testing.T) {
	s := NewScene(800, 600)
	s.Add(NewZone(Point{}), NewSeat(Point{}, "1"), NewLabel(Point{}, "x"), NewSeat(Point{}, "2"))

	if n := len(s.Seats()); n != 2 {
		t.Errorf("expected 2 seats, got %d", n)
	}
	if n := len(s.Filter(KindZone, KindLabel)); n != 2 {
		t.Errorf("expected 2 zones+labels, got %d", n)
	}
	if n := len(s.Filter()); n != 4 {
		t.Errorf("expected all 4 objects, got %d", n)
	}
}

func TestSceneMoveTo(t *testing.T) {
	s := NewScene(800, 600)
	a, b, c := NewZone(Point{}), NewZone(Point{}), NewZone(Point{})
	s.Add(a, b, c)

	s.MoveTo(a.ID, 99)
	if s.Objects[2] != a {
		t.Error("expected a on top")
	}
	s.MoveTo(c.ID, -5)
	if s.Objects[0] != c {
		t.Error("expected c at the back")
	}
}

func TestSceneCloneIsDeep(t *testing.T) {
	s := NewScene(800, 600)
	s.Add(NewSeat(Point{}, "1"))
	cp := s.Clone()
	cp.Objects[0].Seat.SeatNumber = "2"
	if s.Objects[0].Seat.SeatNumber != "1" {
		t.Error("scene clone should deep-copy objects")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSeat, "Seat"},
		{KindZone, "Zone"},
		{KindLabel, "Label"},
		{Kind("triangle"), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%q).String() = %q, want %q", string(tt.kind), got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	seat := NewSeat(Point{}, "12")
	if seat.DisplayName() != "Seat 12" {
		t.Errorf("unexpected seat name %q", seat.DisplayName())
	}
	zone := NewZone(Point{})
	zone.Zone.Name = "Balcony"
	if zone.DisplayName() != "Balcony" {
		t.Errorf("unexpected zone name %q", zone.DisplayName())
	}
}
