package editor

import "github.com/piwi3910/seatmap/internal/model"

// Properties is a partial update. Nil fields are left untouched.
type Properties struct {
	Left        *float64
	Top         *float64
	Width       *float64 // rendered width; diameter for seats
	Height      *float64 // rendered height; diameter for seats
	Angle       *float64
	Fill        *string
	Stroke      any // string, color.Color or fmt.Stringer
	StrokeWidth *float64

	Radius     *float64
	SeatNumber *string
	Category   *string
	Price      *float64
	Status     *model.SeatStatus

	RX   *float64
	RY   *float64
	Name *string

	Text       *string
	FontSize   *float64
	FontFamily *string
	FontWeight *string
}

// Empty reports whether no field is set.
func (p Properties) Empty() bool {
	if p.Stroke != nil {
		return false
	}
	return p == Properties{}
}

// Ptr returns a pointer to v, for building Properties literals.
func Ptr[T any](v T) *T { return &v }

// NormalizeStroke converts a stroke value to the string form stored on objects.
func NormalizeStroke(v any) string {
	return model.NormalizeColor(v)
}
