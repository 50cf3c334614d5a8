package model

import "github.com/google/uuid"

// Factory defaults.
const (
	DefaultSeatRadius    = 10.0
	DefaultZoneSize      = 100.0
	DefaultFontSize      = 20.0
	DefaultFontFamily    = "Arial"
	DefaultFontWeight    = "normal"
	DefaultLabelText     = "Type here"
	DefaultLabelWidth    = 150.0
	DefaultZoneFill      = "#D3D3D3"
	DefaultStroke        = "#000000"
	DefaultSeatCategory  = "standard"
	TransparentFill      = "transparent"
	defaultLineHeightMul = 1.16
)

// NewID returns a fresh short object identity.
func NewID() string {
	return uuid.New().String()[:8]
}

func unitGeometry(pos Point, w, h float64) Geometry {
	return Geometry{
		Left:   pos.X,
		Top:    pos.Y,
		Width:  w,
		Height: h,
		ScaleX: 1,
		ScaleY: 1,
	}
}

// NewSeat creates an available seat with the given number at pos.
func NewSeat(pos Point, number string) *Object {
	return &Object{
		ID:       NewID(),
		Kind:     KindSeat,
		Geometry: unitGeometry(pos, 2*DefaultSeatRadius, 2*DefaultSeatRadius),
		Style: Style{
			Fill:        TransparentFill,
			Stroke:      DefaultStroke,
			StrokeWidth: 1,
		},
		Seat: &SeatAttrs{
			Radius:     DefaultSeatRadius,
			SeatNumber: number,
			Category:   DefaultSeatCategory,
			Status:     StatusAvailable,
		},
		Controls: Controls{CornersOnly: true},
	}
}

// NewZone creates a 100x100 zone at pos.
func NewZone(pos Point) *Object {
	return &Object{
		ID:       NewID(),
		Kind:     KindZone,
		Geometry: unitGeometry(pos, DefaultZoneSize, DefaultZoneSize),
		Style: Style{
			Fill:        DefaultZoneFill,
			Stroke:      DefaultStroke,
			StrokeWidth: 1,
		},
		Zone:     &ZoneAttrs{},
		Controls: Controls{CornersOnly: true},
	}
}

// NewLabel creates a label at pos. The label starts in editing mode so the
// user can type straight away. An empty text uses the placeholder text.
func NewLabel(pos Point, text string) *Object {
	if text == "" {
		text = DefaultLabelText
	}
	return &Object{
		ID:       NewID(),
		Kind:     KindLabel,
		Geometry: unitGeometry(pos, DefaultLabelWidth, DefaultFontSize*defaultLineHeightMul),
		Style: Style{
			Fill:   DefaultStroke,
			Stroke: "",
		},
		Label: &LabelAttrs{
			Text:       text,
			FontSize:   DefaultFontSize,
			FontFamily: DefaultFontFamily,
			FontWeight: DefaultFontWeight,
		},
		Editing: true,
	}
}

// SetFontSize changes a label's font size and recomputes its line height.
func (o *Object) SetFontSize(size float64) {
	if o.Label == nil {
		return
	}
	o.Label.FontSize = size
	o.Geometry.Height = size * defaultLineHeightMul
	o.Geometry.ScaleX = 1
	o.Geometry.ScaleY = 1
}

// ApplyControlDefaults restores per-kind interactive handle settings. Seats and
// zones only get corner handles since non-uniform resize is meaningless for them.
func ApplyControlDefaults(o *Object) {
	o.Controls.CornersOnly = o.Kind == KindSeat || o.Kind == KindZone
}
