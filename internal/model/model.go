package model

// Kind identifies the variant of a scene object.
type Kind string

const (
	KindSeat  Kind = "circle"  // Seat, drawn as a circle
	KindZone  Kind = "rect"    // Zone, drawn as a (rounded) rectangle
	KindLabel Kind = "textbox" // Free text label
)

func (k Kind) String() string {
	switch k {
	case KindSeat:
		return "Seat"
	case KindZone:
		return "Zone"
	case KindLabel:
		return "Label"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the known object kinds.
func (k Kind) Valid() bool {
	return k == KindSeat || k == KindZone || k == KindLabel
}

// SeatStatus is the sale state of a seat.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusReserved  SeatStatus = "reserved"
	StatusSold      SeatStatus = "sold"
)

// SeatStatuses lists every status in display order.
var SeatStatuses = []SeatStatus{StatusAvailable, StatusReserved, StatusSold}

// Valid reports whether s is a known seat status.
func (s SeatStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

// Geometry holds position, size and transform of an object in canvas units.
// Left/Top is the transform origin; rotation is clockwise in degrees.
type Geometry struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Angle  float64 `json:"angle"`
}

// RenderedWidth returns the on-canvas width before rotation.
func (g Geometry) RenderedWidth() float64 {
	return g.Width * g.ScaleX
}

// RenderedHeight returns the on-canvas height before rotation.
func (g Geometry) RenderedHeight() float64 {
	return g.Height * g.ScaleY
}

// Style holds paint attributes. Colors are CSS-style strings ("#RRGGBB" or "transparent").
type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// SeatAttrs are the seat-only attributes.
type SeatAttrs struct {
	Radius     float64    `json:"radius"`
	SeatNumber string     `json:"seatNumber"`
	Category   string     `json:"category"`
	Price      float64    `json:"price"`
	Status     SeatStatus `json:"status"`
}

// ZoneAttrs are the zone-only attributes.
type ZoneAttrs struct {
	RX   float64 `json:"rx"`
	RY   float64 `json:"ry"`
	Name string  `json:"name,omitempty"`
}

// LabelAttrs are the label-only attributes.
type LabelAttrs struct {
	Text       string  `json:"text"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	FontWeight string  `json:"fontWeight"`
}

// Controls describes which interactive handles the surface shows for an object.
// It is session state and never serialized.
type Controls struct {
	CornersOnly bool
}

// Object is one shape on the canvas. Exactly one of Seat, Zone and Label is
// non-nil and it always matches Kind.
type Object struct {
	ID       string
	Kind     Kind
	Geometry Geometry
	Style    Style

	Seat  *SeatAttrs
	Zone  *ZoneAttrs
	Label *LabelAttrs

	Controls Controls
	Editing  bool // label text is being edited in place
}

// IsSeat reports whether the object is a seat.
func (o *Object) IsSeat() bool { return o.Kind == KindSeat && o.Seat != nil }

// IsZone reports whether the object is a zone.
func (o *Object) IsZone() bool { return o.Kind == KindZone && o.Zone != nil }

// IsLabel reports whether the object is a label.
func (o *Object) IsLabel() bool { return o.Kind == KindLabel && o.Label != nil }

// Clone returns a deep copy of the object, keeping its ID.
func (o *Object) Clone() *Object {
	cp := *o
	if o.Seat != nil {
		s := *o.Seat
		cp.Seat = &s
	}
	if o.Zone != nil {
		z := *o.Zone
		cp.Zone = &z
	}
	if o.Label != nil {
		l := *o.Label
		cp.Label = &l
	}
	return &cp
}

// SetRadius resizes a seat. Size always follows the radius and scale stays 1.
func (o *Object) SetRadius(r float64) {
	if o.Seat == nil {
		return
	}
	o.Seat.Radius = r
	o.Geometry.Width = 2 * r
	o.Geometry.Height = 2 * r
	o.Geometry.ScaleX = 1
	o.Geometry.ScaleY = 1
}

// Translate moves the object by dx, dy.
func (o *Object) Translate(dx, dy float64) {
	o.Geometry.Left += dx
	o.Geometry.Top += dy
}

// DisplayName returns a short human-readable name for lists and logs.
func (o *Object) DisplayName() string {
	switch {
	case o.IsSeat():
		if o.Seat.SeatNumber != "" {
			return "Seat " + o.Seat.SeatNumber
		}
		return "Seat"
	case o.IsZone():
		if o.Zone.Name != "" {
			return o.Zone.Name
		}
		return "Zone"
	case o.IsLabel():
		return o.Label.Text
	}
	return o.ID
}

// Scene is the ordered set of objects on a canvas. Order is z-order, back to front.
type Scene struct {
	Objects    []*Object
	Width      float64
	Height     float64
	Background string
}

// Default canvas settings.
const (
	DefaultCanvasWidth  = 1200.0
	DefaultCanvasHeight = 800.0
	DefaultBackground   = "#FFFFFF"
)

// NewScene creates an empty scene of the given size.
func NewScene(width, height float64) *Scene {
	return &Scene{
		Objects:    []*Object{},
		Width:      width,
		Height:     height,
		Background: DefaultBackground,
	}
}

// Add appends objects on top of the z-order.
func (s *Scene) Add(objs ...*Object) {
	s.Objects = append(s.Objects, objs...)
}

// Remove deletes the object with the given ID. Returns false if it was not found.
func (s *Scene) Remove(id string) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.Objects = append(s.Objects[:idx], s.Objects[idx+1:]...)
	return true
}

// IndexOf returns the z-index of the object with the given ID, or -1.
func (s *Scene) IndexOf(id string) int {
	for i, o := range s.Objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the object with the given ID, or nil.
func (s *Scene) Find(id string) *Object {
	if idx := s.IndexOf(id); idx >= 0 {
		return s.Objects[idx]
	}
	return nil
}

// Filter returns objects of the given kinds in z-order. No kinds means all objects.
func (s *Scene) Filter(kinds ...Kind) []*Object {
	if len(kinds) == 0 {
		out := make([]*Object, len(s.Objects))
		copy(out, s.Objects)
		return out
	}
	var out []*Object
	for _, o := range s.Objects {
		for _, k := range kinds {
			if o.Kind == k {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// Seats returns all seats in z-order.
func (s *Scene) Seats() []*Object {
	return s.Filter(KindSeat)
}

// MoveTo moves the object with the given ID to z-index idx (clamped).
func (s *Scene) MoveTo(id string, idx int) bool {
	cur := s.IndexOf(id)
	if cur < 0 {
		return false
	}
	obj := s.Objects[cur]
	s.Objects = append(s.Objects[:cur], s.Objects[cur+1:]...)
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.Objects) {
		idx = len(s.Objects)
	}
	s.Objects = append(s.Objects, nil)
	copy(s.Objects[idx+1:], s.Objects[idx:])
	s.Objects[idx] = obj
	return true
}

// Clone returns a deep copy of the scene.
func (s *Scene) Clone() *Scene {
	cp := &Scene{
		Objects:    make([]*Object, len(s.Objects)),
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background,
	}
	for i, o := range s.Objects {
		cp.Objects[i] = o.Clone()
	}
	return cp
}
