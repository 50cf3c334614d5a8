package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// wireObject is the serialized form of an Object. Variant attributes are
// pointers so that only the fields of the object's own kind are written.
type wireObject struct {
	Type        Kind    `json:"type"`
	ID          string  `json:"id"`
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	ScaleX      float64 `json:"scaleX"`
	ScaleY      float64 `json:"scaleY"`
	Angle       float64 `json:"angle"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`

	// Seat
	Radius     *float64    `json:"radius,omitempty"`
	SeatNumber *string     `json:"seatNumber,omitempty"`
	Category   *string     `json:"category,omitempty"`
	Price      *float64    `json:"price,omitempty"`
	Status     *SeatStatus `json:"status,omitempty"`

	// Zone
	RX   *float64 `json:"rx,omitempty"`
	RY   *float64 `json:"ry,omitempty"`
	Name *string  `json:"name,omitempty"`

	// Label
	Text       *string  `json:"text,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontFamily *string  `json:"fontFamily,omitempty"`
	FontWeight *string  `json:"fontWeight,omitempty"`
}

type wireScene struct {
	Objects    []wireObject `json:"objects"`
	Background string       `json:"background"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
}

// EncodeScene serializes a scene into its JSON snapshot form. Equal scenes
// always produce identical bytes.
func EncodeScene(s *Scene) ([]byte, error) {
	ws := wireScene{
		Objects:    make([]wireObject, 0, len(s.Objects)),
		Background: s.Background,
		Width:      s.Width,
		Height:     s.Height,
	}
	for _, o := range s.Objects {
		w, err := toWire(o)
		if err != nil {
			return nil, err
		}
		ws.Objects = append(ws.Objects, w)
	}
	return json.Marshal(ws)
}

// DecodeScene parses a JSON snapshot. Unknown fields and unknown object types
// are rejected; values are otherwise taken as given.
func DecodeScene(data []byte) (*Scene, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var ws wireScene
	if err := dec.Decode(&ws); err != nil {
		return nil, fmt.Errorf("failed to parse scene snapshot: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("failed to parse scene snapshot: trailing data after scene")
	}

	scene := &Scene{
		Objects:    make([]*Object, 0, len(ws.Objects)),
		Width:      ws.Width,
		Height:     ws.Height,
		Background: ws.Background,
	}
	for i, w := range ws.Objects {
		o, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		scene.Objects = append(scene.Objects, o)
	}
	return scene, nil
}

func toWire(o *Object) (wireObject, error) {
	g := o.Geometry
	w := wireObject{
		Type:        o.Kind,
		ID:          o.ID,
		Left:        g.Left,
		Top:         g.Top,
		Width:       g.Width,
		Height:      g.Height,
		ScaleX:      g.ScaleX,
		ScaleY:      g.ScaleY,
		Angle:       g.Angle,
		Fill:        o.Style.Fill,
		Stroke:      o.Style.Stroke,
		StrokeWidth: o.Style.StrokeWidth,
	}
	switch {
	case o.IsSeat():
		s := *o.Seat
		w.Radius = &s.Radius
		w.SeatNumber = &s.SeatNumber
		w.Category = &s.Category
		w.Price = &s.Price
		w.Status = &s.Status
	case o.IsZone():
		z := *o.Zone
		w.RX = &z.RX
		w.RY = &z.RY
		if z.Name != "" {
			w.Name = &z.Name
		}
	case o.IsLabel():
		l := *o.Label
		w.Text = &l.Text
		w.FontSize = &l.FontSize
		w.FontFamily = &l.FontFamily
		w.FontWeight = &l.FontWeight
	default:
		return wireObject{}, fmt.Errorf("object %s: %w %q", o.ID, ErrUnknownShape, o.Kind)
	}
	return w, nil
}

func fromWire(w wireObject) (*Object, error) {
	o := &Object{
		ID:   w.ID,
		Kind: w.Type,
		Geometry: Geometry{
			Left:   w.Left,
			Top:    w.Top,
			Width:  w.Width,
			Height: w.Height,
			ScaleX: w.ScaleX,
			ScaleY: w.ScaleY,
			Angle:  w.Angle,
		},
		Style: Style{
			Fill:        w.Fill,
			Stroke:      w.Stroke,
			StrokeWidth: w.StrokeWidth,
		},
	}
	if o.ID == "" {
		o.ID = NewID()
	}

	switch w.Type {
	case KindSeat:
		o.Seat = &SeatAttrs{
			Radius:     derefFloat(w.Radius),
			SeatNumber: derefString(w.SeatNumber),
			Category:   derefString(w.Category),
			Price:      derefFloat(w.Price),
			Status:     StatusAvailable,
		}
		if w.Status != nil && *w.Status != "" {
			o.Seat.Status = *w.Status
		}
		if o.Seat.Radius > 0 {
			o.SetRadius(o.Seat.Radius)
		}
	case KindZone:
		o.Zone = &ZoneAttrs{
			RX:   derefFloat(w.RX),
			RY:   derefFloat(w.RY),
			Name: derefString(w.Name),
		}
	case KindLabel:
		o.Label = &LabelAttrs{
			Text:       derefString(w.Text),
			FontSize:   derefFloat(w.FontSize),
			FontFamily: derefString(w.FontFamily),
			FontWeight: derefString(w.FontWeight),
		}
		o.Geometry.ScaleX = 1
		o.Geometry.ScaleY = 1
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, w.Type)
	}

	if o.Geometry.ScaleX == 0 {
		o.Geometry.ScaleX = 1
	}
	if o.Geometry.ScaleY == 0 {
		o.Geometry.ScaleY = 1
	}
	ApplyControlDefaults(o)
	return o, nil
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
