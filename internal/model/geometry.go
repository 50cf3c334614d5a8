package model

import "math"

// Point is a 2D coordinate in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle described by its min and max corners.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// BoundsOf returns the bounding box of a point set. Empty input yields a zero Rect.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

// Corners returns the four corners of the object after scale and rotation
// about its Left/Top origin, clockwise from the origin.
func (o *Object) Corners() []Point {
	g := o.Geometry
	w := g.RenderedWidth()
	h := g.RenderedHeight()
	rad := g.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)

	local := []Point{{0, 0}, {w, 0}, {w, h}, {0, h}}
	out := make([]Point, len(local))
	for i, p := range local {
		out[i] = Point{
			X: g.Left + p.X*cos - p.Y*sin,
			Y: g.Top + p.X*sin + p.Y*cos,
		}
	}
	return out
}

// BoundingRect returns the axis-aligned bounding box of the object as drawn.
func (o *Object) BoundingRect() Rect {
	return BoundsOf(o.Corners())
}

// Frame returns the unrotated {left, top, left+width, top+height} box of the
// object using its rendered size.
func (o *Object) Frame() Rect {
	g := o.Geometry
	return Rect{
		Min: Point{X: g.Left, Y: g.Top},
		Max: Point{X: g.Left + g.RenderedWidth(), Y: g.Top + g.RenderedHeight()},
	}
}

// ContainsPoint reports whether p falls on the object, honouring rotation.
func (o *Object) ContainsPoint(p Point) bool {
	g := o.Geometry
	rad := -g.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - g.Left
	dy := p.Y - g.Top
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos
	w := g.RenderedWidth()
	h := g.RenderedHeight()
	if o.IsSeat() {
		r := o.Seat.Radius
		cx, cy := lx-r, ly-r
		return cx*cx+cy*cy <= r*r
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// ClampDelta returns the smallest translation that moves r inside a canvas of
// the given size. When r is larger than the canvas the top-left edge wins.
func ClampDelta(r Rect, width, height float64) (dx, dy float64) {
	switch {
	case r.Min.X < 0:
		dx = -r.Min.X
	case r.Max.X > width:
		dx = width - r.Max.X
		if r.Min.X+dx < 0 {
			dx = -r.Min.X
		}
	}
	switch {
	case r.Min.Y < 0:
		dy = -r.Min.Y
	case r.Max.Y > height:
		dy = height - r.Max.Y
		if r.Min.Y+dy < 0 {
			dy = -r.Min.Y
		}
	}
	return dx, dy
}
