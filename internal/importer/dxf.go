package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/seatmap/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// DXFOptions controls how drawing units map onto the canvas.
type DXFOptions struct {
	Scale  float64 // canvas units per drawing unit
	Margin float64 // offset of the drawing's top-left from the canvas origin
}

// DefaultDXFOptions maps one drawing unit to one canvas unit.
func DefaultDXFOptions() DXFOptions {
	return DXFOptions{Scale: 1, Margin: 20}
}

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point
	end   model.Point
}

// dxfShape is an entity in drawing coordinates (y up) before it is placed.
type dxfShape struct {
	kind   model.Kind
	bounds model.Rect
	radius float64
	text   string
	size   float64
}

// ImportDXF imports a venue drawing. Circles become seats, closed polylines
// and closed chains of LINEs/ARCs become zones sized to their bounding box,
// and TEXT entities become labels. The drawing is flipped to the canvas's
// y-down axis and moved so its top-left sits at the margin.
func ImportDXF(path string, opts DXFOptions) ImportResult {
	result := ImportResult{}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []dxfShape
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Circle:
			if e.Radius <= 0 {
				result.Warnings = append(result.Warnings, "Skipped CIRCLE with zero radius")
				continue
			}
			cx, cy := e.Center[0], e.Center[1]
			shapes = append(shapes, dxfShape{
				kind:   model.KindSeat,
				radius: e.Radius,
				bounds: model.Rect{
					Min: model.Point{X: cx - e.Radius, Y: cy - e.Radius},
					Max: model.Point{X: cx + e.Radius, Y: cy + e.Radius},
				},
			})

		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) < 3 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			if e.Closed || pointsClose(pts[0], pts[len(pts)-1], 0.01) {
				shapes = append(shapes, dxfShape{kind: model.KindZone, bounds: model.BoundsOf(pts)})
			} else {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Text:
			if e.Value == "" {
				continue
			}
			h := e.Height
			if h <= 0 {
				h = model.DefaultFontSize
			}
			x, y := e.Coord1[0], e.Coord1[1]
			shapes = append(shapes, dxfShape{
				kind:   model.KindLabel,
				text:   e.Value,
				size:   h,
				bounds: model.Rect{Min: model.Point{X: x, Y: y}, Max: model.Point{X: x, Y: y + h}},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	// Chain loose segments (LINEs and ARCs) into closed outlines
	for _, outline := range chainSegments(segments, 0.01) {
		shapes = append(shapes, dxfShape{kind: model.KindZone, bounds: model.BoundsOf(outline)})
	}

	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No seats, closed shapes or text found in DXF file")
		return result
	}

	extent := shapes[0].bounds
	for _, s := range shapes[1:] {
		extent = extent.Union(s.bounds)
	}

	// Zones first so seats and labels stack on top of them.
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].kind == model.KindZone && shapes[j].kind != model.KindZone
	})

	for _, s := range shapes {
		// Flip y: the top edge in drawing space is bounds.Max.Y.
		left := (s.bounds.Min.X-extent.Min.X)*opts.Scale + opts.Margin
		top := (extent.Max.Y-s.bounds.Max.Y)*opts.Scale + opts.Margin
		w := s.bounds.Width() * opts.Scale
		h := s.bounds.Height() * opts.Scale

		switch s.kind {
		case model.KindSeat:
			seat := model.NewSeat(model.Point{X: left, Y: top}, "")
			seat.SetRadius(s.radius * opts.Scale)
			result.Objects = append(result.Objects, seat)

		case model.KindZone:
			if w < 0.01 || h < 0.01 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
				continue
			}
			zone := model.NewZone(model.Point{X: left, Y: top})
			zone.Geometry.Width = w
			zone.Geometry.Height = h
			result.Objects = append(result.Objects, zone)

		case model.KindLabel:
			label := model.NewLabel(model.Point{X: left, Y: top}, s.text)
			label.SetFontSize(s.size * opts.Scale)
			label.Editing = false
			result.Objects = append(result.Objects, label)
		}
	}

	return result
}

// lwPolylinePoints converts a DXF LWPOLYLINE entity to points.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylinePoints(lw *entity.LwPolyline) []model.Point {
	var pts []model.Point

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			// This vertex has a bulge: interpolate an arc to the next vertex
			nextIdx := (i + 1) % len(lw.Vertices)
			next := model.Point{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// Add all but the last point (next vertex will be added naturally)
			pts = append(pts, arcPts[:len(arcPts)-1]...)
		} else {
			pts = append(pts, current)
		}
	}

	return pts
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 model.Point, bulge float64, numSegments int) []model.Point {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []model.Point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Center lies on the chord's perpendicular bisector
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		// Clockwise arc
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]model.Point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, model.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []model.Point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Point{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []model.Point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines. Open
// chains are dropped. tolerance is the maximum distance between endpoints to
// consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]model.Point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]model.Point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	// Largest first for consistent ordering
	sort.Slice(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o []model.Point) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}
