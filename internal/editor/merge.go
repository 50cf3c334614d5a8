package editor

import (
	"github.com/piwi3910/seatmap/internal/model"
)

// Field names a property shown in the properties panel.
type Field string

const (
	FieldLeft        Field = "left"
	FieldTop         Field = "top"
	FieldWidth       Field = "width"
	FieldHeight      Field = "height"
	FieldAngle       Field = "angle"
	FieldFill        Field = "fill"
	FieldStroke      Field = "stroke"
	FieldStrokeWidth Field = "strokeWidth"
	FieldRadius      Field = "radius"
	FieldSeatNumber  Field = "seatNumber"
	FieldCategory    Field = "category"
	FieldPrice       Field = "price"
	FieldStatus      Field = "status"
	FieldRX          Field = "rx"
	FieldRY          Field = "ry"
	FieldName        Field = "name"
	FieldText        Field = "text"
	FieldFontSize    Field = "fontSize"
	FieldFontFamily  Field = "fontFamily"
	FieldFontWeight  Field = "fontWeight"
)

// Fields lists every merged field in panel order.
var Fields = []Field{
	FieldLeft, FieldTop, FieldWidth, FieldHeight, FieldAngle,
	FieldFill, FieldStroke, FieldStrokeWidth,
	FieldRadius, FieldSeatNumber, FieldCategory, FieldPrice, FieldStatus,
	FieldRX, FieldRY, FieldName,
	FieldText, FieldFontSize, FieldFontFamily, FieldFontWeight,
}

// Mixed is reported for a field whose value differs across the selection.
const Mixed = "mixed"

// MergedValue is one field of a merged view.
type MergedValue struct {
	Value any
	Mixed bool
}

// MergedProperties is the combined view of the selected objects. Fields that
// no selected object carries are absent.
type MergedProperties map[Field]MergedValue

// Get returns the merged value for f and whether any selected object carries it.
func (m MergedProperties) Get(f Field) (MergedValue, bool) {
	v, ok := m[f]
	return v, ok
}

// Value returns the common value of f, Mixed when values differ, or nil.
func (m MergedProperties) Value(f Field) any {
	v, ok := m[f]
	if !ok {
		return nil
	}
	if v.Mixed {
		return Mixed
	}
	return v.Value
}

// IsMixed reports whether f differs across the selection.
func (m MergedProperties) IsMixed(f Field) bool {
	return m[f].Mixed
}

// Float returns the common numeric value of f. ok is false when f is absent,
// mixed or not numeric.
func (m MergedProperties) Float(f Field) (float64, bool) {
	v, present := m[f]
	if !present || v.Mixed {
		return 0, false
	}
	x, ok := v.Value.(float64)
	return x, ok
}

// String returns the common string value of f. ok is false when f is absent,
// mixed or not a string.
func (m MergedProperties) String(f Field) (string, bool) {
	v, present := m[f]
	if !present || v.Mixed {
		return "", false
	}
	switch s := v.Value.(type) {
	case string:
		return s, true
	case model.SeatStatus:
		return string(s), true
	}
	return "", false
}

// MergeProperties combines the observed fields of objs. Width and height are
// reported as rendered size.
func MergeProperties(objs []*model.Object) MergedProperties {
	out := make(MergedProperties)
	for _, o := range objs {
		for f, v := range fieldValues(o) {
			cur, seen := out[f]
			switch {
			case !seen:
				out[f] = MergedValue{Value: v}
			case cur.Mixed:
			case cur.Value != v:
				out[f] = MergedValue{Mixed: true}
			}
		}
	}
	return out
}

func fieldValues(o *model.Object) map[Field]any {
	g := o.Geometry
	vals := map[Field]any{
		FieldLeft:        g.Left,
		FieldTop:         g.Top,
		FieldWidth:       g.RenderedWidth(),
		FieldHeight:      g.RenderedHeight(),
		FieldAngle:       g.Angle,
		FieldFill:        o.Style.Fill,
		FieldStroke:      o.Style.Stroke,
		FieldStrokeWidth: o.Style.StrokeWidth,
	}
	switch {
	case o.IsSeat():
		vals[FieldRadius] = o.Seat.Radius
		vals[FieldSeatNumber] = o.Seat.SeatNumber
		vals[FieldCategory] = o.Seat.Category
		vals[FieldPrice] = o.Seat.Price
		vals[FieldStatus] = o.Seat.Status
	case o.IsZone():
		vals[FieldRX] = o.Zone.RX
		vals[FieldRY] = o.Zone.RY
		vals[FieldName] = o.Zone.Name
	case o.IsLabel():
		vals[FieldText] = o.Label.Text
		vals[FieldFontSize] = o.Label.FontSize
		vals[FieldFontFamily] = o.Label.FontFamily
		vals[FieldFontWeight] = o.Label.FontWeight
	}
	return vals
}
