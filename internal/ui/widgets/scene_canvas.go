package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seatmap/internal/editor"
	"github.com/piwi3910/seatmap/internal/model"
)

// Seat colors by status, used when a seat has no fill of its own.
var statusColors = map[model.SeatStatus]color.NRGBA{
	model.StatusAvailable: {R: 76, G: 175, B: 80, A: 200}, // green
	model.StatusReserved:  {R: 255, G: 152, B: 0, A: 200}, // orange
	model.StatusSold:      {R: 244, G: 67, B: 54, A: 200}, // red
}

var (
	selectionColor = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	previewFill    = color.NRGBA{R: 33, G: 150, B: 243, A: 40}
	canvasBorder   = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)

type dragMode int

const (
	dragNone dragMode = iota
	dragMove
	dragGrid
)

// SceneCanvas draws the session's scene scaled to fit and turns taps and
// drags into session operations for the active tool. Rotation is not drawn;
// rotated objects show their bounding box when selected.
type SceneCanvas struct {
	widget.BaseWidget
	session *editor.Session

	// OnChanged is called after a tap or drag has been handled.
	OnChanged func()
	// OnEditLabel is called when a label is double-tapped.
	OnEditLabel func(*model.Object)
	// ShowSeatNumbers draws each seat's number inside it.
	ShowSeatNumbers bool

	drag      dragMode
	dragStart model.Point
	dragEnd   model.Point
}

// NewSceneCanvas creates a canvas for session.
func NewSceneCanvas(session *editor.Session) *SceneCanvas {
	sc := &SceneCanvas{session: session, ShowSeatNumbers: true}
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetSession switches the canvas to another session.
func (sc *SceneCanvas) SetSession(session *editor.Session) {
	sc.session = session
	sc.drag = dragNone
	sc.Refresh()
}

func (sc *SceneCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newSceneCanvasRenderer(sc)
}

// scale returns the factor from scene units to widget units.
func (sc *SceneCanvas) scale() float32 {
	return fitScale(sc.session.Scene(), sc.Size())
}

func fitScale(scene *model.Scene, size fyne.Size) float32 {
	if scene.Width <= 0 || scene.Height <= 0 || size.Width <= 0 || size.Height <= 0 {
		return 1
	}
	sx := size.Width / float32(scene.Width)
	sy := size.Height / float32(scene.Height)
	return float32(math.Min(float64(sx), float64(sy)))
}

// ToScene converts a widget position to scene coordinates.
func (sc *SceneCanvas) ToScene(pos fyne.Position) model.Point {
	s := sc.scale()
	return model.Point{X: float64(pos.X / s), Y: float64(pos.Y / s)}
}

// Tapped runs the active tool at the tapped point.
func (sc *SceneCanvas) Tapped(ev *fyne.PointEvent) {
	sc.session.FinishEditing()
	sc.session.Click(sc.ToScene(ev.Position))
	sc.changed()
}

// DoubleTapped opens the label under the pointer for editing.
func (sc *SceneCanvas) DoubleTapped(ev *fyne.PointEvent) {
	o := sc.session.SelectAt(sc.ToScene(ev.Position))
	if o != nil && o.IsLabel() && sc.OnEditLabel != nil {
		sc.OnEditLabel(o)
	}
	sc.changed()
}

// Dragged moves the selection, or sizes a seat grid with the multiple-seat tool.
func (sc *SceneCanvas) Dragged(ev *fyne.DragEvent) {
	s := sc.scale()
	dx := float64(ev.Dragged.DX / s)
	dy := float64(ev.Dragged.DY / s)
	p := sc.ToScene(ev.Position)

	if sc.drag == dragNone {
		start := model.Point{X: p.X - dx, Y: p.Y - dy}
		sc.dragStart = start
		switch sc.session.ToolMode() {
		case editor.ToolMultipleSeat:
			sc.drag = dragGrid
		case editor.ToolSelect:
			if !sc.isSelectedAt(start) {
				sc.session.SelectAt(start)
			}
			sc.drag = dragMove
		default:
			return
		}
	}

	switch sc.drag {
	case dragGrid:
		sc.dragEnd = p
		sc.Refresh()
	case dragMove:
		sc.session.DragSelection(dx, dy)
	}
}

// DragEnd commits the drag.
func (sc *SceneCanvas) DragEnd() {
	switch sc.drag {
	case dragGrid:
		sc.session.GenerateSeatGrid(sc.dragStart, sc.dragEnd)
	case dragMove:
		sc.session.EndDrag()
	}
	sc.drag = dragNone
	sc.Refresh()
	sc.changed()
}

func (sc *SceneCanvas) isSelectedAt(p model.Point) bool {
	for _, o := range sc.session.Selected() {
		if o.ContainsPoint(p) {
			return true
		}
	}
	return false
}

func (sc *SceneCanvas) changed() {
	if sc.OnChanged != nil {
		sc.OnChanged()
	}
}

type sceneCanvasRenderer struct {
	sc      *SceneCanvas
	objects []fyne.CanvasObject
}

func newSceneCanvasRenderer(sc *SceneCanvas) *sceneCanvasRenderer {
	r := &sceneCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

func (r *sceneCanvasRenderer) rebuild() {
	r.objects = nil
	scene := r.sc.session.Scene()
	scale := r.sc.scale()

	canvasW := float32(scene.Width) * scale
	canvasH := float32(scene.Height) * scale

	bgColor, ok := model.ParseColor(scene.Background)
	if !ok || bgColor.A == 0 {
		bgColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	bg := canvas.NewRectangle(bgColor)
	bg.StrokeColor = canvasBorder
	bg.StrokeWidth = 1
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	for _, o := range scene.Objects {
		r.objects = append(r.objects, drawObject(o, scale, r.sc.ShowSeatNumbers)...)
	}

	for _, o := range r.sc.session.Selected() {
		b := o.Frame()
		if o.Geometry.Angle != 0 {
			b = o.BoundingRect()
		}
		outline := canvas.NewRectangle(color.Transparent)
		outline.StrokeColor = selectionColor
		outline.StrokeWidth = 1.5
		outline.Move(fyne.NewPos(float32(b.Min.X)*scale-2, float32(b.Min.Y)*scale-2))
		outline.Resize(fyne.NewSize(float32(b.Width())*scale+4, float32(b.Height())*scale+4))
		r.objects = append(r.objects, outline)
	}

	if r.sc.drag == dragGrid {
		r.objects = append(r.objects, gridPreview(r.sc.dragStart, r.sc.dragEnd, r.sc.session.Options().GridPitch, scale)...)
	}
}

func drawObject(o *model.Object, scale float32, numbers bool) []fyne.CanvasObject {
	g := o.Geometry
	pos := fyne.NewPos(float32(g.Left)*scale, float32(g.Top)*scale)
	size := fyne.NewSize(float32(g.RenderedWidth())*scale, float32(g.RenderedHeight())*scale)
	stroke := paint(o.Style.Stroke, color.Black)
	strokeW := float32(o.Style.StrokeWidth) * scale

	switch {
	case o.IsSeat():
		fill, ok := model.ParseColor(o.Style.Fill)
		if !ok || fill.A == 0 {
			fill = statusColors[o.Seat.Status]
		}
		c := canvas.NewCircle(fill)
		c.StrokeColor = stroke
		c.StrokeWidth = strokeW
		c.Move(pos)
		c.Resize(size)
		out := []fyne.CanvasObject{c}
		if numbers && o.Seat.SeatNumber != "" && size.Width > 14 {
			t := canvas.NewText(o.Seat.SeatNumber, color.Black)
			t.TextSize = size.Height * 0.45
			t.Alignment = fyne.TextAlignCenter
			t.Move(fyne.NewPos(pos.X, pos.Y+size.Height*0.2))
			t.Resize(fyne.NewSize(size.Width, size.Height*0.6))
			out = append(out, t)
		}
		return out

	case o.IsZone():
		rect := canvas.NewRectangle(paint(o.Style.Fill, color.Transparent))
		rect.StrokeColor = stroke
		rect.StrokeWidth = strokeW
		rect.CornerRadius = float32(math.Min(o.Zone.RX, o.Zone.RY)) * scale
		rect.Move(pos)
		rect.Resize(size)
		out := []fyne.CanvasObject{rect}
		if o.Zone.Name != "" {
			t := canvas.NewText(o.Zone.Name, color.NRGBA{R: 60, G: 60, B: 60, A: 255})
			t.TextSize = 11
			t.TextStyle = fyne.TextStyle{Bold: true}
			t.Move(pos.Add(fyne.NewPos(4, 2)))
			out = append(out, t)
		}
		return out

	case o.IsLabel():
		t := canvas.NewText(o.Label.Text, paint(o.Style.Fill, color.Black))
		t.TextSize = float32(o.Label.FontSize*g.ScaleY) * scale
		t.TextStyle = fyne.TextStyle{Bold: o.Label.FontWeight == "bold"}
		t.Move(pos)
		out := []fyne.CanvasObject{t}
		if o.Editing {
			caret := canvas.NewRectangle(color.Transparent)
			caret.StrokeColor = selectionColor
			caret.StrokeWidth = 1
			caret.Move(pos)
			caret.Resize(size)
			out = append(out, caret)
		}
		return out
	}
	return nil
}

// gridPreview shows the drag rectangle and the seat count it will produce.
func gridPreview(start, end model.Point, pitch float64, scale float32) []fyne.CanvasObject {
	b := model.BoundsOf([]model.Point{start, end})
	rect := canvas.NewRectangle(previewFill)
	rect.StrokeColor = selectionColor
	rect.StrokeWidth = 1
	rect.Move(fyne.NewPos(float32(b.Min.X)*scale, float32(b.Min.Y)*scale))
	rect.Resize(fyne.NewSize(float32(b.Width())*scale, float32(b.Height())*scale))

	rows, cols := editor.GridSize(start, end, pitch)
	label := canvas.NewText(fmt.Sprintf("%d x %d", rows, cols), selectionColor)
	label.TextSize = 11
	label.Move(fyne.NewPos(float32(b.Max.X)*scale+4, float32(b.Max.Y)*scale+2))
	return []fyne.CanvasObject{rect, label}
}

func paint(s string, fallback color.Color) color.Color {
	c, ok := model.ParseColor(s)
	if !ok || s == "" {
		return fallback
	}
	return c
}

func (r *sceneCanvasRenderer) Layout(size fyne.Size)        { r.rebuild() }
func (r *sceneCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *sceneCanvasRenderer) Destroy()                     {}
func (r *sceneCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *sceneCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}
