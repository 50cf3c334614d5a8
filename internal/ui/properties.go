package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seatmap/internal/editor"
	"github.com/piwi3910/seatmap/internal/model"
)

var fieldLabels = map[editor.Field]string{
	editor.FieldLeft:        "Left",
	editor.FieldTop:         "Top",
	editor.FieldWidth:       "Width",
	editor.FieldHeight:      "Height",
	editor.FieldAngle:       "Angle",
	editor.FieldFill:        "Fill",
	editor.FieldStroke:      "Stroke",
	editor.FieldStrokeWidth: "Stroke Width",
	editor.FieldRadius:      "Radius",
	editor.FieldSeatNumber:  "Seat Number",
	editor.FieldCategory:    "Category",
	editor.FieldPrice:       "Price",
	editor.FieldStatus:      "Status",
	editor.FieldRX:          "Corner RX",
	editor.FieldRY:          "Corner RY",
	editor.FieldName:        "Zone Name",
	editor.FieldText:        "Text",
	editor.FieldFontSize:    "Font Size",
	editor.FieldFontFamily:  "Font Family",
	editor.FieldFontWeight:  "Font Weight",
}

var textFields = map[editor.Field]bool{
	editor.FieldFill:       true,
	editor.FieldStroke:     true,
	editor.FieldSeatNumber: true,
	editor.FieldCategory:   true,
	editor.FieldStatus:     true,
	editor.FieldName:       true,
	editor.FieldText:       true,
	editor.FieldFontFamily: true,
	editor.FieldFontWeight: true,
}

// formatField renders a merged value for an entry. Mixed and absent fields
// render empty.
func formatField(m editor.MergedProperties, f editor.Field) string {
	if s, ok := m.String(f); ok {
		return s
	}
	if v, ok := m.Float(f); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// buildProperties turns edited panel values into a partial update. A value
// equal to the merged one is skipped, as is an empty value for a mixed field.
func buildProperties(m editor.MergedProperties, values map[editor.Field]string) (editor.Properties, error) {
	var p editor.Properties
	for _, f := range editor.Fields {
		raw, ok := values[f]
		if !ok {
			continue
		}
		if _, present := m.Get(f); !present {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == formatField(m, f) {
			continue
		}
		if raw == "" && !textFields[f] {
			continue
		}
		if textFields[f] {
			if m.IsMixed(f) && raw == "" {
				continue
			}
			setText(&p, f, raw)
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return editor.Properties{}, &model.ValidationError{
				Field: fieldLabels[f], Value: raw, Reason: "not a number", Err: err,
			}
		}
		setNumber(&p, f, v)
	}
	return p, nil
}

func setText(p *editor.Properties, f editor.Field, v string) {
	switch f {
	case editor.FieldFill:
		p.Fill = editor.Ptr(v)
	case editor.FieldStroke:
		p.Stroke = v
	case editor.FieldSeatNumber:
		p.SeatNumber = editor.Ptr(v)
	case editor.FieldCategory:
		p.Category = editor.Ptr(v)
	case editor.FieldStatus:
		p.Status = editor.Ptr(model.SeatStatus(v))
	case editor.FieldName:
		p.Name = editor.Ptr(v)
	case editor.FieldText:
		p.Text = editor.Ptr(v)
	case editor.FieldFontFamily:
		p.FontFamily = editor.Ptr(v)
	case editor.FieldFontWeight:
		p.FontWeight = editor.Ptr(v)
	}
}

func setNumber(p *editor.Properties, f editor.Field, v float64) {
	switch f {
	case editor.FieldLeft:
		p.Left = &v
	case editor.FieldTop:
		p.Top = &v
	case editor.FieldWidth:
		p.Width = &v
	case editor.FieldHeight:
		p.Height = &v
	case editor.FieldAngle:
		p.Angle = &v
	case editor.FieldStrokeWidth:
		p.StrokeWidth = &v
	case editor.FieldRadius:
		p.Radius = &v
	case editor.FieldPrice:
		p.Price = &v
	case editor.FieldRX:
		p.RX = &v
	case editor.FieldRY:
		p.RY = &v
	case editor.FieldFontSize:
		p.FontSize = &v
	}
}

// ─── Properties Panel ──────────────────────────────────────

// propertiesPanel edits the merged properties of the selection.
type propertiesPanel struct {
	app     *App
	box     *fyne.Container
	merged  editor.MergedProperties
	entries map[editor.Field]*widget.Entry
	status  *widget.Select
}

func newPropertiesPanel(a *App) *propertiesPanel {
	p := &propertiesPanel{app: a, box: container.NewVBox()}
	p.update(editor.MergedProperties{})
	return p
}

func (p *propertiesPanel) object() fyne.CanvasObject {
	return container.NewBorder(
		widget.NewLabelWithStyle("Properties", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(p.box),
	)
}

// update rebuilds the rows for the fields the selection carries.
func (p *propertiesPanel) update(m editor.MergedProperties) {
	p.merged = m
	p.entries = map[editor.Field]*widget.Entry{}
	p.status = nil
	p.box.RemoveAll()

	if len(m) == 0 {
		p.box.Add(widget.NewLabel("Nothing selected."))
		p.box.Refresh()
		return
	}

	grid := container.NewGridWithColumns(2)
	for _, f := range editor.Fields {
		if _, ok := m.Get(f); !ok {
			continue
		}
		grid.Add(widget.NewLabel(fieldLabels[f]))
		if f == editor.FieldStatus {
			names := make([]string, len(model.SeatStatuses))
			for i, s := range model.SeatStatuses {
				names[i] = string(s)
			}
			p.status = widget.NewSelect(names, nil)
			if m.IsMixed(f) {
				p.status.PlaceHolder = editor.Mixed
			} else {
				p.status.Selected = formatField(m, f)
			}
			grid.Add(p.status)
			continue
		}
		e := widget.NewEntry()
		if m.IsMixed(f) {
			e.SetPlaceHolder(editor.Mixed)
		} else {
			e.SetText(formatField(m, f))
		}
		e.OnSubmitted = func(string) { p.apply() }
		p.entries[f] = e
		grid.Add(e)
	}

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), p.apply)
	p.box.Add(widget.NewLabel(fmt.Sprintf("%d selected", len(p.app.session.Selected()))))
	p.box.Add(grid)
	p.box.Add(applyBtn)
	p.box.Refresh()
}

func (p *propertiesPanel) values() map[editor.Field]string {
	out := make(map[editor.Field]string, len(p.entries)+1)
	for f, e := range p.entries {
		out[f] = e.Text
	}
	if p.status != nil {
		out[editor.FieldStatus] = p.status.Selected
	}
	return out
}

func (p *propertiesPanel) apply() {
	props, err := buildProperties(p.merged, p.values())
	if err != nil {
		dialog.ShowError(err, p.app.window)
		return
	}
	if err := p.app.session.UpdateObject(props); err != nil {
		dialog.ShowError(err, p.app.window)
	}
	p.app.refreshChrome()
}
