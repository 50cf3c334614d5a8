// Package export writes seat layouts to printable and spreadsheet formats.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/seatmap/internal/model"
)

// ErrEmptyLayout is returned when there is nothing to export.
var ErrEmptyLayout = errors.New("layout has no objects")

// rgb is a PDF paint color.
type rgb struct {
	R, G, B int
}

// statusColors mirrors the seat colors used by the canvas widget.
var statusColors = map[model.SeatStatus]rgb{
	model.StatusAvailable: {R: 76, G: 175, B: 80},
	model.StatusReserved:  {R: 255, G: 152, B: 0},
	model.StatusSold:      {R: 244, G: 67, B: 54},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportLayoutPDF renders the scene on one page, scaled to fit, followed by
// a summary page with seat counts and price totals.
func ExportLayoutPDF(path, name string, scene *model.Scene) error {
	if scene == nil || len(scene.Objects) == 0 {
		return ErrEmptyLayout
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, name, scene)

	pdf.AddPage()
	renderSummaryPage(pdf, name, scene.Stats())

	return pdf.OutputFileAndClose(path)
}

func renderLayoutPage(pdf *fpdf.Fpdf, name string, scene *model.Scene) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f)", name, scene.Width, scene.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	st := scene.Stats()
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Seats: %d | Available: %d | Reserved: %d | Sold: %d",
		st.Seats, st.ByStatus[model.StatusAvailable], st.ByStatus[model.StatusReserved], st.ByStatus[model.StatusSold])
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := fitScale(scene.Width, scene.Height, drawWidth, drawHeight)

	canvasW := scene.Width * scale
	canvasH := scene.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	bg := parseRGB(scene.Background, rgb{255, 255, 255})
	pdf.SetFillColor(bg.R, bg.G, bg.B)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, o := range scene.Objects {
		x := offsetX + o.Geometry.Left*scale
		y := offsetY + o.Geometry.Top*scale

		pdf.TransformBegin()
		if o.Geometry.Angle != 0 {
			// fpdf rotates counter-clockwise.
			pdf.TransformRotate(-o.Geometry.Angle, x, y)
		}
		switch {
		case o.IsZone():
			drawZone(pdf, o, x, y, scale)
		case o.IsSeat():
			drawSeat(pdf, o, x, y, scale)
		case o.IsLabel():
			drawLabel(pdf, o, x, y, scale)
		}
		pdf.TransformEnd()
	}

	drawStatusLegend(pdf, offsetY+canvasH+5)
}

func drawZone(pdf *fpdf.Fpdf, o *model.Object, x, y, scale float64) {
	w := o.Geometry.RenderedWidth() * scale
	h := o.Geometry.RenderedHeight() * scale

	style := "D"
	if fill, ok := paint(o.Style.Fill); ok {
		pdf.SetFillColor(fill.R, fill.G, fill.B)
		style = "FD"
	}
	stroke := parseRGB(o.Style.Stroke, rgb{0, 0, 0})
	pdf.SetDrawColor(stroke.R, stroke.G, stroke.B)
	pdf.SetLineWidth(math.Max(o.Style.StrokeWidth*scale, 0.1))

	r := math.Min(o.Zone.RX, o.Zone.RY) * scale
	if r > 0 {
		pdf.RoundedRect(x, y, w, h, math.Min(r, math.Min(w, h)/2), "1234", style)
	} else {
		pdf.Rect(x, y, w, h, style)
	}

	if o.Zone.Name != "" && w > 15 && h > 6 {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetTextColor(60, 60, 60)
		nameW := pdf.GetStringWidth(o.Zone.Name)
		if nameW < w-2 {
			pdf.SetXY(x+(w-nameW)/2, y+1)
			pdf.CellFormat(nameW, 4, o.Zone.Name, "", 0, "C", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}
}

func drawSeat(pdf *fpdf.Fpdf, o *model.Object, x, y, scale float64) {
	r := o.Seat.Radius * scale
	col, ok := statusColors[o.Seat.Status]
	if !ok {
		col = statusColors[model.StatusAvailable]
	}
	pdf.SetFillColor(col.R, col.G, col.B)
	stroke := parseRGB(o.Style.Stroke, rgb{30, 30, 30})
	pdf.SetDrawColor(stroke.R, stroke.G, stroke.B)
	pdf.SetLineWidth(0.2)
	pdf.Circle(x+r, y+r, r, "FD")

	if o.Seat.SeatNumber == "" || r < 1.5 {
		return
	}
	pdf.SetFont("Helvetica", "", seatFontSize(r))
	pdf.SetTextColor(0, 0, 0)
	numW := pdf.GetStringWidth(o.Seat.SeatNumber)
	if numW < 2*r {
		pdf.SetXY(x+r-numW/2, y+r-1.5)
		pdf.CellFormat(numW, 3, o.Seat.SeatNumber, "", 0, "C", false, 0, "")
	}
}

func drawLabel(pdf *fpdf.Fpdf, o *model.Object, x, y, scale float64) {
	// Scaled font size is in mm; 1pt is 0.3528mm.
	size := o.Label.FontSize * o.Geometry.ScaleY * scale / 0.3528
	if size < 2 {
		return
	}
	style := ""
	if o.Label.FontWeight == "bold" {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, math.Min(size, 48))
	col := parseRGB(o.Style.Fill, rgb{0, 0, 0})
	pdf.SetTextColor(col.R, col.G, col.B)
	pdf.SetXY(x, y)
	pdf.CellFormat(o.Geometry.RenderedWidth()*scale, o.Geometry.RenderedHeight()*scale, o.Label.Text, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawStatusLegend(pdf *fpdf.Fpdf, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Legend:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	xPos := marginLeft + 22
	for _, status := range model.SeatStatuses {
		col := statusColors[status]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Circle(xPos+1.5, startY+2, 1.5, "F")
		label := string(status)
		pdf.SetXY(xPos+4, startY)
		w := pdf.GetStringWidth(label) + 2
		pdf.CellFormat(w, 4, label, "", 0, "L", false, 0, "")
		xPos += w + 8
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, name string, st model.SceneStats) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, name+" Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Seats", fmt.Sprintf("%d", st.Seats)},
		{"Zones", fmt.Sprintf("%d", st.Zones)},
		{"Labels", fmt.Sprintf("%d", st.Labels)},
		{"Total Value", formatMoney(st.Revenue)},
		{"Sold Value", formatMoney(st.SoldValue)},
		{"Open Value", formatMoney(st.OpenValue)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if st.Seats == 0 {
		return
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Seats by Category", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 30}
	headers := []string{"Category", "Seats"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, cat := range st.Categories() {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		label := cat
		if label == "" {
			label = "(none)"
		}
		xPos = marginLeft
		for j, cell := range []string{label, fmt.Sprintf("%d", st.ByCategory[cat])} {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		if y > pageHeight-marginBottom-10 {
			break
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Seatmap", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// fitScale returns the factor that fits a w x h canvas inside the area.
func fitScale(w, h, areaW, areaH float64) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return math.Min(areaW/w, areaH/h)
}

// seatFontSize returns a font size that fits a seat number inside radius r (mm).
func seatFontSize(r float64) float64 {
	switch {
	case r > 6:
		return 8
	case r > 3:
		return 6
	default:
		return 4
	}
}

// paint parses a fill color; transparent and unknown values report false.
func paint(s string) (rgb, bool) {
	c, ok := model.ParseColor(s)
	if !ok || c.A == 0 {
		return rgb{}, false
	}
	return rgb{R: int(c.R), G: int(c.G), B: int(c.B)}, true
}

func parseRGB(s string, fallback rgb) rgb {
	if c, ok := paint(s); ok {
		return c
	}
	return fallback
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
