package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/seatmap/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// SeatTag holds the data encoded into each seat tag's QR code.
type SeatTag struct {
	Layout   string           `json:"layout"`
	Seat     string           `json:"seat"`
	Category string           `json:"category"`
	Price    float64          `json:"price"`
	Status   model.SeatStatus `json:"status"`
	ID       string           `json:"id"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectSeatTags returns one tag per numbered seat in z-order.
func CollectSeatTags(layout string, scene *model.Scene) []SeatTag {
	var tags []SeatTag
	for _, o := range scene.Seats() {
		if o.Seat.SeatNumber == "" {
			continue
		}
		tags = append(tags, SeatTag{
			Layout:   layout,
			Seat:     o.Seat.SeatNumber,
			Category: o.Seat.Category,
			Price:    o.Seat.Price,
			Status:   o.Seat.Status,
			ID:       o.ID,
		})
	}
	return tags
}

// ExportSeatTags generates a PDF of QR-coded seat tags on a standard label
// sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportSeatTags(path, layout string, scene *model.Scene) error {
	if scene == nil {
		return ErrEmptyLayout
	}
	tags := CollectSeatTags(layout, scene)
	if len(tags) == 0 {
		return fmt.Errorf("no numbered seats to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTag(pdf, x, y, i, tag); err != nil {
			return fmt.Errorf("failed to render tag for seat %q: %w", tag.Seat, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderTag(pdf *fpdf.Fpdf, x, y float64, idx int, tag SeatTag) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("failed to marshal seat tag: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", idx, tag.ID)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 6, truncate(pdf, "Seat "+tag.Seat, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(textX, y+labelPadding+7)
	pdf.CellFormat(textW, 3.5, truncate(pdf, tag.Category, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+11)
	pdf.CellFormat(textW, 3.5, formatMoney(tag.Price), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+15.5)
	pdf.CellFormat(textW, 3, truncate(pdf, tag.Layout, textW), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits width w in the current font.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
