package export

import (
	"fmt"

	"github.com/piwi3910/seatmap/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by ExportSeatList.
const (
	SeatsSheet   = "Seats"
	SummarySheet = "Summary"
)

// seatListHeader matches the column names the importer recognises, so an
// exported list can be imported again.
var seatListHeader = []string{"Number", "Category", "Price", "Status", "X", "Y"}

// ExportSeatList writes every seat to an .xlsx workbook, one row per seat in
// z-order, plus a summary sheet with counts per status and category.
func ExportSeatList(path string, scene *model.Scene) error {
	if scene == nil {
		return ErrEmptyLayout
	}
	seats := scene.Seats()
	if len(seats) == 0 {
		return fmt.Errorf("no seats to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SeatsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(seats)+1)
	header := make([]interface{}, len(seatListHeader))
	for i, h := range seatListHeader {
		header[i] = h
	}
	rows = append(rows, header)
	for _, o := range seats {
		rows = append(rows, []interface{}{
			o.Seat.SeatNumber,
			o.Seat.Category,
			o.Seat.Price,
			string(o.Seat.Status),
			o.Geometry.Left,
			o.Geometry.Top,
		})
	}
	if err := writeRows(f, SeatsSheet, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(SeatsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	st := scene.Stats()
	summary := [][]interface{}{
		{"Seats", st.Seats},
		{"Total value", st.Revenue},
		{"Sold value", st.SoldValue},
		{"Open value", st.OpenValue},
		{},
		{"Status", "Seats"},
	}
	for _, status := range model.SeatStatuses {
		summary = append(summary, []interface{}{string(status), st.ByStatus[status]})
	}
	summary = append(summary, []interface{}{}, []interface{}{"Category", "Seats"})
	for _, cat := range st.Categories() {
		summary = append(summary, []interface{}{cat, st.ByCategory[cat]})
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell reference: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
