// Package importer provides CSV, Excel and DXF import of seat lists and
// venue drawings. Tabular imports support automatic delimiter detection,
// flexible column mapping and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/piwi3910/seatmap/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Seats without a
// number are numbered by the editor when they are added.
type ImportResult struct {
	Objects  []*model.Object
	Errors   []string
	Warnings []string
}

// Seats returns the imported seats.
func (r ImportResult) Seats() []*model.Object {
	var out []*model.Object
	for _, o := range r.Objects {
		if o.IsSeat() {
			out = append(out, o)
		}
	}
	return out
}

// Options controls where imported seats without coordinates are placed.
type Options struct {
	Origin     model.Point
	Pitch      float64 // distance between generated seat positions
	Columns    int     // seats per generated row
	SeatRadius float64
}

// DefaultOptions returns the placement used when none is configured.
func DefaultOptions() Options {
	return Options{
		Origin:     model.Point{X: 40, Y: 40},
		Pitch:      60,
		Columns:    10,
		SeatRadius: model.DefaultSeatRadius,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Pitch <= 0 {
		o.Pitch = d.Pitch
	}
	if o.Columns <= 0 {
		o.Columns = d.Columns
	}
	if o.SeatRadius <= 0 {
		o.SeatRadius = d.SeatRadius
	}
	return o
}

// position returns the generated position of the n-th seat without coordinates.
func (o Options) position(n int) model.Point {
	return model.Point{
		X: o.Origin.X + float64(n%o.Columns)*o.Pitch,
		Y: o.Origin.Y + float64(n/o.Columns)*o.Pitch,
	}
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Number   int
	Category int
	Price    int
	Status   int
	X        int
	Y        int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"number":   {"number", "seat", "seat number", "seat no", "seat_no", "seatnumber", "no", "#"},
	"category": {"category", "cat", "class", "section", "tier"},
	"price":    {"price", "cost", "fare", "amount"},
	"status":   {"status", "state", "availability"},
	"x":        {"x", "left", "pos x"},
	"y":        {"y", "top", "pos y"},
}

// seatRow is one parsed row, checked with struct tags before it becomes a seat.
type seatRow struct {
	Number   string  `validate:"required,max=16"`
	Category string  `validate:"max=32"`
	Price    float64 `validate:"gte=0"`
	Status   string  `validate:"omitempty,oneof=available reserved sold"`
}

var rowValidator = validator.New()

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Number: -1, Category: -1, Price: -1, Status: -1, X: -1, Y: -1}
	slots := map[string]*int{
		"number":   &mapping.Number,
		"category": &mapping.Category,
		"price":    &mapping.Price,
		"status":   &mapping.Status,
		"x":        &mapping.X,
		"y":        &mapping.Y,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Number, Category, Price, Status, X, Y
		return ColumnMapping{Number: 0, Category: 1, Price: 2, Status: 3, X: 4, Y: 5}, false
	}
	return mapping, true
}

// ParseStatus converts a status cell to a seat status. Empty means available.
func ParseStatus(s string) (model.SeatStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "available", "free", "open", "a":
		return model.StatusAvailable, true
	case "reserved", "held", "hold", "r":
		return model.StatusReserved, true
	case "sold", "taken", "booked", "s":
		return model.StatusSold, true
	default:
		return model.StatusAvailable, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloatCell(row []string, idx int) (float64, bool, error) {
	s := getCell(row, idx)
	if s == "" {
		return 0, false, nil
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "$"), "€")
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// parseRow extracts a seat from a row using the given column mapping.
// Returns the seat, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, seatIndex int, opts Options) (*model.Object, string, string) {
	var warning string

	price, _, err := parseFloatCell(row, mapping.Price)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid price '%s'", rowLabel, getCell(row, mapping.Price)), ""
	}

	statusCell := getCell(row, mapping.Status)
	status, ok := ParseStatus(statusCell)
	if !ok {
		warning = fmt.Sprintf("%s: Unknown status '%s', defaulting to available", rowLabel, statusCell)
	}

	sr := seatRow{
		Number:   getCell(row, mapping.Number),
		Category: getCell(row, mapping.Category),
		Price:    price,
		Status:   string(status),
	}
	if err := rowValidator.Struct(sr); err != nil {
		return nil, fmt.Sprintf("%s: %s", rowLabel, describeValidation(err)), ""
	}

	pos := opts.position(seatIndex)
	x, hasX, errX := parseFloatCell(row, mapping.X)
	y, hasY, errY := parseFloatCell(row, mapping.Y)
	switch {
	case errX != nil || errY != nil:
		return nil, fmt.Sprintf("%s: Invalid seat coordinates", rowLabel), ""
	case hasX && hasY:
		pos = model.Point{X: x, Y: y}
	case hasX != hasY:
		warning = fmt.Sprintf("%s: Only one coordinate given, placing seat on the grid", rowLabel)
	}

	seat := model.NewSeat(pos, sr.Number)
	seat.SetRadius(opts.SeatRadius)
	if sr.Category != "" {
		seat.Seat.Category = sr.Category
	}
	seat.Seat.Price = sr.Price
	seat.Seat.Status = status
	return seat, "", warning
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("Missing %s", strings.ToLower(fe.Field())))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must not be negative", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s is too long", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("Invalid %s '%v'", strings.ToLower(fe.Field()), fe.Value()))
		}
	}
	return strings.Join(msgs, "; ")
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports seats from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, opts Options) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings, opts)
}

// ImportCSVFromReader imports seats from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil, opts)
}

// ImportExcel imports seats from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, opts Options) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil, opts)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a seat.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, opts Options) ImportResult {
	opts = opts.withDefaults()
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Number == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Number")
			return result
		}
	}

	seen := make(map[string]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		seat, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Objects), opts)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if first, dup := seen[seat.Seat.SeatNumber]; dup {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: Duplicate seat number '%s' (first seen on %s)", rowLabel, seat.Seat.SeatNumber, first))
			continue
		}
		seen[seat.Seat.SeatNumber] = rowLabel
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Objects = append(result.Objects, seat)
	}

	return result
}
