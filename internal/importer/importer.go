// Package importer provides CSV and Excel import functionality for item lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/CrateStack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.Item
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Width     int
	Height    int
	Depth     int
	Weight    int
	Quantity  int
	Rotations int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":      {"name", "label", "item", "item name", "part", "description", "desc", "product"},
	"width":     {"width", "w", "x"},
	"height":    {"height", "h", "y"},
	"depth":     {"depth", "d", "length", "len", "z"},
	"weight":    {"weight", "wt", "kg", "mass"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"rotations": {"rotations", "rotation", "orientations", "orientation", "rot"},
}

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

		// Score: count how many rows have the same column count as the first row
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
	mapping := ColumnMapping{
		Name:      -1,
		Width:     -1,
		Height:    -1,
		Depth:     -1,
		Weight:    -1,
		Quantity:  -1,
		Rotations: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "name":
						if mapping.Name == -1 {
							mapping.Name = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "height":
						if mapping.Height == -1 {
							mapping.Height = i
						}
					case "depth":
						if mapping.Depth == -1 {
							mapping.Depth = i
						}
					case "weight":
						if mapping.Weight == -1 {
							mapping.Weight = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					case "rotations":
						if mapping.Rotations == -1 {
							mapping.Rotations = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping:
		// Name, Width, Height, Depth, Weight, Quantity, Rotations
		return ColumnMapping{
			Name:      0,
			Width:     1,
			Height:    2,
			Depth:     3,
			Weight:    4,
			Quantity:  5,
			Rotations: 6,
		}, false
	}

	return mapping, true
}

// parseRotationList converts a rotation cell like "WHD|HWD" into the allowed
// orientation set. Codes may be separated by pipes, slashes, commas, semicolons
// or spaces. An empty cell or "all" means every orientation is allowed (nil).
// Returns the set and a boolean indicating whether the cell was recognized.
func parseRotationList(s string) ([]model.Rotation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any", "free", "-":
		return nil, true
	case "none", "locked", "fixed", "upright":
		return []model.Rotation{model.RotationWHD}, true
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == '/' || r == ';' || r == '+' || r == ',' || r == ' '
	})

	var rots []model.Rotation
	seen := make(map[model.Rotation]bool)
	for _, f := range fields {
		code := strings.ToUpper(strings.TrimSpace(f))
		if code == "" {
			continue
		}
		found := false
		for _, r := range model.AllRotations {
			if r.String() == code {
				if !seen[r] {
					rots = append(rots, r)
					seen[r] = true
				}
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}

	if len(rots) == 0 {
		return nil, false
	}
	return rots, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an Item from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.Item, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Item %d", itemCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Item{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return model.Item{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Item{}, fmt.Sprintf("%s: Missing height value", rowLabel), ""
	}
	height, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		return model.Item{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
	}

	depthStr := getCell(row, mapping.Depth)
	if depthStr == "" {
		return model.Item{}, fmt.Sprintf("%s: Missing depth value", rowLabel), ""
	}
	depth, err := strconv.ParseFloat(depthStr, 64)
	if err != nil {
		return model.Item{}, fmt.Sprintf("%s: Invalid depth '%s'", rowLabel, depthStr), ""
	}

	// Weight and quantity are optional; missing cells default to 0 kg and 1.
	weight := 0.0
	if weightStr := getCell(row, mapping.Weight); weightStr != "" {
		weight, err = strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return model.Item{}, fmt.Sprintf("%s: Invalid weight '%s'", rowLabel, weightStr), ""
		}
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return model.Item{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
	}

	if width <= 0 || height <= 0 || depth <= 0 {
		return model.Item{}, fmt.Sprintf("%s: Width, height and depth must be positive", rowLabel), ""
	}
	if weight < 0 {
		return model.Item{}, fmt.Sprintf("%s: Weight must not be negative", rowLabel), ""
	}
	if qty <= 0 {
		return model.Item{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
	}

	item, err := model.NewItem(name, width, height, depth, weight, qty)
	if err != nil {
		return model.Item{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	// Optional allowed orientations
	var warning string
	rotStr := getCell(row, mapping.Rotations)
	if rotStr != "" {
		rots, ok := parseRotationList(rotStr)
		if ok {
			item.AllowedRotations = rots
		} else {
			warning = fmt.Sprintf("%s: Unknown rotation list '%s', allowing all orientations", rowLabel, rotStr)
		}
	}

	return item, "", warning
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

// ImportFile imports items from a file, picking the format by extension.
// CSV, XLSX and XLSM files are supported.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm", ".xltx":
		return ImportExcel(path)
	default:
		return ImportResult{
			Errors: []string{fmt.Sprintf("Unsupported file format '%s'", filepath.Ext(path))},
		}
	}
}

// ImportCSV imports items from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
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

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports items from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
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

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports items from an Excel (.xlsx, .xlsm) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
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

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into items.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if first row is numeric (positional mapping)
		if len(rows[0]) >= 4 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				// First column after the name is not numeric. Treat the row as
				// an unrecognized header and keep the positional mapping.
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Items))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}
