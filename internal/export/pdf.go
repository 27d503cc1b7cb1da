// Package export provides functionality for exporting pack results to
// various file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/CrateStack/internal/model"
)

// boxColor represents an RGB color for a placed box.
type boxColor struct {
	R, G, B int
}

// boxColors is the palette used for box fills. Copies of the same item share
// a color so the legend stays readable.
var boxColors = []boxColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
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
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	layerGap     = 8.0
	captionH     = 4.0
)

// ExportPDF generates a PDF document for a pack result. Each bin is rendered
// on its own page as a stack of top-view layer diagrams (one per stacking
// height), followed by a summary page with overall statistics.
func ExportPDF(path string, result model.PackResult, settings model.PackSettings) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	// Render each bin on its own page
	for i, br := range result.Bins {
		pdf.AddPage()
		renderBinPage(pdf, br, i+1)
	}

	// Summary page
	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// layerHeights returns the distinct stacking heights (bottom face Y values)
// in ascending order. Heights closer than Epsilon collapse into one layer.
func layerHeights(placements []model.Placement) []float64 {
	var heights []float64
	for _, p := range placements {
		found := false
		for _, h := range heights {
			if math.Abs(h-p.Position.Y) < model.Epsilon {
				found = true
				break
			}
		}
		if !found {
			heights = append(heights, p.Position.Y)
		}
	}
	sort.Float64s(heights)
	return heights
}

// layerPlacements filters the placements whose bottom face sits at the given height.
func layerPlacements(placements []model.Placement, height float64) []model.Placement {
	var out []model.Placement
	for _, p := range placements {
		if math.Abs(p.Position.Y-height) < model.Epsilon {
			out = append(out, p)
		}
	}
	return out
}

// colorIndexByName assigns each distinct item name a palette slot in
// first-seen order, so every copy of an item gets the same fill.
func colorIndexByName(placements []model.Placement) map[string]int {
	idx := make(map[string]int)
	for _, p := range placements {
		if _, ok := idx[p.Item.Name]; !ok {
			idx[p.Item.Name] = len(idx)
		}
	}
	return idx
}

// renderBinPage draws a single bin result on the current PDF page.
func renderBinPage(pdf *fpdf.Fpdf, br model.BinResult, binNum int) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d: %s (%g x %g x %g)", binNum, br.Bin.Name,
		br.Bin.Dim.Width, br.Bin.Dim.Height, br.Bin.Dim.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used volume: %.0f | Efficiency: %.1f%% | Load: %.1f / %.1f kg",
		len(br.Placements), br.UsedVolume(), br.Efficiency(), br.TotalWeight(), br.Bin.MaxWeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	heights := layerHeights(br.Placements)
	if len(heights) == 0 {
		return
	}

	colorIdx := colorIndexByName(br.Placements)

	// Grid layout for the layer diagrams
	cols := 1
	switch {
	case len(heights) > 4:
		cols = 3
	case len(heights) > 1:
		cols = 2
	}
	rows := (len(heights) + cols - 1) / cols

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	cellW := drawWidth / float64(cols)
	cellH := drawHeight / float64(rows)

	// Scale the bin floor (width x depth, seen from above) into a grid cell
	scaleX := (cellW - layerGap) / br.Bin.Dim.Width
	scaleY := (cellH - layerGap - captionH) / br.Bin.Dim.Depth
	scale := math.Min(scaleX, scaleY)

	canvasW := br.Bin.Dim.Width * scale
	canvasH := br.Bin.Dim.Depth * scale

	for li, h := range heights {
		col := li % cols
		row := li / cols
		cellX := marginLeft + float64(col)*cellW
		cellY := drawAreaTop + float64(row)*cellH

		offsetX := cellX + (cellW-canvasW)/2
		offsetY := cellY + captionH + 1

		// Caption
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(80, 80, 80)
		pdf.SetXY(cellX, cellY)
		caption := fmt.Sprintf("Layer %d at height %.1f", li+1, h)
		pdf.CellFormat(cellW, captionH, caption, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		drawLayer(pdf, br, layerPlacements(br.Placements, h), colorIdx, scale, offsetX, offsetY, canvasW, canvasH)
	}

	// Item legend at bottom of page
	drawItemLegend(pdf, br, colorIdx, drawAreaTop+drawHeight+3)
}

// drawLayer renders one top-view cross section: the bin floor outline with
// every box whose bottom face sits on this layer.
func drawLayer(pdf *fpdf.Fpdf, br model.BinResult, placements []model.Placement, colorIdx map[string]int, scale, offsetX, offsetY, canvasW, canvasH float64) {
	// Bin floor background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range placements {
		dim := p.PlacedDim()
		col := boxColors[colorIdx[p.Item.Name]%len(boxColors)]

		// Top view: X runs along the page, Z down the page
		bw := dim.Width * scale
		bd := dim.Depth * scale
		bx := offsetX + p.Position.X*scale
		by := offsetY + p.Position.Z*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bd, "FD")

		// Box label (only if the rectangle is large enough)
		if bw > 15 && bd > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(bw, bd))
			pdf.SetTextColor(0, 0, 0)

			label := p.Item.Name
			labelW := pdf.GetStringWidth(label)
			if labelW < bw-2 {
				pdf.SetXY(bx+(bw-labelW)/2, by+bd/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}
}

// drawItemLegend renders a compact legend of the bin's items, aggregated by
// name so a hundred copies take one entry.
func drawItemLegend(pdf *fpdf.Fpdf, br model.BinResult, colorIdx map[string]int, startY float64) {
	if len(br.Placements) == 0 {
		return
	}

	type legendEntry struct {
		name  string
		dim   model.Dimension
		count int
	}
	var entries []legendEntry
	seen := make(map[string]int)
	for _, p := range br.Placements {
		if i, ok := seen[p.Item.Name]; ok {
			entries[i].count++
			continue
		}
		seen[p.Item.Name] = len(entries)
		entries = append(entries, legendEntry{name: p.Item.Name, dim: p.Item.Dim, count: 1})
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items loaded:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, e := range entries {
		col := boxColors[colorIdx[e.name]%len(boxColors)]
		label := fmt.Sprintf("%s x%d (%s)", e.name, e.count, e.dim)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		// Label text
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, settings model.PackSettings) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Bins Used", fmt.Sprintf("%d", len(result.Bins))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Items Placed", fmt.Sprintf("%d", result.FittedCount())},
		{"Unfitted Items", fmt.Sprintf("%d", len(result.Unfitted))},
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

	y += 5

	// Per-bin breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	// Table header
	colWidths := []float64{20, 60, 55, 30, 35, 55}
	headers := []string{"Bin", "Name", "Dimensions", "Items", "Efficiency", "Load"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	// Table rows
	pdf.SetFont("Helvetica", "", 9)
	for i, br := range result.Bins {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			br.Bin.Name,
			br.Bin.Dim.String(),
			fmt.Sprintf("%d", len(br.Placements)),
			fmt.Sprintf("%.1f%%", br.Efficiency()),
			fmt.Sprintf("%.1f / %.1f kg", br.TotalWeight(), br.Bin.MaxWeight),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Unfitted items warning
	if len(result.Unfitted) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unfitted Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, line := range unfittedSummary(result.Unfitted) {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, line, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Settings summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pack Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Algorithm", string(settings.Algorithm)},
		{"Item Sort", string(settings.ItemSort)},
		{"Plan Profile", settings.PlanProfile},
		{"Headroom", fmt.Sprintf("%.0f%%", settings.HeadroomPercent)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CrateStack - 3D Bin Packing Planner", "", 0, "C", false, 0, "")
}

// unfittedSummary aggregates unfitted copies by name into one line each.
func unfittedSummary(unfitted []model.Item) []string {
	type group struct {
		name  string
		dim   model.Dimension
		count int
	}
	var groups []group
	seen := make(map[string]int)
	for _, it := range unfitted {
		if i, ok := seen[it.Name]; ok {
			groups[i].count++
			continue
		}
		seen[it.Name] = len(groups)
		groups = append(groups, group{name: it.Name, dim: it.Dim, count: 1})
	}

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf("- %s: %s (qty: %d)", g.name, g.dim, g.count))
	}
	return lines
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
