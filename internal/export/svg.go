package export

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/piwi3910/CrateStack/internal/model"
)

// Isometric projection constants: 30 degree axonometric, X to the right and
// down, Z to the left and down, Y straight up.
const (
	isoCos = 0.8660254037844387 // cos(30)
	isoSin = 0.5                // sin(30)

	svgScale    = 2.0  // px per cm
	svgMargin   = 20.0 // px around the drawing
	svgBinGap   = 40.0 // px between bin groups
	svgLegendH  = 16.0 // px per legend line
	svgCaptionH = 18.0 // px for the bin caption
)

// ExportSVG writes an isometric SVG rendering of the pack result.
func ExportSVG(path string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}
	return os.WriteFile(path, RenderSVG(result), 0644)
}

// RenderSVG draws every bin of the result as an isometric cutaway, bins laid
// out side by side, each with a caption and an item legend. The output is
// deterministic: boxes are painter-sorted back to front and colors are
// assigned from a fixed palette in first-seen item-name order.
func RenderSVG(result model.PackResult) []byte {
	var totalW, totalH float64
	for _, br := range result.Bins {
		w, h := binCanvasSize(br)
		totalW += w + svgBinGap
		if h > totalH {
			totalH = h
		}
	}
	totalW += 2*svgMargin - svgBinGap
	totalH += 2 * svgMargin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, totalH, totalW, totalH)
	buf.WriteString(`  <rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	x := svgMargin
	for i, br := range result.Bins {
		renderBinGroup(&buf, br, i+1, x, svgMargin)
		w, _ := binCanvasSize(br)
		x += w + svgBinGap
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// binCanvasSize returns the pixel extent of one bin group including caption
// and legend.
func binCanvasSize(br model.BinResult) (w, h float64) {
	d := br.Bin.Dim
	w = (d.Width + d.Depth) * isoCos * svgScale
	h = svgCaptionH + ((d.Width+d.Depth)*isoSin+d.Height)*svgScale
	h += float64(len(legendEntries(br.Placements)))*svgLegendH + svgLegendH
	return w, h
}

// renderBinGroup draws one bin: caption, envelope wireframe, placed boxes and
// a legend, inside a translated <g>.
func renderBinGroup(buf *bytes.Buffer, br model.BinResult, binNum int, left, top float64) {
	d := br.Bin.Dim

	// Projection origin inside the group: the bin's (0,0,0) corner.
	ox := d.Depth * isoCos * svgScale
	oy := svgCaptionH + d.Height*svgScale

	fmt.Fprintf(buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", left, top)

	caption := fmt.Sprintf("Bin %d: %s (%s) - %d items, %.1f%% full",
		binNum, br.Bin.Name, d, len(br.Placements), br.Efficiency())
	fmt.Fprintf(buf, `    <text x="0" y="12" font-family="sans-serif" font-size="12" fill="#333">%s</text>`+"\n",
		xmlEscape(caption))

	renderEnvelope(buf, d, ox, oy)

	colorIdx := colorIndexByName(br.Placements)
	for _, p := range painterSort(br.Placements) {
		renderBox(buf, p, colorIdx[p.Item.Name], ox, oy)
	}

	legendY := svgCaptionH + ((d.Width+d.Depth)*isoSin+d.Height)*svgScale + svgLegendH
	renderSVGLegend(buf, br.Placements, colorIdx, legendY)

	buf.WriteString("  </g>\n")
}

// painterSort orders placements back to front for the (1,1,1) view direction:
// boxes with a smaller coordinate sum are farther from the camera and must be
// drawn first. Sorting is stable so identical anchors keep placement order.
func painterSort(placements []model.Placement) []model.Placement {
	sorted := make([]model.Placement, len(placements))
	copy(sorted, placements)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Position, sorted[j].Position
		return a.X+a.Y+a.Z < b.X+b.Y+b.Z
	})
	return sorted
}

// project maps a bin-space point to group-local SVG coordinates.
func project(x, y, z, ox, oy float64) (float64, float64) {
	u := ox + (x-z)*isoCos*svgScale
	v := oy + (x+z)*isoSin*svgScale - y*svgScale
	return u, v
}

// renderEnvelope draws the bin as a light wireframe so the free space stays
// visible behind the boxes.
func renderEnvelope(buf *bytes.Buffer, d model.Dimension, ox, oy float64) {
	corners := [8][3]float64{
		{0, 0, 0}, {d.Width, 0, 0}, {d.Width, 0, d.Depth}, {0, 0, d.Depth},
		{0, d.Height, 0}, {d.Width, d.Height, 0}, {d.Width, d.Height, d.Depth}, {0, d.Height, d.Depth},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // floor
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // ceiling
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // uprights
	}
	for _, e := range edges {
		x1, y1 := project(corners[e[0]][0], corners[e[0]][1], corners[e[0]][2], ox, oy)
		x2, y2 := project(corners[e[1]][0], corners[e[1]][1], corners[e[1]][2], ox, oy)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#bbbbbb" stroke-width="1"/>`+"\n",
			x1, y1, x2, y2)
	}
}

// renderBox draws the three visible faces of a placed box: top, the x-max
// side and the z-max side, each shaded from the item's palette color.
func renderBox(buf *bytes.Buffer, p model.Placement, colorSlot int, ox, oy float64) {
	pos := p.Position
	dim := p.PlacedDim()
	col := boxColors[colorSlot%len(boxColors)]

	top := [4][3]float64{
		{pos.X, pos.Y + dim.Height, pos.Z},
		{pos.X + dim.Width, pos.Y + dim.Height, pos.Z},
		{pos.X + dim.Width, pos.Y + dim.Height, pos.Z + dim.Depth},
		{pos.X, pos.Y + dim.Height, pos.Z + dim.Depth},
	}
	right := [4][3]float64{
		{pos.X + dim.Width, pos.Y, pos.Z},
		{pos.X + dim.Width, pos.Y + dim.Height, pos.Z},
		{pos.X + dim.Width, pos.Y + dim.Height, pos.Z + dim.Depth},
		{pos.X + dim.Width, pos.Y, pos.Z + dim.Depth},
	}
	front := [4][3]float64{
		{pos.X, pos.Y, pos.Z + dim.Depth},
		{pos.X + dim.Width, pos.Y, pos.Z + dim.Depth},
		{pos.X + dim.Width, pos.Y + dim.Height, pos.Z + dim.Depth},
		{pos.X, pos.Y + dim.Height, pos.Z + dim.Depth},
	}

	renderFace(buf, top, shade(col, 1.0), ox, oy)
	renderFace(buf, front, shade(col, 0.85), ox, oy)
	renderFace(buf, right, shade(col, 0.65), ox, oy)
}

func renderFace(buf *bytes.Buffer, corners [4][3]float64, fill string, ox, oy float64) {
	var pts bytes.Buffer
	for i, c := range corners {
		if i > 0 {
			pts.WriteByte(' ')
		}
		x, y := project(c[0], c[1], c[2], ox, oy)
		fmt.Fprintf(&pts, "%.1f,%.1f", x, y)
	}
	fmt.Fprintf(buf, `    <polygon points="%s" fill="%s" stroke="#222222" stroke-width="0.5"/>`+"\n",
		pts.String(), fill)
}

// shade returns a hex color scaled toward black by the given factor.
func shade(col boxColor, factor float64) string {
	r := int(math.Round(float64(col.R) * factor))
	g := int(math.Round(float64(col.G) * factor))
	b := int(math.Round(float64(col.B) * factor))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

type svgLegendEntry struct {
	name  string
	count int
}

// legendEntries aggregates placements by item name in first-seen order.
func legendEntries(placements []model.Placement) []svgLegendEntry {
	var entries []svgLegendEntry
	seen := make(map[string]int)
	for _, p := range placements {
		if i, ok := seen[p.Item.Name]; ok {
			entries[i].count++
			continue
		}
		seen[p.Item.Name] = len(entries)
		entries = append(entries, svgLegendEntry{name: p.Item.Name, count: 1})
	}
	return entries
}

func renderSVGLegend(buf *bytes.Buffer, placements []model.Placement, colorIdx map[string]int, startY float64) {
	for i, e := range legendEntries(placements) {
		y := startY + float64(i)*svgLegendH
		col := boxColors[colorIdx[e.name]%len(boxColors)]
		fmt.Fprintf(buf, `    <rect x="0" y="%.1f" width="10" height="10" fill="%s" stroke="#222222" stroke-width="0.5"/>`+"\n",
			y, shade(col, 1.0))
		fmt.Fprintf(buf, `    <text x="14" y="%.1f" font-family="sans-serif" font-size="11" fill="#333">%s x%d</text>`+"\n",
			y+9, xmlEscape(e.name), e.count)
	}
}

// xmlEscape escapes the characters that break SVG text nodes and attributes.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
