package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/CrateStack/internal/model"
)

// dxfBinGap is the model-space spacing between bins laid out along X, in cm.
const dxfBinGap = 20.0

// dxfColors cycles per bin so multi-bin drawings stay readable in a viewer.
var dxfColors = []color.ColorNumber{
	color.Green, color.Cyan, color.Magenta, color.Yellow, color.Blue, color.Red,
}

// ExportDXF writes the pack result as a 3D wire-frame DXF for CAD handoff.
// Each bin gets two layers: the envelope outline and the placed boxes, with
// bins spaced out along the X axis. Every box is drawn as its 12 edges so
// any viewer that understands LINE entities can show the load.
func ExportDXF(path string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	d := dxf.NewDrawing()

	offsetX := 0.0
	for i, br := range result.Bins {
		envLayer := fmt.Sprintf("BIN_%d", i+1)
		if _, err := d.AddLayer(envLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %q: %w", envLayer, err)
		}
		if err := drawWireBox(d, offsetX, 0, 0, br.Bin.Dim); err != nil {
			return fmt.Errorf("failed to draw bin %q envelope: %w", br.Bin.Name, err)
		}

		itemLayer := fmt.Sprintf("BIN_%d_ITEMS", i+1)
		if _, err := d.AddLayer(itemLayer, dxfColors[i%len(dxfColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %q: %w", itemLayer, err)
		}
		for _, p := range br.Placements {
			err := drawWireBox(d, offsetX+p.Position.X, p.Position.Y, p.Position.Z, p.PlacedDim())
			if err != nil {
				return fmt.Errorf("failed to draw item %q: %w", p.Item.Name, err)
			}
		}

		offsetX += br.Bin.Dim.Width + dxfBinGap
	}

	return d.SaveAs(path)
}

// drawWireBox draws the 12 edges of an axis-aligned box anchored at its
// minimum corner.
func drawWireBox(d *drawing.Drawing, x, y, z float64, dim model.Dimension) error {
	x2 := x + dim.Width
	y2 := y + dim.Height
	z2 := z + dim.Depth

	edges := [12][6]float64{
		// bottom face (y)
		{x, y, z, x2, y, z},
		{x2, y, z, x2, y, z2},
		{x2, y, z2, x, y, z2},
		{x, y, z2, x, y, z},
		// top face
		{x, y2, z, x2, y2, z},
		{x2, y2, z, x2, y2, z2},
		{x2, y2, z2, x, y2, z2},
		{x, y2, z2, x, y2, z},
		// uprights
		{x, y, z, x, y2, z},
		{x2, y, z, x2, y2, z},
		{x2, y, z2, x2, y2, z2},
		{x, y, z2, x, y2, z2},
	}

	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], e[2], e[3], e[4], e[5]); err != nil {
			return err
		}
	}
	return nil
}
