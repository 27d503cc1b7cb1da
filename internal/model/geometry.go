package model

import "fmt"

// Epsilon is the tolerance for geometric comparisons. Face-to-face contact
// between boxes is not an overlap, and coordinates within this tolerance of
// a bin wall still count as inside.
const Epsilon = 0.001

// Dimension represents the extents of a cuboid in cm.
type Dimension struct {
	Width  float64 `json:"width"`  // Extent along X
	Height float64 `json:"height"` // Extent along Y
	Depth  float64 `json:"depth"`  // Extent along Z
}

// NewDimension validates and builds a Dimension. All components must be
// strictly positive.
func NewDimension(w, h, d float64) (Dimension, error) {
	if w <= 0 || h <= 0 || d <= 0 {
		return Dimension{}, NewError(ErrCodeInvalidDimension,
			"dimensions must be positive, got %gx%gx%g", w, h, d)
	}
	return Dimension{Width: w, Height: h, Depth: d}, nil
}

// Volume returns the cuboid volume.
func (d Dimension) Volume() float64 {
	return d.Width * d.Height * d.Depth
}

func (d Dimension) String() string {
	return fmt.Sprintf("%gx%gx%g", d.Width, d.Height, d.Depth)
}

// Rotate returns the extents after applying the given rotation.
func (d Dimension) Rotate(r Rotation) Dimension {
	switch r {
	case RotationHWD:
		return Dimension{Width: d.Height, Height: d.Width, Depth: d.Depth}
	case RotationHDW:
		return Dimension{Width: d.Height, Height: d.Depth, Depth: d.Width}
	case RotationDHW:
		return Dimension{Width: d.Depth, Height: d.Height, Depth: d.Width}
	case RotationDWH:
		return Dimension{Width: d.Depth, Height: d.Width, Depth: d.Height}
	case RotationWDH:
		return Dimension{Width: d.Width, Height: d.Depth, Depth: d.Height}
	default: // RotationWHD
		return d
	}
}

// Position is the minimum corner of a placed box, in bin coordinates.
// The bin origin is one of its corners; all coordinates are non-negative.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Rotation identifies one of the six axis-aligned orientations of a cuboid.
// The numbering matches the order orientations are tried during placement:
// the unrotated orientation first, then the five permutations.
type Rotation int

const (
	RotationWHD Rotation = iota // (w, h, d), as defined
	RotationHWD                 // (h, w, d)
	RotationHDW                 // (h, d, w)
	RotationDHW                 // (d, h, w)
	RotationDWH                 // (d, w, h)
	RotationWDH                 // (w, d, h)
)

// AllRotations lists every orientation in placement order.
var AllRotations = []Rotation{
	RotationWHD, RotationHWD, RotationHDW, RotationDHW, RotationDWH, RotationWDH,
}

func (r Rotation) String() string {
	switch r {
	case RotationWHD:
		return "WHD"
	case RotationHWD:
		return "HWD"
	case RotationHDW:
		return "HDW"
	case RotationDHW:
		return "DHW"
	case RotationDWH:
		return "DWH"
	case RotationWDH:
		return "WDH"
	default:
		return fmt.Sprintf("Rotation(%d)", int(r))
	}
}

// Valid reports whether r is one of the six defined orientations.
func (r Rotation) Valid() bool {
	return r >= RotationWHD && r <= RotationWDH
}

// Intersects reports whether two placed boxes overlap with positive volume.
// Boxes that merely touch on a face, edge or corner do not intersect.
func Intersects(p1 Position, d1 Dimension, p2 Position, d2 Dimension) bool {
	return axisOverlaps(p1.X, d1.Width, p2.X, d2.Width) &&
		axisOverlaps(p1.Y, d1.Height, p2.Y, d2.Height) &&
		axisOverlaps(p1.Z, d1.Depth, p2.Z, d2.Depth)
}

func axisOverlaps(a, aLen, b, bLen float64) bool {
	return a < b+bLen-Epsilon && b < a+aLen-Epsilon
}

// FitsWithin reports whether a box anchored at pos with the given extents
// lies entirely inside the envelope, allowing Epsilon slack at the walls.
func FitsWithin(pos Position, dim Dimension, envelope Dimension) bool {
	return pos.X >= -Epsilon && pos.Y >= -Epsilon && pos.Z >= -Epsilon &&
		pos.X+dim.Width <= envelope.Width+Epsilon &&
		pos.Y+dim.Height <= envelope.Height+Epsilon &&
		pos.Z+dim.Depth <= envelope.Depth+Epsilon
}
