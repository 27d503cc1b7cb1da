package model

import (
	"math"
	"testing"
)

func TestNewDimension(t *testing.T) {
	d, err := NewDimension(48, 28, 3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Width != 48 || d.Height != 28 || d.Depth != 3.5 {
		t.Errorf("unexpected dimension %v", d)
	}

	invalid := []struct {
		name    string
		w, h, d float64
	}{
		{"zero width", 0, 1, 1},
		{"zero height", 1, 0, 1},
		{"zero depth", 1, 1, 0},
		{"negative width", -1, 1, 1},
		{"all zero", 0, 0, 0},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDimension(tt.w, tt.h, tt.d)
			if !IsCode(err, ErrCodeInvalidDimension) {
				t.Errorf("expected %s, got %v", ErrCodeInvalidDimension, err)
			}
		})
	}
}

func TestDimensionRotate(t *testing.T) {
	d := Dimension{Width: 48, Height: 28, Depth: 3.5}

	tests := []struct {
		rot     Rotation
		w, h, dp float64
	}{
		{RotationWHD, 48, 28, 3.5},
		{RotationHWD, 28, 48, 3.5},
		{RotationHDW, 28, 3.5, 48},
		{RotationDHW, 3.5, 28, 48},
		{RotationDWH, 3.5, 48, 28},
		{RotationWDH, 48, 3.5, 28},
	}

	for _, tt := range tests {
		t.Run(tt.rot.String(), func(t *testing.T) {
			got := d.Rotate(tt.rot)
			if got.Width != tt.w || got.Height != tt.h || got.Depth != tt.dp {
				t.Errorf("Rotate(%s) = %v, want %gx%gx%g", tt.rot, got, tt.w, tt.h, tt.dp)
			}
			if math.Abs(got.Volume()-d.Volume()) > 1e-9 {
				t.Errorf("rotation changed volume: %v vs %v", got.Volume(), d.Volume())
			}
		})
	}
}

func TestRotationString(t *testing.T) {
	if RotationWHD.String() != "WHD" {
		t.Errorf("expected WHD, got %s", RotationWHD.String())
	}
	if RotationWDH.String() != "WDH" {
		t.Errorf("expected WDH, got %s", RotationWDH.String())
	}
	if Rotation(42).Valid() {
		t.Error("rotation 42 should not be valid")
	}
}

func TestIntersects(t *testing.T) {
	cube := Dimension{Width: 10, Height: 10, Depth: 10}

	tests := []struct {
		name     string
		p1, p2   Position
		expected bool
	}{
		{"identical", Position{}, Position{}, true},
		{"partial overlap", Position{}, Position{X: 5, Y: 5, Z: 5}, true},
		{"touching X faces", Position{}, Position{X: 10}, false},
		{"touching Y faces", Position{}, Position{Y: 10}, false},
		{"touching Z faces", Position{}, Position{Z: 10}, false},
		{"sub-epsilon overlap", Position{}, Position{X: 9.9995}, false},
		{"clear overlap on X", Position{}, Position{X: 9.9}, true},
		{"overlap XY separated Z", Position{}, Position{X: 5, Y: 5, Z: 10}, false},
		{"far apart", Position{}, Position{X: 20, Y: 20, Z: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersects(tt.p1, cube, tt.p2, cube)
			if got != tt.expected {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.expected)
			}
			// Intersection is symmetric
			if rev := Intersects(tt.p2, cube, tt.p1, cube); rev != got {
				t.Errorf("Intersects not symmetric for %s", tt.name)
			}
		})
	}
}

func TestIntersectsContained(t *testing.T) {
	big := Dimension{Width: 10, Height: 10, Depth: 10}
	small := Dimension{Width: 2, Height: 2, Depth: 2}

	if !Intersects(Position{}, big, Position{X: 4, Y: 4, Z: 4}, small) {
		t.Error("box fully inside another must intersect")
	}
}

func TestFitsWithin(t *testing.T) {
	envelope := Dimension{Width: 10, Height: 10, Depth: 10}
	cube := Dimension{Width: 10, Height: 10, Depth: 10}

	tests := []struct {
		name     string
		pos      Position
		dim      Dimension
		expected bool
	}{
		{"exact fit at origin", Position{}, cube, true},
		{"within epsilon of wall", Position{X: 0.0005}, cube, true},
		{"past the wall", Position{X: 0.01}, cube, false},
		{"slightly negative within epsilon", Position{X: -0.0005}, cube, true},
		{"negative position", Position{X: -1}, cube, false},
		{"too large", Position{}, Dimension{Width: 10.1, Height: 10, Depth: 10}, false},
		{"small box inside", Position{X: 3, Y: 3, Z: 3}, Dimension{Width: 2, Height: 2, Depth: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitsWithin(tt.pos, tt.dim, envelope)
			if got != tt.expected {
				t.Errorf("FitsWithin(%v, %v) = %v, want %v", tt.pos, tt.dim, got, tt.expected)
			}
		})
	}
}
