package model

import (
	"math"
	"testing"
)

func TestDetectFreeSpacesEmptyBin(t *testing.T) {
	br := BinResult{
		Bin: Bin{Name: "Test", Dim: Dimension{Width: 155, Height: 53.5, Depth: 58.5}, MaxWeight: 600},
	}
	spaces := DetectFreeSpaces(br, 0)
	if len(spaces) != 1 {
		t.Fatalf("expected 1 free space for empty bin, got %d", len(spaces))
	}
	if spaces[0].Dim != br.Bin.Dim {
		t.Errorf("expected full bin as free space, got %v", spaces[0].Dim)
	}
	if spaces[0].RemainingWeight != 600 {
		t.Errorf("expected full capacity 600, got %v", spaces[0].RemainingWeight)
	}
}

func TestDetectFreeSpacesRightBlock(t *testing.T) {
	br := BinResult{
		Bin: Bin{Name: "Bin1", Dim: Dimension{Width: 100, Height: 50, Depth: 50}, MaxWeight: 600},
		Placements: []Placement{
			{Item: Item{Name: "P1", Dim: Dimension{Width: 40, Height: 50, Depth: 50}, Weight: 17}},
		},
	}
	spaces := DetectFreeSpaces(br, 0)
	// Should find a right block: X=40, 60x50x50
	foundRight := false
	for _, fs := range spaces {
		if fs.Position.X == 40 && fs.Dim.Width == 60 {
			foundRight = true
			if fs.RemainingWeight != 583 {
				t.Errorf("expected remaining weight 583, got %v", fs.RemainingWeight)
			}
		}
	}
	if !foundRight {
		t.Error("expected to find right block free space")
	}
}

func TestDetectFreeSpacesTopBlock(t *testing.T) {
	br := BinResult{
		Bin: Bin{Name: "Bin1", Dim: Dimension{Width: 100, Height: 100, Depth: 50}, MaxWeight: 600},
		Placements: []Placement{
			{Item: Item{Name: "P1", Dim: Dimension{Width: 100, Height: 40, Depth: 50}}},
		},
	}
	spaces := DetectFreeSpaces(br, 0)
	foundTop := false
	for _, fs := range spaces {
		if fs.Position.Y == 40 && fs.Dim.Height == 60 {
			foundTop = true
		}
	}
	if !foundTop {
		t.Error("expected to find top block free space")
	}
}

func TestDetectFreeSpacesBackBlock(t *testing.T) {
	br := BinResult{
		Bin: Bin{Name: "Bin1", Dim: Dimension{Width: 50, Height: 50, Depth: 100}, MaxWeight: 600},
		Placements: []Placement{
			{Item: Item{Name: "P1", Dim: Dimension{Width: 50, Height: 50, Depth: 30}}},
		},
	}
	spaces := DetectFreeSpaces(br, 0)
	foundBack := false
	for _, fs := range spaces {
		if fs.Position.Z == 30 && fs.Dim.Depth == 70 {
			foundBack = true
		}
	}
	if !foundBack {
		t.Error("expected to find back block free space")
	}
}

func TestDetectFreeSpacesSmallGapIgnored(t *testing.T) {
	br := BinResult{
		Bin: Bin{Name: "Bin1", Dim: Dimension{Width: 50, Height: 50, Depth: 50}, MaxWeight: 600},
		Placements: []Placement{
			{Item: Item{Name: "P1", Dim: Dimension{Width: 48, Height: 48, Depth: 48}}},
		},
	}
	spaces := DetectFreeSpaces(br, 0)
	// Remaining gaps are 2 cm, below MinFreeDimension
	if len(spaces) != 0 {
		t.Errorf("expected 0 free spaces for near-full bin, got %d", len(spaces))
	}
}

func TestDetectAllFreeSpaces(t *testing.T) {
	bin := Bin{Name: "B", Dim: Dimension{Width: 100, Height: 50, Depth: 50}, MaxWeight: 600}
	result := PackResult{
		Bins: []BinResult{
			{Bin: bin, Placements: []Placement{
				{Item: Item{Name: "P1", Dim: Dimension{Width: 40, Height: 50, Depth: 50}}},
			}},
			{Bin: bin, Placements: []Placement{
				{Item: Item{Name: "P2", Dim: Dimension{Width: 20, Height: 50, Depth: 50}}},
			}},
		},
	}
	spaces := DetectAllFreeSpaces(result)
	if len(spaces) == 0 {
		t.Error("expected free spaces from two partially-loaded bins")
	}
}

func TestFreeSpaceVolume(t *testing.T) {
	fs := FreeSpace{Dim: Dimension{Width: 50, Height: 30, Depth: 20}}
	if fs.Volume() != 30000 {
		t.Errorf("expected volume 30000, got %.0f", fs.Volume())
	}
}

func TestFreeSpaceToBin(t *testing.T) {
	fs := FreeSpace{
		ID:              "abc",
		BinName:         "Tiefkühler",
		Dim:             Dimension{Width: 80, Height: 40, Depth: 50},
		RemainingWeight: 123.5,
		Price:           12.50,
	}
	bin, err := fs.ToBin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bin.Dim != fs.Dim {
		t.Errorf("expected %v, got %v", fs.Dim, bin.Dim)
	}
	if bin.MaxWeight != 123.5 {
		t.Errorf("expected capacity 123.5, got %.1f", bin.MaxWeight)
	}
	if bin.Price != 12.50 {
		t.Errorf("expected price 12.50, got %.2f", bin.Price)
	}
	if bin.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", bin.Quantity)
	}
}

func TestTotalFreeVolume(t *testing.T) {
	spaces := []FreeSpace{
		{Dim: Dimension{Width: 50, Height: 30, Depth: 20}},
		{Dim: Dimension{Width: 10, Height: 10, Depth: 10}},
	}
	total := TotalFreeVolume(spaces)
	if math.Abs(total-31000) > 1e-9 {
		t.Errorf("expected total volume 31000, got %.0f", total)
	}
}

func TestDetectFreeSpacesPricingProportional(t *testing.T) {
	br := BinResult{
		Bin: Bin{Name: "Bin1", Dim: Dimension{Width: 200, Height: 100, Depth: 100}, MaxWeight: 600, Price: 100.0},
		Placements: []Placement{
			{Item: Item{Name: "P1", Dim: Dimension{Width: 100, Height: 100, Depth: 100}}},
		},
	}
	spaces := DetectFreeSpaces(br, 0)
	if len(spaces) == 0 {
		t.Fatal("expected at least one free space")
	}
	for _, fs := range spaces {
		if fs.Price <= 0 {
			t.Errorf("expected positive pricing for free space, got %.2f", fs.Price)
		}
	}
}
