package model

import (
	"sort"

	"github.com/google/uuid"
)

// FreeSpace represents a usable cuboid region left over in a packed bin.
type FreeSpace struct {
	ID       string    `json:"id"`
	BinName  string    `json:"bin_name"`  // Which bin it belongs to
	BinIndex int       `json:"bin_index"` // Index of the source bin in the result
	Position Position  `json:"position"`  // Minimum corner in bin coordinates
	Dim      Dimension `json:"dim"`       // Usable extents

	RemainingWeight float64 `json:"remaining_weight"` // Weight capacity still available in the source bin
	Price           float64 `json:"price,omitempty"`  // Inherited price proportional to volume (0 if not set)
}

// Volume returns the volume of the free space in cubic cm.
func (fs FreeSpace) Volume() float64 {
	return fs.Dim.Volume()
}

// ToBin converts a free space into a standalone bin for a follow-up run.
// The new bin inherits the weight capacity the source bin had left.
func (fs FreeSpace) ToBin() (Bin, error) {
	bin, err := NewBin("Free space "+fs.BinName,
		fs.Dim.Width, fs.Dim.Height, fs.Dim.Depth, fs.RemainingWeight, 1)
	if err != nil {
		return Bin{}, err
	}
	bin.Price = fs.Price
	return bin, nil
}

// MinFreeDimension is the minimum extent (in cm) on every axis for a region
// to be considered usable free space. Smaller gaps are dunnage territory.
const MinFreeDimension = 5.0

// MinFreeVolume is the minimum volume (in cubic cm) for a region to be
// considered usable.
const MinFreeVolume = 1000.0 // 10x10x10 cm equivalent

// DetectFreeSpaces analyzes a BinResult and identifies cuboid regions large
// enough to take more cargo. It works from the bounding box of the placed
// items: the space beside, above and behind the load forms three disjoint
// blocks.
func DetectFreeSpaces(br BinResult, binIndex int) []FreeSpace {
	binDim := br.Bin.Dim

	if len(br.Placements) == 0 {
		// Entire bin is free (unlikely but handle it)
		return []FreeSpace{{
			ID:              uuid.New().String()[:8],
			BinName:         br.Bin.Name,
			BinIndex:        binIndex,
			Position:        Position{},
			Dim:             binDim,
			RemainingWeight: br.Bin.MaxWeight,
			Price:           br.Bin.Price,
		}}
	}

	// Bounding box of the placed items
	var maxX, maxY, maxZ float64
	for _, p := range br.Placements {
		dim := p.PlacedDim()
		if right := p.Position.X + dim.Width; right > maxX {
			maxX = right
		}
		if top := p.Position.Y + dim.Height; top > maxY {
			maxY = top
		}
		if back := p.Position.Z + dim.Depth; back > maxZ {
			maxZ = back
		}
	}

	var spaces []FreeSpace

	// Right block: beside the load, full height and depth
	rightW := binDim.Width - maxX
	if usableRegion(rightW, binDim.Height, binDim.Depth) {
		spaces = append(spaces, FreeSpace{
			ID:       uuid.New().String()[:8],
			BinName:  br.Bin.Name,
			BinIndex: binIndex,
			Position: Position{X: maxX},
			Dim:      Dimension{Width: rightW, Height: binDim.Height, Depth: binDim.Depth},
		})
	}

	// Top block: above the load, limited to the load's width so it does not
	// overlap the right block
	topH := binDim.Height - maxY
	if usableRegion(maxX, topH, binDim.Depth) {
		spaces = append(spaces, FreeSpace{
			ID:       uuid.New().String()[:8],
			BinName:  br.Bin.Name,
			BinIndex: binIndex,
			Position: Position{Y: maxY},
			Dim:      Dimension{Width: maxX, Height: topH, Depth: binDim.Depth},
		})
	}

	// Back block: behind the load, limited to the load's width and height
	backD := binDim.Depth - maxZ
	if usableRegion(maxX, maxY, backD) {
		spaces = append(spaces, FreeSpace{
			ID:       uuid.New().String()[:8],
			BinName:  br.Bin.Name,
			BinIndex: binIndex,
			Position: Position{Z: maxZ},
			Dim:      Dimension{Width: maxX, Height: maxY, Depth: backD},
		})
	}

	// Each block can take cargo up to whatever weight capacity is left
	remaining := br.RemainingWeight()
	if remaining < 0 {
		remaining = 0
	}
	for i := range spaces {
		spaces[i].RemainingWeight = remaining
	}

	// Assign proportional pricing
	if br.Bin.Price > 0 {
		totalVolume := binDim.Volume()
		for i := range spaces {
			spaces[i].Price = (spaces[i].Volume() / totalVolume) * br.Bin.Price
		}
	}

	// Sort by volume descending (largest free spaces first)
	sort.Slice(spaces, func(i, j int) bool {
		return spaces[i].Volume() > spaces[j].Volume()
	})

	return spaces
}

// usableRegion reports whether a region of the given extents is worth
// tracking as reusable free space.
func usableRegion(w, h, d float64) bool {
	return w >= MinFreeDimension && h >= MinFreeDimension && d >= MinFreeDimension &&
		w*h*d >= MinFreeVolume
}

// DetectAllFreeSpaces finds free spaces across all bins in a pack result.
func DetectAllFreeSpaces(result PackResult) []FreeSpace {
	var all []FreeSpace
	for i, br := range result.Bins {
		spaces := DetectFreeSpaces(br, i)
		all = append(all, spaces...)
	}
	return all
}

// TotalFreeVolume returns the total volume of all free spaces in cubic cm.
func TotalFreeVolume(spaces []FreeSpace) float64 {
	var total float64
	for _, fs := range spaces {
		total += fs.Volume()
	}
	return total
}
