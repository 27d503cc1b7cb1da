package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/CrateStack/internal/model"
)

// Packer runs the 3D bin-packing algorithm.
type Packer struct {
	Settings model.PackSettings
}

func New(settings model.PackSettings) *Packer {
	return &Packer{Settings: settings}
}

// Pack takes items and bins and returns a packed layout. Items are handled
// one at a time in order: each is offered to the bins in input order and
// stays in the first bin that accepts it. Bins already holding items are
// never repacked, so the run is a single deterministic pass.
func (p *Packer) Pack(items []model.Item, bins []model.Bin) model.PackResult {
	if p.Settings.Algorithm == model.AlgorithmGenetic {
		return PackGenetic(p.Settings, items, bins)
	}
	return p.packFirstFit(items, bins)
}

func (p *Packer) packFirstFit(items []model.Item, bins []model.Bin) model.PackResult {
	expanded := expandItems(items)
	orderItems(expanded, p.Settings.ItemSort)

	packers := make([]*BinPacker, 0, len(bins))
	for _, b := range expandBins(bins) {
		packers = append(packers, NewBinPacker(b))
	}

	var unfitted []model.Item
	for _, it := range expanded {
		placed := false
		for _, bp := range packers {
			if _, err := bp.TryPlace(it); err == nil {
				placed = true
				break
			}
		}
		if !placed {
			unfitted = append(unfitted, it)
		}
	}

	return buildResult(packers, unfitted)
}

// expandItems expands items by quantity into individual placement candidates.
// Copies get derived IDs so each instance is tracked on its own.
func expandItems(items []model.Item) []model.Item {
	var expanded []model.Item
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty == 1 {
			cp := it
			cp.Quantity = 1
			expanded = append(expanded, cp)
			continue
		}
		for i := 0; i < qty; i++ {
			cp := it
			cp.Quantity = 1
			cp.ID = fmt.Sprintf("%s-%d", it.ID, i+1)
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// expandBins builds the available bin pool, expanding quantities the same
// way as items. Copies get numbered names so load plans can tell them apart.
func expandBins(bins []model.Bin) []model.Bin {
	var pool []model.Bin
	for _, b := range bins {
		qty := b.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty == 1 {
			cp := b
			cp.Quantity = 1
			pool = append(pool, cp)
			continue
		}
		for i := 0; i < qty; i++ {
			cp := b
			cp.Quantity = 1
			cp.ID = fmt.Sprintf("%s-%d", b.ID, i+1)
			cp.Name = fmt.Sprintf("%s #%d", b.Name, i+1)
			pool = append(pool, cp)
		}
	}
	return pool
}

// orderItems sorts items in place according to the configured mode. Sorting
// is stable so ties keep their input order.
func orderItems(items []model.Item, mode model.SortMode) {
	switch mode {
	case model.SortVolumeDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Volume() > items[j].Volume()
		})
	case model.SortWeightDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Weight > items[j].Weight
		})
	default:
		// SortInput keeps the caller's order
	}
}

func buildResult(packers []*BinPacker, unfitted []model.Item) model.PackResult {
	result := model.PackResult{Unfitted: unfitted}
	for _, bp := range packers {
		if len(bp.placed) > 0 {
			result.Bins = append(result.Bins, bp.Result())
		}
	}
	return result
}

// BinPacker owns the free-space bookkeeping for a single bin during a pack
// run. Placement works off anchor points: the bin starts with a single
// anchor at its origin, and every placed box consumes the anchor it sits on
// while spawning anchors at its three far corners. Boxes are always anchored
// by their minimum corner.
type BinPacker struct {
	bin     model.Bin
	placed  []model.Placement
	weight  float64
	anchors []model.Position
	seen    map[string]bool // IDs of items placed here
}

// NewBinPacker creates a packer for one bin with a single anchor at the
// origin.
func NewBinPacker(bin model.Bin) *BinPacker {
	return &BinPacker{
		bin:     bin,
		anchors: []model.Position{{}},
		seen:    make(map[string]bool),
	}
}

// Bin returns the bin being packed.
func (bp *BinPacker) Bin() model.Bin {
	return bp.bin
}

// Placements returns the accepted placements in placement order.
func (bp *BinPacker) Placements() []model.Placement {
	return bp.placed
}

// UsedWeight returns the combined weight of accepted items.
func (bp *BinPacker) UsedWeight() float64 {
	return bp.weight
}

// RemainingWeight returns the weight capacity still available.
func (bp *BinPacker) RemainingWeight() float64 {
	return bp.bin.MaxWeight - bp.weight
}

// Result snapshots the packer state as a BinResult.
func (bp *BinPacker) Result() model.BinResult {
	return model.BinResult{Bin: bp.bin, Placements: bp.placed}
}

// TryPlace attempts to fit the item into this bin. On success the placement
// is recorded and returned. On failure the bin is left unchanged and the
// error says why: WEIGHT_EXCEEDED when the item is too heavy for the
// remaining capacity (checked before any geometry), NO_FIT when no anchor
// and orientation accepts it, ALREADY_PLACED when this item was placed here
// before.
func (bp *BinPacker) TryPlace(item model.Item) (model.Placement, error) {
	return bp.tryPlace(item, item.Rotations())
}

func (bp *BinPacker) tryPlace(item model.Item, rotations []model.Rotation) (model.Placement, error) {
	if bp.seen[item.ID] {
		return model.Placement{}, model.NewError(model.ErrCodeAlreadyPlaced,
			"item %q is already placed in bin %q", item.Name, bp.bin.Name)
	}

	if item.Weight > bp.RemainingWeight()+model.Epsilon {
		return model.Placement{}, model.NewError(model.ErrCodeWeightExceeded,
			"item %q (%g kg) exceeds remaining capacity %g kg of bin %q",
			item.Name, item.Weight, bp.RemainingWeight(), bp.bin.Name)
	}

	sortAnchors(bp.anchors)

	for idx, anchor := range bp.anchors {
		for _, rot := range rotations {
			dim := item.Dim.Rotate(rot)
			if !model.FitsWithin(anchor, dim, bp.bin.Dim) {
				continue
			}
			if bp.overlapsAny(anchor, dim) {
				continue
			}
			pl := model.Placement{Item: item, Position: anchor, Rotation: rot}
			bp.commit(pl, idx)
			return pl, nil
		}
	}

	return model.Placement{}, model.NewError(model.ErrCodeNoFit,
		"no free position in bin %q fits item %q", bp.bin.Name, item.Name)
}

// overlapsAny reports whether a box at pos would collide with any placed box.
func (bp *BinPacker) overlapsAny(pos model.Position, dim model.Dimension) bool {
	for _, pl := range bp.placed {
		if model.Intersects(pos, dim, pl.Position, pl.PlacedDim()) {
			return true
		}
	}
	return false
}

// commit records the placement, consumes its anchor and spawns new anchors
// at the three far corners of the placed box.
func (bp *BinPacker) commit(pl model.Placement, anchorIdx int) {
	bp.placed = append(bp.placed, pl)
	bp.weight += pl.Item.Weight
	bp.seen[pl.Item.ID] = true

	bp.anchors = append(bp.anchors[:anchorIdx], bp.anchors[anchorIdx+1:]...)

	dim := pl.PlacedDim()
	bp.addAnchor(model.Position{X: pl.Position.X + dim.Width, Y: pl.Position.Y, Z: pl.Position.Z})
	bp.addAnchor(model.Position{X: pl.Position.X, Y: pl.Position.Y + dim.Height, Z: pl.Position.Z})
	bp.addAnchor(model.Position{X: pl.Position.X, Y: pl.Position.Y, Z: pl.Position.Z + dim.Depth})

	bp.pruneAnchors()
}

// addAnchor registers a candidate point unless it lies on or beyond a far
// wall, inside an occupied box, or duplicates a known anchor.
func (bp *BinPacker) addAnchor(p model.Position) {
	if p.X >= bp.bin.Dim.Width-model.Epsilon ||
		p.Y >= bp.bin.Dim.Height-model.Epsilon ||
		p.Z >= bp.bin.Dim.Depth-model.Epsilon {
		return
	}
	if bp.insideOccupied(p) {
		return
	}
	for _, a := range bp.anchors {
		if samePoint(a, p) {
			return
		}
	}
	bp.anchors = append(bp.anchors, p)
}

// pruneAnchors drops anchors swallowed by later placements.
func (bp *BinPacker) pruneAnchors() {
	kept := make([]model.Position, 0, len(bp.anchors))
	for _, a := range bp.anchors {
		if !bp.insideOccupied(a) {
			kept = append(kept, a)
		}
	}
	bp.anchors = kept
}

// insideOccupied reports whether the point lies strictly inside any placed
// box. Points on a face remain usable anchors.
func (bp *BinPacker) insideOccupied(p model.Position) bool {
	for _, pl := range bp.placed {
		dim := pl.PlacedDim()
		if p.X > pl.Position.X+model.Epsilon && p.X < pl.Position.X+dim.Width-model.Epsilon &&
			p.Y > pl.Position.Y+model.Epsilon && p.Y < pl.Position.Y+dim.Height-model.Epsilon &&
			p.Z > pl.Position.Z+model.Epsilon && p.Z < pl.Position.Z+dim.Depth-model.Epsilon {
			return true
		}
	}
	return false
}

func samePoint(a, b model.Position) bool {
	return math.Abs(a.X-b.X) < model.Epsilon &&
		math.Abs(a.Y-b.Y) < model.Epsilon &&
		math.Abs(a.Z-b.Z) < model.Epsilon
}

// sortAnchors orders candidate points ascending by x, then y, then z, so
// placement prefers positions near the origin wall.
func sortAnchors(anchors []model.Position) {
	sort.SliceStable(anchors, func(i, j int) bool {
		a, b := anchors[i], anchors[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
}
