package loadplan

import (
	"fmt"

	"github.com/piwi3910/CrateStack/internal/model"
)

// ViolationKind classifies a packing rule violation.
type ViolationKind string

const (
	ViolationOverlap     ViolationKind = "overlap"
	ViolationOutOfBounds ViolationKind = "out-of-bounds"
	ViolationOverweight  ViolationKind = "overweight"
	ViolationDuplicate   ViolationKind = "duplicate"
)

// Violation describes a placement that breaks a packing rule.
type Violation struct {
	Kind      ViolationKind
	BinIndex  int
	BinName   string
	ItemName  string
	OtherItem string // second item involved in overlap violations
	Detail    string
}

// AuditResult checks a packed layout against the rules the packer guarantees:
// boxes stay inside their bin, no two boxes overlap, bins stay under their
// weight limit and every placed copy shows up exactly once. The check is
// independent of the packer so plans can be verified before a crew loads
// from them. A clean layout returns no violations.
func AuditResult(result model.PackResult) []Violation {
	var violations []Violation

	seen := make(map[string]string) // item ID -> bin it was first placed in

	for binIdx, br := range result.Bins {
		for i, pl := range br.Placements {
			if !model.FitsWithin(pl.Position, pl.PlacedDim(), br.Bin.Dim) {
				violations = append(violations, Violation{
					Kind:     ViolationOutOfBounds,
					BinIndex: binIdx,
					BinName:  br.Bin.Name,
					ItemName: pl.Item.Name,
					Detail: fmt.Sprintf("box at (%g, %g, %g) size %s leaves the %s bin",
						pl.Position.X, pl.Position.Y, pl.Position.Z, pl.PlacedDim(), br.Bin.Dim),
				})
			}

			for j := i + 1; j < len(br.Placements); j++ {
				other := br.Placements[j]
				if model.Intersects(pl.Position, pl.PlacedDim(), other.Position, other.PlacedDim()) {
					violations = append(violations, Violation{
						Kind:      ViolationOverlap,
						BinIndex:  binIdx,
						BinName:   br.Bin.Name,
						ItemName:  pl.Item.Name,
						OtherItem: other.Item.Name,
						Detail: fmt.Sprintf("boxes at (%g, %g, %g) and (%g, %g, %g) intersect",
							pl.Position.X, pl.Position.Y, pl.Position.Z,
							other.Position.X, other.Position.Y, other.Position.Z),
					})
				}
			}

			if firstBin, dup := seen[pl.Item.ID]; dup {
				violations = append(violations, Violation{
					Kind:     ViolationDuplicate,
					BinIndex: binIdx,
					BinName:  br.Bin.Name,
					ItemName: pl.Item.Name,
					Detail:   fmt.Sprintf("item %s is already placed in bin %q", pl.Item.ID, firstBin),
				})
			} else {
				seen[pl.Item.ID] = br.Bin.Name
			}
		}

		if total := br.TotalWeight(); total > br.Bin.MaxWeight+model.Epsilon {
			violations = append(violations, Violation{
				Kind:     ViolationOverweight,
				BinIndex: binIdx,
				BinName:  br.Bin.Name,
				Detail: fmt.Sprintf("loaded %.1f kg against a %.1f kg limit",
					total, br.Bin.MaxWeight),
			})
		}
	}

	for _, it := range result.Unfitted {
		if firstBin, dup := seen[it.ID]; dup {
			violations = append(violations, Violation{
				Kind:     ViolationDuplicate,
				ItemName: it.Name,
				Detail:   fmt.Sprintf("item %s is placed in bin %q but also reported unfitted", it.ID, firstBin),
			})
		}
	}

	return violations
}

// FormatViolations produces human-readable warning messages from audit data.
func FormatViolations(violations []Violation) []string {
	var warnings []string
	for _, v := range violations {
		var msg string
		switch v.Kind {
		case ViolationOverlap:
			msg = fmt.Sprintf("Bin %d (%s): items %q and %q overlap: %s",
				v.BinIndex+1, v.BinName, v.ItemName, v.OtherItem, v.Detail)
		case ViolationOutOfBounds:
			msg = fmt.Sprintf("Bin %d (%s): item %q extends outside the bin: %s",
				v.BinIndex+1, v.BinName, v.ItemName, v.Detail)
		case ViolationOverweight:
			msg = fmt.Sprintf("Bin %d (%s): %s", v.BinIndex+1, v.BinName, v.Detail)
		default:
			msg = fmt.Sprintf("Item %q: %s", v.ItemName, v.Detail)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
