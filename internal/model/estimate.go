package model

import "math"

// LoadEstimate holds the results of a bin purchasing calculation.
type LoadEstimate struct {
	TotalItemVolume  float64 `json:"total_item_volume"`  // Total volume of all items (cubic cm)
	TotalItemWeight  float64 `json:"total_item_weight"`  // Total weight of all items (kg)
	BinVolume        float64 `json:"bin_volume"`         // Volume of one bin (cubic cm)
	BinCapacity      float64 `json:"bin_capacity"`       // Weight capacity of one bin (kg)
	BinsNeededExact  float64 `json:"bins_needed_exact"`  // Exact fractional number of bins
	BinsNeededMin    int     `json:"bins_needed_min"`    // Minimum bins (ceiling of exact)
	BinsWithHeadroom int     `json:"bins_with_headroom"` // Recommended bins including headroom factor
	HeadroomPercent  float64 `json:"headroom_percent"`   // Headroom factor applied (e.g. 10 for 10%)
	EstimatedCost    float64 `json:"estimated_cost"`     // Total cost if pricing available
	PricePerBin      float64 `json:"price_per_bin"`      // Price used for estimation
	LimitedBy        string  `json:"limited_by"`         // "volume" or "weight", whichever needs more bins
}

// CalculateLoadEstimate computes how many bins of the given type are needed
// for an item list. Volume and weight capacity constrain the count
// independently; the estimate takes whichever requires more bins, then adds
// a headroom percentage because real loads pack below the volumetric ideal.
func CalculateLoadEstimate(items []Item, bin Bin, headroomPercent float64) LoadEstimate {
	var totalVolume, totalWeight float64
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		totalVolume += it.Volume() * float64(qty)
		totalWeight += it.Weight * float64(qty)
	}

	binVolume := bin.Volume()
	if binVolume <= 0 {
		return LoadEstimate{
			TotalItemVolume: totalVolume,
			TotalItemWeight: totalWeight,
			HeadroomPercent: headroomPercent,
		}
	}

	exactByVolume := totalVolume / binVolume
	exactBins := exactByVolume
	limitedBy := "volume"
	if bin.MaxWeight > 0 {
		exactByWeight := totalWeight / bin.MaxWeight
		if exactByWeight > exactBins {
			exactBins = exactByWeight
			limitedBy = "weight"
		}
	}

	minBins := int(math.Ceil(exactBins))

	// Apply headroom factor
	headroomFactor := 1.0 + (headroomPercent / 100.0)
	binsWithHeadroom := int(math.Ceil(exactBins * headroomFactor))
	if binsWithHeadroom < minBins {
		binsWithHeadroom = minBins
	}

	estimatedCost := float64(binsWithHeadroom) * bin.Price

	return LoadEstimate{
		TotalItemVolume:  totalVolume,
		TotalItemWeight:  totalWeight,
		BinVolume:        binVolume,
		BinCapacity:      bin.MaxWeight,
		BinsNeededExact:  exactBins,
		BinsNeededMin:    minBins,
		BinsWithHeadroom: binsWithHeadroom,
		HeadroomPercent:  headroomPercent,
		EstimatedCost:    estimatedCost,
		PricePerBin:      bin.Price,
		LimitedBy:        limitedBy,
	}
}

// DunnageSummary holds the void fill requirements for a packed result.
// Dunnage is the filler material (airbags, foam, paper) stuffed into the
// unoccupied space of each bin so the load cannot shift in transit.
type DunnageSummary struct {
	TotalVoidVolume float64 `json:"total_void_volume"` // Unfilled volume across used bins (cubic cm)
	TotalVoidLiters float64 `json:"total_void_liters"` // Unfilled volume in liters
	ExtraPercent    float64 `json:"extra_percent"`     // Extra allowance applied (e.g. 10 for 10%)
	TotalWithExtra  float64 `json:"total_with_extra"`  // Volume including allowance, rounded up (cubic cm)
	TotalWithExtraL float64 `json:"total_with_extra_l"` // Liters including allowance
	BinCount        int     `json:"bin_count"`          // Number of bins needing fill
	ItemCount       int     `json:"item_count"`         // Total items those bins hold
}

// CalculateDunnage computes the total void fill needed for a packed result.
// extraPercent is the additional percentage to add for compression and
// uneven stuffing (e.g. 10 for 10%).
func CalculateDunnage(result PackResult, extraPercent float64) DunnageSummary {
	var totalVoid float64
	var binCount, itemCount int

	for _, br := range result.Bins {
		if len(br.Placements) == 0 {
			continue
		}
		void := br.TotalVolume() - br.UsedVolume()
		if void < 0 {
			void = 0
		}
		totalVoid += void
		binCount++
		itemCount += len(br.Placements)
	}

	extraFactor := 1.0 + (extraPercent / 100.0)
	withExtra := math.Ceil(totalVoid * extraFactor)

	return DunnageSummary{
		TotalVoidVolume: totalVoid,
		TotalVoidLiters: totalVoid / 1000.0,
		ExtraPercent:    extraPercent,
		TotalWithExtra:  withExtra,
		TotalWithExtraL: withExtra / 1000.0,
		BinCount:        binCount,
		ItemCount:       itemCount,
	}
}

// PerBinDunnage returns a per-bin breakdown of void fill needs.
type PerBinDunnage struct {
	BinName    string  `json:"bin_name"`
	VoidVolume float64 `json:"void_volume"` // cubic cm
	VoidLiters float64 `json:"void_liters"`
	Efficiency float64 `json:"efficiency"` // Volume usage percentage
	ItemCount  int     `json:"item_count"`
}

// CalculatePerBinDunnage returns a breakdown of void fill per used bin.
func CalculatePerBinDunnage(result PackResult) []PerBinDunnage {
	var results []PerBinDunnage
	for _, br := range result.Bins {
		if len(br.Placements) == 0 {
			continue
		}
		void := br.TotalVolume() - br.UsedVolume()
		if void < 0 {
			void = 0
		}
		results = append(results, PerBinDunnage{
			BinName:    br.Bin.Name,
			VoidVolume: void,
			VoidLiters: void / 1000.0,
			Efficiency: br.Efficiency(),
			ItemCount:  len(br.Placements),
		})
	}
	return results
}
