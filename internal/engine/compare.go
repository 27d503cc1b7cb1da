package engine

import (
	"github.com/piwi3910/CrateStack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackResult
	BinsUsed      int
	ItemsPlaced   int
	WastePercent  float64
	UnfittedCount int
}

// CompareScenarios runs the packer for each scenario and returns the results
// in scenario order. This enables side-by-side comparison of different
// packing parameters (e.g., different algorithms or item orderings).
func CompareScenarios(scenarios []ComparisonScenario, items []model.Item, bins []model.Bin) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		packer := New(scenario.Settings)
		result := packer.Pack(items, bins)

		wastePercent := 100.0 - result.TotalEfficiency()

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			BinsUsed:      len(result.Bins),
			ItemsPlaced:   result.FittedCount(),
			WastePercent:  wastePercent,
			UnfittedCount: len(result.Unfitted),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: Try the other algorithm
	altAlgo := baseSettings
	if baseSettings.Algorithm == model.AlgorithmGenetic {
		altAlgo.Algorithm = model.AlgorithmFirstFit
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "First-Fit Algorithm",
			Settings: altAlgo,
		})
	} else {
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Genetic Algorithm",
			Settings: altAlgo,
		})
	}

	// Scenario: Place bulky items first
	if baseSettings.ItemSort != model.SortVolumeDesc {
		byVolume := baseSettings
		byVolume.ItemSort = model.SortVolumeDesc
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Largest Volume First",
			Settings: byVolume,
		})
	}

	// Scenario: Place heavy items first
	if baseSettings.ItemSort != model.SortWeightDesc {
		byWeight := baseSettings
		byWeight.ItemSort = model.SortWeightDesc
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Heaviest First",
			Settings: byWeight,
		})
	}

	return scenarios
}
