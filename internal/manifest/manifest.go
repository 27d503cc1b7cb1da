// Package manifest reads and writes pack jobs as TOML files. A manifest
// carries everything one run needs (bins, items and settings) so a job can
// be versioned next to the goods lists it describes and replayed later.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/CrateStack/internal/model"
)

// Manifest is the TOML representation of a pack job.
type Manifest struct {
	Name     string      `toml:"name"`
	Settings Settings    `toml:"settings"`
	Bins     []BinEntry  `toml:"bins"`
	Items    []ItemEntry `toml:"items"`
}

// Settings mirrors the packer options. Empty fields fall back to the
// application defaults when the manifest is built.
type Settings struct {
	Algorithm string  `toml:"algorithm,omitempty"`
	Sort      string  `toml:"sort,omitempty"`
	Profile   string  `toml:"profile,omitempty"`
	Headroom  float64 `toml:"headroom_percent,omitempty"`
}

// BinEntry describes one bin type and how many of it are on hand.
type BinEntry struct {
	Name      string  `toml:"name"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Depth     float64 `toml:"depth"`
	MaxWeight float64 `toml:"max_weight"`
	Quantity  int     `toml:"quantity"`
	Price     float64 `toml:"price,omitempty"`
}

// ItemEntry describes one item type and how many copies need loading.
type ItemEntry struct {
	Name      string   `toml:"name"`
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	Depth     float64  `toml:"depth"`
	Weight    float64  `toml:"weight"`
	Quantity  int      `toml:"quantity"`
	Rotations []string `toml:"rotations,omitempty"`
}

// Job is a manifest resolved into model types, ready to hand to the packer.
type Job struct {
	Name     string
	Items    []model.Item
	Bins     []model.Bin
	Settings model.PackSettings
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Save writes the manifest to a TOML file.
func Save(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("encode manifest: %w", err)
	}
	return f.Close()
}

// New converts model values back into a manifest, so the current job can be
// written out and replayed.
func New(name string, items []model.Item, bins []model.Bin, settings model.PackSettings) *Manifest {
	m := &Manifest{
		Name: name,
		Settings: Settings{
			Algorithm: string(settings.Algorithm),
			Sort:      string(settings.ItemSort),
			Profile:   settings.PlanProfile,
			Headroom:  settings.HeadroomPercent,
		},
	}

	for _, b := range bins {
		m.Bins = append(m.Bins, BinEntry{
			Name:      b.Name,
			Width:     b.Dim.Width,
			Height:    b.Dim.Height,
			Depth:     b.Dim.Depth,
			MaxWeight: b.MaxWeight,
			Quantity:  b.Quantity,
			Price:     b.Price,
		})
	}

	for _, it := range items {
		entry := ItemEntry{
			Name:     it.Name,
			Width:    it.Dim.Width,
			Height:   it.Dim.Height,
			Depth:    it.Dim.Depth,
			Weight:   it.Weight,
			Quantity: it.Quantity,
		}
		for _, r := range it.AllowedRotations {
			entry.Rotations = append(entry.Rotations, r.String())
		}
		m.Items = append(m.Items, entry)
	}

	return m
}

// Example returns a starter manifest with the chest freezer job, for
// scaffolding a new file the user can edit.
func Example() *Manifest {
	return &Manifest{
		Name: "Freezer load",
		Settings: Settings{
			Algorithm: string(model.AlgorithmFirstFit),
			Sort:      string(model.SortInput),
			Profile:   "Standard",
		},
		Bins: []BinEntry{
			{Name: "Tiefkühler", Width: 155, Height: 53.5, Depth: 58.5, MaxWeight: 600, Quantity: 1},
		},
		Items: []ItemEntry{
			{Name: "Akku", Width: 48, Height: 28, Depth: 3.5, Weight: 0.1, Quantity: 100},
		},
	}
}

// Build resolves the manifest into model types. Settings fields left empty
// keep their defaults; rotations, algorithm and sort names are validated.
func (m *Manifest) Build() (*Job, error) {
	settings := model.DefaultSettings()

	switch m.Settings.Algorithm {
	case "":
	case string(model.AlgorithmFirstFit):
		settings.Algorithm = model.AlgorithmFirstFit
	case string(model.AlgorithmGenetic):
		settings.Algorithm = model.AlgorithmGenetic
	default:
		return nil, fmt.Errorf("unknown algorithm %q (want %q or %q)",
			m.Settings.Algorithm, model.AlgorithmFirstFit, model.AlgorithmGenetic)
	}

	switch m.Settings.Sort {
	case "":
	case string(model.SortInput):
		settings.ItemSort = model.SortInput
	case "volume", string(model.SortVolumeDesc):
		settings.ItemSort = model.SortVolumeDesc
	case "weight", string(model.SortWeightDesc):
		settings.ItemSort = model.SortWeightDesc
	default:
		return nil, fmt.Errorf("unknown sort mode %q (want input, volume-desc or weight-desc)", m.Settings.Sort)
	}

	if m.Settings.Profile != "" {
		settings.PlanProfile = m.Settings.Profile
	}
	if m.Settings.Headroom > 0 {
		settings.HeadroomPercent = m.Settings.Headroom
	}

	if len(m.Bins) == 0 {
		return nil, fmt.Errorf("manifest has no bins")
	}
	if len(m.Items) == 0 {
		return nil, fmt.Errorf("manifest has no items")
	}

	job := &Job{Name: m.Name, Settings: settings}

	for i, e := range m.Bins {
		qty := e.Quantity
		if qty < 1 {
			qty = 1
		}
		bin, err := model.NewBin(e.Name, e.Width, e.Height, e.Depth, e.MaxWeight, qty)
		if err != nil {
			return nil, fmt.Errorf("bins[%d]: %w", i, err)
		}
		bin.Price = e.Price
		job.Bins = append(job.Bins, bin)
	}

	for i, e := range m.Items {
		qty := e.Quantity
		if qty < 1 {
			qty = 1
		}
		item, err := model.NewItem(e.Name, e.Width, e.Height, e.Depth, e.Weight, qty)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		for _, code := range e.Rotations {
			rot, ok := rotationFromCode(code)
			if !ok {
				return nil, fmt.Errorf("items[%d] (%s): unknown rotation code %q", i, e.Name, code)
			}
			item.AllowedRotations = append(item.AllowedRotations, rot)
		}
		job.Items = append(job.Items, item)
	}

	return job, nil
}

func rotationFromCode(code string) (model.Rotation, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, r := range model.AllRotations {
		if r.String() == normalized {
			return r, true
		}
	}
	return model.RotationWHD, false
}
