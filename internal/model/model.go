package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Item represents a single cuboid to be packed into a bin.
type Item struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Dim      Dimension `json:"dim"`
	Weight   float64   `json:"weight"` // kg
	Quantity int       `json:"quantity"`

	// AllowedRotations restricts the orientations the packer may use.
	// Nil or empty means all six are allowed.
	AllowedRotations []Rotation `json:"allowed_rotations,omitempty"`
}

// NewItem validates and builds an Item. Dimensions must be positive and the
// weight non-negative.
func NewItem(name string, w, h, d, weight float64, qty int) (Item, error) {
	dim, err := NewDimension(w, h, d)
	if err != nil {
		return Item{}, WrapError(ErrCodeInvalidItem, err, "item %q", name)
	}
	if weight < 0 {
		return Item{}, NewError(ErrCodeInvalidItem,
			"item %q: weight must be non-negative, got %g", name, weight)
	}
	return Item{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Dim:      dim,
		Weight:   weight,
		Quantity: qty,
	}, nil
}

// Volume returns the item volume, which is rotation-invariant.
func (i Item) Volume() float64 {
	return i.Dim.Volume()
}

// Rotations returns the orientations the packer may try, in placement order.
func (i Item) Rotations() []Rotation {
	if len(i.AllowedRotations) == 0 {
		return AllRotations
	}
	var rots []Rotation
	for _, r := range i.AllowedRotations {
		if r.Valid() {
			rots = append(rots, r)
		}
	}
	if len(rots) == 0 {
		return AllRotations
	}
	return rots
}

// AllowsRotation reports whether the item accepts the given orientation.
func (i Item) AllowsRotation(r Rotation) bool {
	for _, allowed := range i.Rotations() {
		if allowed == r {
			return true
		}
	}
	return false
}

// Bin represents an available container to pack items into.
type Bin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dim       Dimension `json:"dim"`
	MaxWeight float64   `json:"max_weight"` // kg
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price,omitempty"` // Cost per bin, used by load estimates
}

// NewBin validates and builds a Bin. Dimensions must be positive and the
// weight capacity non-negative.
func NewBin(name string, w, h, d, maxWeight float64, qty int) (Bin, error) {
	dim, err := NewDimension(w, h, d)
	if err != nil {
		return Bin{}, WrapError(ErrCodeInvalidDimension, err, "bin %q", name)
	}
	if maxWeight < 0 {
		return Bin{}, NewError(ErrCodeInvalidBin,
			"bin %q: weight capacity must be non-negative, got %g", name, maxWeight)
	}
	return Bin{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Dim:       dim,
		MaxWeight: maxWeight,
		Quantity:  qty,
	}, nil
}

// Volume returns the bin's interior volume.
func (b Bin) Volume() float64 {
	return b.Dim.Volume()
}

// Algorithm represents the packing algorithm to use.
type Algorithm string

const (
	AlgorithmFirstFit Algorithm = "firstfit" // Greedy anchor-point first-fit (fast, deterministic)
	AlgorithmGenetic  Algorithm = "genetic"  // Genetic algorithm meta-heuristic (slower, often better)
)

// SortMode controls how items are ordered before packing.
type SortMode string

const (
	SortInput      SortMode = "input"       // Keep the caller's order
	SortVolumeDesc SortMode = "volume-desc" // Largest volume first
	SortWeightDesc SortMode = "weight-desc" // Heaviest first
)

// PackSettings holds packer and output configuration.
type PackSettings struct {
	Algorithm Algorithm `json:"algorithm"` // Packing algorithm: "firstfit" or "genetic"
	ItemSort  SortMode  `json:"item_sort"` // Item ordering applied before packing

	// Load plan output
	PlanProfile string `json:"plan_profile"` // Name of the load plan profile to use

	// Purchase estimate
	HeadroomPercent float64 `json:"headroom_percent"` // Spare capacity reserved when estimating bins to buy
}

// PlanProfile defines an output style for generated load plans. Warehouses
// differ in how much detail loaders want per step, so the format is a
// configurable profile rather than a fixed template.
type PlanProfile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description
	IsBuiltIn   bool   `json:"is_built_in,omitempty"`

	HeaderLines   []string `json:"header_lines"`   // Lines emitted at the top of every plan
	FooterLines   []string `json:"footer_lines"`   // Lines emitted after the last step
	StepPrefix    string   `json:"step_prefix"`    // Prefix for each step line (e.g. "STEP" or "[ ]")
	CommentPrefix string   `json:"comment_prefix"` // Prefix for annotation lines
	ShowRotation  bool     `json:"show_rotation"`  // Include the orientation code per step
	ShowWeight    bool     `json:"show_weight"`    // Include the running load weight per step
	DecimalPlaces int      `json:"decimal_places"` // Coordinate precision
}

// Built-in load plan profiles
var PlanProfiles = []PlanProfile{
	{
		Name:          "Standard",
		Description:   "Full loading instructions with orientation and running weight",
		IsBuiltIn:     true,
		HeaderLines:   []string{"LOAD PLAN"},
		FooterLines:   []string{"END OF PLAN"},
		StepPrefix:    "STEP",
		CommentPrefix: "#",
		ShowRotation:  true,
		ShowWeight:    true,
		DecimalPlaces: 1,
	},
	{
		Name:          "Compact",
		Description:   "One line per item, coordinates only",
		IsBuiltIn:     true,
		HeaderLines:   nil,
		FooterLines:   nil,
		StepPrefix:    "STEP",
		CommentPrefix: "#",
		ShowRotation:  true,
		ShowWeight:    false,
		DecimalPlaces: 0,
	},
	{
		Name:          "Checklist",
		Description:   "Printable checklist with a tick box per item",
		IsBuiltIn:     true,
		HeaderLines:   []string{"LOAD PLAN", "Tick each step as the item is loaded."},
		FooterLines:   []string{"Loaded by: ____________", "Date: ____________"},
		StepPrefix:    "[ ] STEP",
		CommentPrefix: "#",
		ShowRotation:  true,
		ShowWeight:    true,
		DecimalPlaces: 1,
	},
	{
		Name:          "Plain",
		Description:   "Minimal output without headers or annotations",
		IsBuiltIn:     true,
		HeaderLines:   nil,
		FooterLines:   nil,
		StepPrefix:    "STEP",
		CommentPrefix: "#",
		ShowRotation:  false,
		ShowWeight:    false,
		DecimalPlaces: 1,
	},
}

// CustomProfiles holds user-defined plan profiles loaded from the config
// directory. They extend the built-in set.
var CustomProfiles []PlanProfile

// AllPlanProfiles returns built-in and custom profiles combined.
func AllPlanProfiles() []PlanProfile {
	all := make([]PlanProfile, 0, len(PlanProfiles)+len(CustomProfiles))
	all = append(all, PlanProfiles...)
	all = append(all, CustomProfiles...)
	return all
}

// GetPlanProfile returns a load plan profile by name, searching built-in and
// custom profiles, or the Plain profile if not found.
func GetPlanProfile(name string) PlanProfile {
	for _, p := range AllPlanProfiles() {
		if p.Name == name {
			return p
		}
	}
	return PlanProfiles[len(PlanProfiles)-1] // Return Plain (last one)
}

// GetPlanProfileNames returns a list of all available profile names.
func GetPlanProfileNames() []string {
	var names []string
	for _, p := range AllPlanProfiles() {
		names = append(names, p.Name)
	}
	return names
}

// AddCustomProfile adds or updates a custom plan profile. Built-in profile
// names cannot be overridden.
func AddCustomProfile(p PlanProfile) error {
	for _, b := range PlanProfiles {
		if b.Name == p.Name {
			return fmt.Errorf("profile name %q is reserved for a built-in profile", p.Name)
		}
	}
	p.IsBuiltIn = false
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == p.Name {
			CustomProfiles[i] = p
			return nil
		}
	}
	CustomProfiles = append(CustomProfiles, p)
	return nil
}

// RemoveCustomProfile removes a custom profile by name.
func RemoveCustomProfile(name string) error {
	for _, b := range PlanProfiles {
		if b.Name == name {
			return fmt.Errorf("cannot remove built-in profile %q", name)
		}
	}
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == name {
			CustomProfiles = append(CustomProfiles[:i], CustomProfiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("profile %q not found", name)
}

// NewCustomProfile returns a new custom profile initialized from the Plain
// built-in so callers start from working defaults.
func NewCustomProfile(name string) PlanProfile {
	p := GetPlanProfile("Plain")
	p.Name = name
	p.Description = ""
	p.IsBuiltIn = false
	return p
}

func DefaultSettings() PackSettings {
	return PackSettings{
		Algorithm:       AlgorithmFirstFit,
		ItemSort:        SortInput,
		PlanProfile:     "Standard",
		HeadroomPercent: 10.0,
	}
}

// Placement represents a single item placed inside a bin.
type Placement struct {
	Item     Item     `json:"item"`
	Position Position `json:"position"` // Minimum corner in bin coordinates
	Rotation Rotation `json:"rotation"`
}

// PlacedDim returns the effective extents considering rotation.
func (p Placement) PlacedDim() Dimension {
	return p.Item.Dim.Rotate(p.Rotation)
}

// BinResult represents one bin with its placed items, in placement order.
type BinResult struct {
	Bin        Bin         `json:"bin"`
	Placements []Placement `json:"placements"`
}

// UsedVolume returns the total volume occupied by placed items.
func (br BinResult) UsedVolume() float64 {
	var total float64
	for _, p := range br.Placements {
		total += p.Item.Volume()
	}
	return total
}

// TotalVolume returns the bin's interior volume.
func (br BinResult) TotalVolume() float64 {
	return br.Bin.Volume()
}

// Efficiency returns the volume usage percentage.
func (br BinResult) Efficiency() float64 {
	tv := br.TotalVolume()
	if tv == 0 {
		return 0
	}
	return (br.UsedVolume() / tv) * 100.0
}

// TotalWeight returns the combined weight of placed items.
func (br BinResult) TotalWeight() float64 {
	var total float64
	for _, p := range br.Placements {
		total += p.Item.Weight
	}
	return total
}

// RemainingWeight returns the weight capacity still available.
func (br BinResult) RemainingWeight() float64 {
	return br.Bin.MaxWeight - br.TotalWeight()
}

// PackResult holds the full solution.
type PackResult struct {
	Bins     []BinResult `json:"bins"`
	Unfitted []Item      `json:"unfitted"`
}

// FittedCount returns the number of placed items across all bins.
func (pr PackResult) FittedCount() int {
	count := 0
	for _, b := range pr.Bins {
		count += len(b.Placements)
	}
	return count
}

// TotalCost returns the combined price of all used bins, 0 when no pricing
// is set.
func (pr PackResult) TotalCost() float64 {
	var total float64
	for _, b := range pr.Bins {
		total += b.Bin.Price
	}
	return total
}

// HasPricing reports whether any used bin carries a price.
func (pr PackResult) HasPricing() bool {
	for _, b := range pr.Bins {
		if b.Bin.Price > 0 {
			return true
		}
	}
	return false
}

// TotalEfficiency returns overall volume usage percentage across used bins.
func (pr PackResult) TotalEfficiency() float64 {
	var usedVolume, totalVolume float64
	for _, b := range pr.Bins {
		usedVolume += b.UsedVolume()
		totalVolume += b.TotalVolume()
	}
	if totalVolume == 0 {
		return 0
	}
	return (usedVolume / totalVolume) * 100.0
}

// Project ties everything together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Items    []Item       `json:"items"`
	Bins     []Bin        `json:"bins"`
	Settings PackSettings `json:"settings"`
	Result   *PackResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Items:    []Item{},
		Bins:     []Bin{},
		Settings: DefaultSettings(),
	}
}
