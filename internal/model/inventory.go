package model

import "github.com/google/uuid"

// BinPreset represents a reusable bin definition.
type BinPreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	MaxWeight float64 `json:"max_weight"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
}

// NewBinPreset creates a new BinPreset with a generated ID.
func NewBinPreset(name string, width, height, depth, maxWeight, price float64, category string) BinPreset {
	return BinPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     width,
		Height:    height,
		Depth:     depth,
		MaxWeight: maxWeight,
		Price:     price,
		Category:  category,
	}
}

// ToBin converts a BinPreset into a Bin with the given quantity.
func (bp BinPreset) ToBin(qty int) (Bin, error) {
	bin, err := NewBin(bp.Name, bp.Width, bp.Height, bp.Depth, bp.MaxWeight, qty)
	if err != nil {
		return Bin{}, err
	}
	bin.Price = bp.Price
	return bin, nil
}

// ItemPreset represents a reusable item definition.
type ItemPreset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Depth    float64 `json:"depth"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category"`
}

// NewItemPreset creates a new ItemPreset with a generated ID.
func NewItemPreset(name string, width, height, depth, weight float64, category string) ItemPreset {
	return ItemPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    width,
		Height:   height,
		Depth:    depth,
		Weight:   weight,
		Category: category,
	}
}

// ToItem converts an ItemPreset into an Item with the given quantity.
func (ip ItemPreset) ToItem(qty int) (Item, error) {
	return NewItem(ip.Name, ip.Width, ip.Height, ip.Depth, ip.Weight, qty)
}

// Inventory holds the user's saved bin and item presets.
type Inventory struct {
	Bins  []BinPreset  `json:"bins"`
	Items []ItemPreset `json:"items"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Bins: []BinPreset{
			NewBinPreset("Chest Freezer 155x53.5x58.5", 155, 53.5, 58.5, 600, 0, "Freezer"),
			NewBinPreset("EUR Gitterbox 123.5x97x83.5", 123.5, 97, 83.5, 1500, 120, "Pallet"),
			NewBinPreset("Euro Container 60x32x40", 60, 32, 40, 45, 9.5, "Container"),
			NewBinPreset("Shipping Carton 60x40x40", 60, 40, 40, 30, 1.9, "Carton"),
			NewBinPreset("Shipping Carton 40x30x20", 40, 30, 20, 20, 0.9, "Carton"),
		},
		Items: []ItemPreset{
			NewItemPreset("Battery Slab 48x28x3.5", 48, 28, 3.5, 0.1, "Battery"),
			NewItemPreset("Beverage Crate 40x30x30", 40, 30, 30, 17.0, "Crate"),
			NewItemPreset("Banana Box 56x36x27", 56, 36, 27, 18.0, "Box"),
			NewItemPreset("Archive Box 38x27x30", 38, 27, 30, 5.5, "Box"),
			NewItemPreset("Shoe Box 33x19x12", 33, 19, 12, 1.2, "Box"),
			NewItemPreset("Wine Case 50x34x19", 50, 34, 19, 16.5, "Case"),
		},
	}
}

// FindBinByID returns a pointer to the bin preset with the given ID, or nil.
func (inv *Inventory) FindBinByID(id string) *BinPreset {
	for i := range inv.Bins {
		if inv.Bins[i].ID == id {
			return &inv.Bins[i]
		}
	}
	return nil
}

// FindItemByID returns a pointer to the item preset with the given ID, or nil.
func (inv *Inventory) FindItemByID(id string) *ItemPreset {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return &inv.Items[i]
		}
	}
	return nil
}

// BinNames returns a list of bin preset names for listings.
func (inv *Inventory) BinNames() []string {
	names := make([]string, len(inv.Bins))
	for i, b := range inv.Bins {
		names[i] = b.Name
	}
	return names
}

// ItemNames returns a list of item preset names for listings.
func (inv *Inventory) ItemNames() []string {
	names := make([]string, len(inv.Items))
	for i, it := range inv.Items {
		names[i] = it.Name
	}
	return names
}

// FindBinByName returns a pointer to the first bin preset with the given name, or nil.
func (inv *Inventory) FindBinByName(name string) *BinPreset {
	for i := range inv.Bins {
		if inv.Bins[i].Name == name {
			return &inv.Bins[i]
		}
	}
	return nil
}

// FindItemByName returns a pointer to the first item preset with the given name, or nil.
func (inv *Inventory) FindItemByName(name string) *ItemPreset {
	for i := range inv.Items {
		if inv.Items[i].Name == name {
			return &inv.Items[i]
		}
	}
	return nil
}
