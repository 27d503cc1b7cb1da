package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable project configuration that captures
// items, bins, and settings but not pack results.
type ProjectTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Items       []Item       `json:"items"`
	Bins        []Bin        `json:"bins"`
	Settings    PackSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
// It copies items, bins, and settings but intentionally excludes results.
func NewProjectTemplate(name, description string, items []Item, bins []Bin, settings PackSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       copyItems(items),
		Bins:        copyBins(bins),
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template.
// Items and bins get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) (Project, error) {
	items := make([]Item, len(t.Items))
	for i, it := range t.Items {
		fresh, err := NewItem(it.Name, it.Dim.Width, it.Dim.Height, it.Dim.Depth, it.Weight, it.Quantity)
		if err != nil {
			return Project{}, err
		}
		fresh.AllowedRotations = it.AllowedRotations
		items[i] = fresh
	}

	bins := make([]Bin, len(t.Bins))
	for i, b := range t.Bins {
		fresh, err := NewBin(b.Name, b.Dim.Width, b.Dim.Height, b.Dim.Depth, b.MaxWeight, b.Quantity)
		if err != nil {
			return Project{}, err
		}
		fresh.Price = b.Price
		bins[i] = fresh
	}

	return Project{
		Name:     projectName,
		Items:    items,
		Bins:     bins,
		Settings: t.Settings,
	}, nil
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for listings.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// copyItems creates a copy of an items slice.
func copyItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return cp
}

// copyBins creates a copy of a bins slice.
func copyBins(bins []Bin) []Bin {
	if bins == nil {
		return []Bin{}
	}
	cp := make([]Bin, len(bins))
	copy(cp, bins)
	return cp
}
