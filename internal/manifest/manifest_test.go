package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/CrateStack/internal/model"
)

const sampleManifest = `
name = "Freezer shipment"

[settings]
algorithm = "genetic"
sort = "volume-desc"
profile = "Checklist"
headroom_percent = 25.0

[[bins]]
name = "Tiefkühler"
width = 155.0
height = 53.5
depth = 58.5
max_weight = 600.0
quantity = 2

[[items]]
name = "Akku"
width = 48.0
height = 28.0
depth = 3.5
weight = 0.1
quantity = 100

[[items]]
name = "Ladegerät"
width = 20.0
height = 12.0
depth = 8.0
weight = 0.6
quantity = 4
rotations = ["WHD", "HWD"]
`

func TestParse_FullManifest(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Name != "Freezer shipment" {
		t.Errorf("expected name 'Freezer shipment', got %q", m.Name)
	}
	if m.Settings.Algorithm != "genetic" {
		t.Errorf("expected algorithm genetic, got %q", m.Settings.Algorithm)
	}
	if len(m.Bins) != 1 {
		t.Fatalf("expected 1 bin, got %d", len(m.Bins))
	}
	if m.Bins[0].Height != 53.5 {
		t.Errorf("expected bin height 53.5, got %g", m.Bins[0].Height)
	}
	if len(m.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.Items))
	}
	if m.Items[1].Rotations[1] != "HWD" {
		t.Errorf("expected second rotation HWD, got %q", m.Items[1].Rotations[1])
	}
}

func TestParse_InvalidTOML(t *testing.T) {
	if _, err := Parse([]byte("not [valid toml")); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/job.toml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.toml")

	if err := Save(path, Example()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != "Freezer load" {
		t.Errorf("expected name 'Freezer load', got %q", loaded.Name)
	}
	if len(loaded.Bins) != 1 || loaded.Bins[0].Name != "Tiefkühler" {
		t.Errorf("unexpected bins after round trip: %+v", loaded.Bins)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Quantity != 100 {
		t.Errorf("unexpected items after round trip: %+v", loaded.Items)
	}
}

func TestSave_WritesReadableTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.toml")

	if err := Save(path, Example()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "[[bins]]") {
		t.Errorf("expected bins table array in output, got:\n%s", text)
	}
	if !strings.Contains(text, "[[items]]") {
		t.Errorf("expected items table array in output, got:\n%s", text)
	}
}

func TestBuild_AppliesSettings(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if job.Settings.Algorithm != model.AlgorithmGenetic {
		t.Errorf("expected genetic algorithm, got %s", job.Settings.Algorithm)
	}
	if job.Settings.ItemSort != model.SortVolumeDesc {
		t.Errorf("expected volume-desc sort, got %s", job.Settings.ItemSort)
	}
	if job.Settings.PlanProfile != "Checklist" {
		t.Errorf("expected Checklist profile, got %s", job.Settings.PlanProfile)
	}
	if job.Settings.HeadroomPercent != 25.0 {
		t.Errorf("expected headroom 25, got %g", job.Settings.HeadroomPercent)
	}
}

func TestBuild_EmptySettingsKeepDefaults(t *testing.T) {
	m := &Manifest{
		Bins:  []BinEntry{{Name: "Box", Width: 100, Height: 100, Depth: 100}},
		Items: []ItemEntry{{Name: "Thing", Width: 10, Height: 10, Depth: 10}},
	}

	job, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	defaults := model.DefaultSettings()
	if job.Settings != defaults {
		t.Errorf("expected default settings, got %+v", job.Settings)
	}
	// Omitted quantities count as one
	if job.Bins[0].Quantity != 1 {
		t.Errorf("expected bin quantity 1, got %d", job.Bins[0].Quantity)
	}
	if job.Items[0].Quantity != 1 {
		t.Errorf("expected item quantity 1, got %d", job.Items[0].Quantity)
	}
}

func TestBuild_SortShorthands(t *testing.T) {
	m := &Manifest{
		Settings: Settings{Sort: "volume"},
		Bins:     []BinEntry{{Name: "Box", Width: 100, Height: 100, Depth: 100}},
		Items:    []ItemEntry{{Name: "Thing", Width: 10, Height: 10, Depth: 10}},
	}

	job, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if job.Settings.ItemSort != model.SortVolumeDesc {
		t.Errorf("expected volume shorthand to map to volume-desc, got %s", job.Settings.ItemSort)
	}

	m.Settings.Sort = "weight"
	job, err = m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if job.Settings.ItemSort != model.SortWeightDesc {
		t.Errorf("expected weight shorthand to map to weight-desc, got %s", job.Settings.ItemSort)
	}
}

func TestBuild_UnknownAlgorithm(t *testing.T) {
	m := &Manifest{
		Settings: Settings{Algorithm: "quantum"},
		Bins:     []BinEntry{{Name: "Box", Width: 100, Height: 100, Depth: 100}},
		Items:    []ItemEntry{{Name: "Thing", Width: 10, Height: 10, Depth: 10}},
	}

	_, err := m.Build()
	if err == nil || !strings.Contains(err.Error(), "unknown algorithm") {
		t.Fatalf("expected unknown algorithm error, got %v", err)
	}
}

func TestBuild_UnknownSort(t *testing.T) {
	m := &Manifest{
		Settings: Settings{Sort: "random"},
		Bins:     []BinEntry{{Name: "Box", Width: 100, Height: 100, Depth: 100}},
		Items:    []ItemEntry{{Name: "Thing", Width: 10, Height: 10, Depth: 10}},
	}

	_, err := m.Build()
	if err == nil || !strings.Contains(err.Error(), "unknown sort mode") {
		t.Fatalf("expected unknown sort error, got %v", err)
	}
}

func TestBuild_RequiresBinsAndItems(t *testing.T) {
	m := &Manifest{
		Items: []ItemEntry{{Name: "Thing", Width: 10, Height: 10, Depth: 10}},
	}
	if _, err := m.Build(); err == nil || !strings.Contains(err.Error(), "no bins") {
		t.Fatalf("expected no-bins error, got %v", err)
	}

	m = &Manifest{
		Bins: []BinEntry{{Name: "Box", Width: 100, Height: 100, Depth: 100}},
	}
	if _, err := m.Build(); err == nil || !strings.Contains(err.Error(), "no items") {
		t.Fatalf("expected no-items error, got %v", err)
	}
}

func TestBuild_InvalidDimension(t *testing.T) {
	m := &Manifest{
		Bins:  []BinEntry{{Name: "Box", Width: -1, Height: 100, Depth: 100}},
		Items: []ItemEntry{{Name: "Thing", Width: 10, Height: 10, Depth: 10}},
	}

	_, err := m.Build()
	if err == nil {
		t.Fatal("expected error for negative bin width")
	}
	if !strings.Contains(err.Error(), "bins[0]") {
		t.Errorf("expected error to name the bin entry, got %v", err)
	}
	if !model.IsCode(err, model.ErrCodeInvalidDimension) {
		t.Errorf("expected invalid dimension code in chain, got %v", err)
	}
}

func TestBuild_Rotations(t *testing.T) {
	m := &Manifest{
		Bins: []BinEntry{{Name: "Box", Width: 100, Height: 100, Depth: 100}},
		Items: []ItemEntry{
			{Name: "Thing", Width: 10, Height: 10, Depth: 10, Rotations: []string{"WHD", "dhw"}},
		},
	}

	job, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	rots := job.Items[0].AllowedRotations
	if len(rots) != 2 || rots[0] != model.RotationWHD || rots[1] != model.RotationDHW {
		t.Errorf("expected [WHD DHW], got %v", rots)
	}
}

func TestBuild_UnknownRotation(t *testing.T) {
	m := &Manifest{
		Bins: []BinEntry{{Name: "Box", Width: 100, Height: 100, Depth: 100}},
		Items: []ItemEntry{
			{Name: "Thing", Width: 10, Height: 10, Depth: 10, Rotations: []string{"XYZ"}},
		},
	}

	_, err := m.Build()
	if err == nil || !strings.Contains(err.Error(), "unknown rotation code") {
		t.Fatalf("expected unknown rotation error, got %v", err)
	}
}

func TestNew_FromModelValues(t *testing.T) {
	item, err := model.NewItem("Akku", 48, 28, 3.5, 0.1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item.AllowedRotations = []model.Rotation{model.RotationWHD, model.RotationHDW}

	bin, err := model.NewBin("Tiefkühler", 155, 53.5, 58.5, 600, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin.Price = 450

	m := New("Restock", []model.Item{item}, []model.Bin{bin}, model.DefaultSettings())

	if m.Name != "Restock" {
		t.Errorf("expected name Restock, got %q", m.Name)
	}
	if m.Bins[0].Price != 450 {
		t.Errorf("expected price 450, got %g", m.Bins[0].Price)
	}
	if len(m.Items[0].Rotations) != 2 || m.Items[0].Rotations[1] != "HDW" {
		t.Errorf("unexpected rotations: %v", m.Items[0].Rotations)
	}

	// The generated manifest must build back into an equivalent job
	job, err := m.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if job.Items[0].Name != "Akku" || job.Items[0].Quantity != 100 {
		t.Errorf("unexpected rebuilt item: %+v", job.Items[0])
	}
	if job.Items[0].AllowedRotations[1] != model.RotationHDW {
		t.Errorf("unexpected rebuilt rotations: %v", job.Items[0].AllowedRotations)
	}
}

func TestExample_Builds(t *testing.T) {
	job, err := Example().Build()
	if err != nil {
		t.Fatalf("example manifest should build: %v", err)
	}
	if len(job.Bins) != 1 || len(job.Items) != 1 {
		t.Fatalf("unexpected job contents: %d bins, %d items", len(job.Bins), len(job.Items))
	}
	if job.Items[0].Quantity != 100 {
		t.Errorf("expected 100 copies, got %d", job.Items[0].Quantity)
	}
}
