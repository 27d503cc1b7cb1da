package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CrateStack/internal/manifest"
	"github.com/piwi3910/CrateStack/internal/model"
	"github.com/piwi3910/CrateStack/internal/project"
)

func TestLoadCustomProfiles_RegistersSavedProfiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { model.CustomProfiles = nil })
	model.CustomProfiles = nil

	saved := model.PlanProfile{
		Name:          "Warehouse",
		Description:   "forklift crew checklist",
		StepPrefix:    "[ ]",
		CommentPrefix: "#",
		ShowRotation:  true,
		DecimalPlaces: 0,
	}
	if err := project.SaveCustomProfilesToDefault([]model.PlanProfile{saved}); err != nil {
		t.Fatalf("save profiles: %v", err)
	}

	// Before loading, the name resolves to the fallback profile
	if got := model.GetPlanProfile("Warehouse"); got.Name == "Warehouse" {
		t.Fatal("profile registry already holds the custom profile")
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.loadCustomProfiles()

	got := model.GetPlanProfile("Warehouse")
	if got.Name != "Warehouse" {
		t.Fatalf("GetPlanProfile after load = %q, want Warehouse", got.Name)
	}
	if got.StepPrefix != "[ ]" || !got.ShowRotation {
		t.Errorf("loaded profile lost its fields: %+v", got)
	}
	if got.IsBuiltIn {
		t.Error("custom profile must not be marked built-in")
	}
}

func TestLoadCustomProfiles_NoFileIsQuiet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { model.CustomProfiles = nil })
	model.CustomProfiles = nil

	c := New(&bytes.Buffer{}, LogInfo)
	c.loadCustomProfiles()

	if len(model.CustomProfiles) != 0 {
		t.Errorf("expected no custom profiles, got %d", len(model.CustomProfiles))
	}
}

func TestWriteOutputs_SaveManifestRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	path := filepath.Join(tmp, "job.toml")

	item, err := model.NewItem("Akku", 48, 28, 3.5, 0.1, 100)
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	bin, err := model.NewBin("Tiefkühler", 155, 53.5, 58.5, 600, 1)
	if err != nil {
		t.Fatalf("bin: %v", err)
	}
	settings := model.DefaultSettings()

	c := New(&bytes.Buffer{}, LogInfo)
	opts := &packOpts{manifestSave: path}
	if err := c.writeOutputs(opts, "Freezer load", []model.Item{item}, []model.Bin{bin}, settings, model.PackResult{}); err != nil {
		t.Fatalf("writeOutputs: %v", err)
	}

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("load written manifest: %v", err)
	}
	job, err := m.Build()
	if err != nil {
		t.Fatalf("build written manifest: %v", err)
	}
	if job.Name != "Freezer load" {
		t.Errorf("job name = %q", job.Name)
	}
	if len(job.Items) != 1 || job.Items[0].Quantity != 100 {
		t.Errorf("items did not survive the round trip: %+v", job.Items)
	}
	if len(job.Bins) != 1 || job.Bins[0].Name != "Tiefkühler" {
		t.Errorf("bins did not survive the round trip: %+v", job.Bins)
	}
}
