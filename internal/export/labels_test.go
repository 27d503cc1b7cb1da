package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CrateStack/internal/model"
)

func buildLabelsTestResult() model.PackResult {
	return model.PackResult{
		Bins: []model.BinResult{
			{
				Bin: model.Bin{
					ID: "b1", Name: "Euro Crate",
					Dim:       model.Dimension{Width: 120, Height: 80, Depth: 100},
					MaxWeight: 500, Quantity: 1,
				},
				Placements: []model.Placement{
					{
						Item: model.Item{ID: "i1", Name: "Carton A",
							Dim:    model.Dimension{Width: 60, Height: 40, Depth: 50},
							Weight: 12, Quantity: 1},
						Position: model.Position{X: 0, Y: 0, Z: 0},
						Rotation: model.RotationWHD,
					},
					{
						Item: model.Item{ID: "i2", Name: "Carton B",
							Dim:    model.Dimension{Width: 40, Height: 60, Depth: 50},
							Weight: 8, Quantity: 1},
						Position: model.Position{X: 60, Y: 0, Z: 0},
						Rotation: model.RotationHWD,
					},
				},
			},
			{
				Bin: model.Bin{
					ID: "b2", Name: "Half Crate",
					Dim:       model.Dimension{Width: 60, Height: 40, Depth: 80},
					MaxWeight: 200, Quantity: 1,
				},
				Placements: []model.Placement{
					{
						Item: model.Item{ID: "i3", Name: "Carton C",
							Dim:    model.Dimension{Width: 50, Height: 30, Depth: 70},
							Weight: 5, Quantity: 1},
						Position: model.Position{X: 0, Y: 0, Z: 0},
						Rotation: model.RotationWHD,
					},
				},
			},
		},
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	result := buildLabelsTestResult()
	err := ExportLabels(path, result)
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	result := model.PackResult{Bins: nil}
	err := ExportLabels(path, result)
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportLabels_NoPlacements(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no_placements.pdf")

	result := model.PackResult{
		Bins: []model.BinResult{
			{
				Bin: model.Bin{ID: "b1", Name: "Crate",
					Dim:       model.Dimension{Width: 100, Height: 50, Depth: 50},
					MaxWeight: 100, Quantity: 1},
			},
		},
	}
	err := ExportLabels(path, result)
	if err == nil {
		t.Fatal("expected error for result with no placements, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	result := buildLabelsTestResult()
	labels := CollectLabelInfos(result)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	// Check first label
	if labels[0].ItemName != "Carton A" {
		t.Errorf("expected first label to be 'Carton A', got %q", labels[0].ItemName)
	}
	if labels[0].Width != 60 || labels[0].Height != 40 || labels[0].Depth != 50 {
		t.Errorf("wrong dimensions: got %gx%gx%g, want 60x40x50",
			labels[0].Width, labels[0].Height, labels[0].Depth)
	}
	if labels[0].BinIndex != 1 {
		t.Errorf("expected bin index 1, got %d", labels[0].BinIndex)
	}
	if labels[0].Rotation != "WHD" {
		t.Errorf("expected WHD rotation, got %q", labels[0].Rotation)
	}

	// Check second label (rotated)
	if labels[1].Rotation != "HWD" {
		t.Errorf("expected second label rotation HWD, got %q", labels[1].Rotation)
	}
	if labels[1].X != 60 {
		t.Errorf("expected second label X 60, got %g", labels[1].X)
	}

	// Check third label (second bin)
	if labels[2].BinIndex != 2 {
		t.Errorf("expected bin index 2 for third label, got %d", labels[2].BinIndex)
	}
	if labels[2].BinName != "Half Crate" {
		t.Errorf("expected bin name 'Half Crate', got %q", labels[2].BinName)
	}
}

func TestLabelInfo_JSONRoundTrip(t *testing.T) {
	info := LabelInfo{
		ItemName: "Test Carton",
		Width:    30,
		Height:   20,
		Depth:    15,
		Weight:   2.5,
		BinIndex: 1,
		BinName:  "Crate",
		Rotation: "HDW",
		X:        50,
		Y:        10,
		Z:        25,
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if decoded.ItemName != info.ItemName {
		t.Errorf("name mismatch: got %q, want %q", decoded.ItemName, info.ItemName)
	}
	if decoded.Width != info.Width || decoded.Height != info.Height || decoded.Depth != info.Depth {
		t.Errorf("dimensions mismatch: got %gx%gx%g, want %gx%gx%g",
			decoded.Width, decoded.Height, decoded.Depth, info.Width, info.Height, info.Depth)
	}
	if decoded.Rotation != info.Rotation {
		t.Error("rotation mismatch")
	}
	if decoded.Z != info.Z {
		t.Errorf("z mismatch: got %g, want %g", decoded.Z, info.Z)
	}
}

func TestExportLabels_ManyItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_labels.pdf")

	// Create 35 placements to test multi-page label generation
	placements := make([]model.Placement, 35)
	for i := range placements {
		placements[i] = model.Placement{
			Item: model.Item{
				ID:       fmt.Sprintf("i%d", i),
				Name:     fmt.Sprintf("Box %d", i),
				Dim:      model.Dimension{Width: 10, Height: 10, Depth: 10},
				Weight:   1,
				Quantity: 1,
			},
			Position: model.Position{X: float64(i * 10)},
			Rotation: model.RotationWHD,
		}
	}

	result := model.PackResult{
		Bins: []model.BinResult{
			{
				Bin: model.Bin{
					ID: "b1", Name: "Long Crate",
					Dim:       model.Dimension{Width: 400, Height: 20, Depth: 20},
					MaxWeight: 100, Quantity: 1,
				},
				Placements: placements,
			},
		},
	}

	err := ExportLabels(path, result)
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}
