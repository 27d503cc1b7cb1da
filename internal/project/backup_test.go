package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CrateStack/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultHeadroomPercent = 25.0
	cfg.DefaultItemSort = model.SortVolumeDesc

	inv := model.DefaultInventory()

	if err := ExportAllData(path, cfg, inv); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultHeadroomPercent != 25.0 {
		t.Errorf("expected DefaultHeadroomPercent=25.0, got %f", backup.Config.DefaultHeadroomPercent)
	}
	if backup.Config.DefaultItemSort != model.SortVolumeDesc {
		t.Errorf("expected item sort volume-desc, got %s", backup.Config.DefaultItemSort)
	}
	if len(backup.Inventory.Bins) != len(inv.Bins) {
		t.Errorf("expected %d bin presets, got %d", len(inv.Bins), len(backup.Inventory.Bins))
	}
	if len(backup.Inventory.Items) != len(inv.Items) {
		t.Errorf("expected %d item presets, got %d", len(inv.Items), len(backup.Inventory.Items))
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.DefaultInventory()); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file was not created: %v", err)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData("/nonexistent/backup.json"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")

	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for backup without version, got nil")
	}
}

func TestImportAllDataNilRecentProjects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	if err := os.WriteFile(path, []byte(`{"version":"1.0.0","config":{}}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects must be initialized to an empty slice")
	}
}
