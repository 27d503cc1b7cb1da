// Package project handles persistence of projects, presets, templates and
// application configuration as JSON files under ~/.cratestack/.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CrateStack/internal/model"
)

// ProjectExtension is the file extension for saved project files.
const ProjectExtension = ".crate"

// SaveProject writes a project to the specified file as JSON. The .crate
// extension is appended when missing so saved files stay recognizable.
func SaveProject(path string, proj model.Project) error {
	if !strings.HasSuffix(path, ProjectExtension) && !strings.HasSuffix(path, ".json") {
		path += ProjectExtension
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project from the specified file.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}

	var proj model.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}

	if proj.Name == "" {
		proj.Name = strings.TrimSuffix(filepath.Base(path), ProjectExtension)
	}
	if proj.Items == nil {
		proj.Items = []model.Item{}
	}
	if proj.Bins == nil {
		proj.Bins = []model.Bin{}
	}
	return proj, nil
}
