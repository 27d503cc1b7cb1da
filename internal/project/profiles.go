package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/CrateStack/internal/model"
)

// DefaultProfilesPath returns the default file path for custom plan profiles.
// This is located at ~/.cratestack/profiles.json.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cratestack", "profiles.json"), nil
}

// SaveCustomProfiles saves custom plan profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.PlanProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom plan profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.PlanProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.PlanProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.PlanProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []model.PlanProfile) error {
	path, err := DefaultProfilesPath()
	if err != nil {
		return err
	}
	return SaveCustomProfiles(path, profiles)
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path.
func LoadCustomProfilesFromDefault() ([]model.PlanProfile, error) {
	path, err := DefaultProfilesPath()
	if err != nil {
		return nil, err
	}
	return LoadCustomProfiles(path)
}

// ExportProfile exports a single plan profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.PlanProfile) error {
	profile.IsBuiltIn = false
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single plan profile from a JSON file.
func ImportProfile(path string) (model.PlanProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PlanProfile{}, err
	}

	var profile model.PlanProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.PlanProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.PlanProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
