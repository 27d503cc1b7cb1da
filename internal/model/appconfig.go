package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packing settings applied to new projects
	DefaultAlgorithm       Algorithm `json:"default_algorithm"`
	DefaultItemSort        SortMode  `json:"default_item_sort"`
	DefaultPlanProfile     string    `json:"default_plan_profile"`
	DefaultHeadroomPercent float64   `json:"default_headroom_percent"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	ColorOutput    bool     `json:"color_output"` // Colored terminal output
	Verbose        bool     `json:"verbose"`      // Debug-level logging
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm:       defaults.Algorithm,
		DefaultItemSort:        defaults.ItemSort,
		DefaultPlanProfile:     defaults.PlanProfile,
		DefaultHeadroomPercent: defaults.HeadroomPercent,
		RecentProjects:         []string{},
		ColorOutput:            true,
		Verbose:                false,
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// PackSettings struct. This is used when creating a new project so it
// inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.Algorithm = c.DefaultAlgorithm
	s.ItemSort = c.DefaultItemSort
	s.PlanProfile = c.DefaultPlanProfile
	s.HeadroomPercent = c.DefaultHeadroomPercent
}
