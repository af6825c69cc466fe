package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default collage settings applied to new requests
	DefaultAlgorithm    Algorithm `json:"default_algorithm"`
	DefaultPaperSize    string    `json:"default_paper_size"`
	DefaultLandscape    bool      `json:"default_landscape"`
	DefaultGap          float64   `json:"default_gap"`
	DefaultMaxDownscale float64   `json:"default_max_downscale"`
	DefaultMinImageSize float64   `json:"default_min_image_size"`
	DefaultNormalize    bool      `json:"default_normalize"`
	DefaultOutputDPI    int       `json:"default_output_dpi"`

	// Application preferences
	RecentSources []string `json:"recent_sources"` // Directories or manifests used recently
	MaxRecent     int      `json:"max_recent"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm:    defaults.Algorithm,
		DefaultPaperSize:    defaults.PaperSize,
		DefaultLandscape:    defaults.Landscape,
		DefaultGap:          defaults.Gap,
		DefaultMaxDownscale: defaults.MaxDownscalePercent,
		DefaultMinImageSize: defaults.MinImageSize,
		DefaultNormalize:    defaults.NormalizeSizes,
		DefaultOutputDPI:    defaults.OutputDPI,
		RecentSources:       []string{},
		MaxRecent:           10,
	}
}

// ApplyToSettings copies the default values from AppConfig into a CollageSettings struct.
func (c AppConfig) ApplyToSettings(s *CollageSettings) {
	if c.DefaultAlgorithm != "" {
		s.Algorithm = c.DefaultAlgorithm
	}
	if c.DefaultPaperSize != "" {
		s.PaperSize = c.DefaultPaperSize
	}
	s.Landscape = c.DefaultLandscape
	s.Gap = c.DefaultGap
	s.MaxDownscalePercent = c.DefaultMaxDownscale
	s.MinImageSize = c.DefaultMinImageSize
	s.NormalizeSizes = c.DefaultNormalize
	if c.DefaultOutputDPI > 0 {
		s.OutputDPI = c.DefaultOutputDPI
	}
}

// AddRecentSource moves source to the front of the recent list, trimming to MaxRecent.
func (c *AppConfig) AddRecentSource(source string) {
	out := []string{source}
	for _, s := range c.RecentSources {
		if s != source {
			out = append(out, s)
		}
	}
	limit := c.MaxRecent
	if limit <= 0 {
		limit = 10
	}
	if len(out) > limit {
		out = out[:limit]
	}
	c.RecentSources = out
}

// SettingsPreset is a named, reusable settings bundle.
type SettingsPreset struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Settings    CollageSettings `json:"settings"`
}
