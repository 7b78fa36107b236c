// Package config handles configuration for the map tools.
package config

// Config holds all map tool settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Map     MapConfig     `yaml:"map"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds display settings for the debug viewer.
type ViewerConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	VSync    bool    `yaml:"vsync"`
	ShowGrid bool    `yaml:"show_grid"`
	PanSpeed float32 `yaml:"pan_speed"` // world units per second
}

// MapConfig holds map loading settings.
type MapConfig struct {
	Path       string `yaml:"path"`
	CullMargin int    `yaml:"cull_margin"` // extra chunk ring around the viewport
	Strict     bool   `yaml:"strict"`      // validate documents against the schema
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:    1280,
			Height:   720,
			VSync:    true,
			ShowGrid: true,
			PanSpeed: 400,
		},
		Map: MapConfig{
			Path:       "",
			CullMargin: 1,
			Strict:     false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
