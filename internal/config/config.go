// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Brush    BrushConfig    `yaml:"brush"`
	Symmetry SymmetryConfig `yaml:"symmetry"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// BrushConfig holds the startup brush settings. Tool is one of
// "add", "subtract" or "push".
type BrushConfig struct {
	Tool     string  `yaml:"tool"`
	Radius   float32 `yaml:"radius"`
	Strength float32 `yaml:"strength"`
}

// SymmetryConfig selects which local axes mirror the brush.
type SymmetryConfig struct {
	X bool `yaml:"x"`
	Y bool `yaml:"y"`
	Z bool `yaml:"z"`
}

// ViewerConfig holds camera and startup scene settings.
type ViewerConfig struct {
	// Primitive is the shape loaded at startup: "sphere", "cube",
	// "cylinder", "cone" or "torus".
	Primitive string `yaml:"primitive"`
	// Subdivisions controls the base resolution of the startup primitive.
	Subdivisions int `yaml:"subdivisions"`
	// CameraDistance is the initial orbit distance from the origin.
	CameraDistance float32 `yaml:"camera_distance"`
	// ShowWireframe draws triangle edges over the shaded surface.
	ShowWireframe bool `yaml:"show_wireframe"`
	ShowStats     bool `yaml:"show_stats"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Brush: BrushConfig{
			Tool:     "add",
			Radius:   0.25,
			Strength: 0.5,
		},
		Symmetry: SymmetryConfig{
			X: true,
		},
		Viewer: ViewerConfig{
			Primitive:      "sphere",
			Subdivisions:   3,
			CameraDistance: 3,
			ShowWireframe:  false,
			ShowStats:      false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
