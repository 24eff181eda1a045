// Package config handles pathbuilder configuration loading and management.
package config

// Config holds all settings for the CLI and viewer.
type Config struct {
	Path    PathConfig    `yaml:"path"`
	Points  []PointConfig `yaml:"points"`
	Profile ProfileConfig `yaml:"profile"`
	Taper   TaperConfig   `yaml:"taper"`
	Export  ExportConfig  `yaml:"export"`
	Preview PreviewConfig `yaml:"preview"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathConfig holds sampling and tangent solver settings.
type PathConfig struct {
	MinVertexDistance float32 `yaml:"min_vertex_distance"`
	EditMode          string  `yaml:"edit_mode"` // planar, translate, rotate, scale
	AutoTangents      bool    `yaml:"auto_tangents"`
	EndpointPolicy    string  `yaml:"endpoint_policy"` // outward, legacy
	Closed            bool    `yaml:"closed"`          // reserved
}

// PointConfig describes one control point. A zero rotation means identity
// and a zero scale means one. Left and Right are world-space handle
// positions; they are required for mode free and not allowed otherwise.
type PointConfig struct {
	Position [3]float32  `yaml:"position"`
	Rotation [4]float32  `yaml:"rotation,omitempty"` // x, y, z, w
	Scale    [3]float32  `yaml:"scale,omitempty"`
	Mode     string      `yaml:"mode,omitempty"`
	Left     *[3]float32 `yaml:"left,omitempty"`
	Right    *[3]float32 `yaml:"right,omitempty"`
}

// HasHandles reports whether both handle positions are set.
func (p PointConfig) HasHandles() bool {
	return p.Left != nil && p.Right != nil
}

// ProfileConfig selects the swept cross-section.
type ProfileConfig struct {
	Shape        string       `yaml:"shape"` // circle, rect, rounded_rect, polygon
	Radius       float32      `yaml:"radius"`
	Segments     int          `yaml:"segments"`
	Width        float32      `yaml:"width"`
	Height       float32      `yaml:"height"`
	CornerRadius float32      `yaml:"corner_radius"`
	Tolerance    float32      `yaml:"tolerance"`
	Closed       bool         `yaml:"closed"` // polygon only
	Points       [][2]float32 `yaml:"points,omitempty"`
}

// TaperConfig holds the profile scale keys. No keys means constant 1.
type TaperConfig struct {
	Keys []TaperKey `yaml:"keys,omitempty"`
}

// TaperKey is one taper keyframe.
type TaperKey struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Format string `yaml:"format"` // obj, stl
	Output string `yaml:"output"`
}

// PreviewConfig holds PNG preview settings.
type PreviewConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Plane  string `yaml:"plane"` // xy, xz, zy
	Output string `yaml:"output"`
}

// ViewerConfig holds display settings for the interactive viewer.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Path: PathConfig{
			MinVertexDistance: 0.2,
			EditMode:          "planar",
			AutoTangents:      true,
			EndpointPolicy:    "outward",
		},
		Profile: ProfileConfig{
			Shape:        "circle",
			Radius:       0.5,
			Segments:     12,
			Width:        1,
			Height:       1,
			CornerRadius: 0.1,
			Tolerance:    0.01,
			Closed:       true,
		},
		Export: ExportConfig{
			Format: "obj",
			Output: "tube.obj",
		},
		Preview: PreviewConfig{
			Width:  800,
			Height: 800,
			Plane:  "xz",
			Output: "preview.png",
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
