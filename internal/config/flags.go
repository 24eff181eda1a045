package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSpacing    = flag.Float64("spacing", 0, "Minimum distance between samples")
	flagProfile    = flag.String("profile", "", "Profile shape (circle, rect, rounded_rect, polygon)")
	flagOut        = flag.String("out", "", "Output file for export or preview")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer fullscreen")
	flagWidth      = flag.Int("width", 0, "Viewer window width")
	flagHeight     = flag.Int("height", 0, "Viewer window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// OutputPath returns the --out flag value.
func OutputPath() string {
	return *flagOut
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSpacing > 0 {
		cfg.Path.MinVertexDistance = float32(*flagSpacing)
	}
	if *flagProfile != "" {
		cfg.Profile.Shape = *flagProfile
	}
	if *flagOut != "" {
		cfg.Export.Output = *flagOut
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
