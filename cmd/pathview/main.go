// pathview opens an interactive window showing the configured path and tube.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/pathbuilder/internal/config"
	"github.com/Faultbox/pathbuilder/internal/logger"
	"github.com/Faultbox/pathbuilder/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, log); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if len(cfg.Points) == 0 {
		return errors.New("no control points in config (use --config)")
	}

	b, err := cfg.BuildPath(log.Named("builder"))
	if err != nil {
		return fmt.Errorf("building path: %w", err)
	}

	log.Info("starting viewer",
		zap.Int("points", b.Len()),
		zap.Float32("spacing", cfg.Path.MinVertexDistance),
		zap.String("profile", cfg.Profile.Shape))

	v, err := viewer.New(viewer.Config{
		Window: viewer.WindowConfig{
			Width:      cfg.Viewer.Width,
			Height:     cfg.Viewer.Height,
			Fullscreen: cfg.Viewer.Fullscreen,
			VSync:      cfg.Viewer.VSync,
		},
		Spacing: cfg.Path.MinVertexDistance,
	}, b, log.Named("viewer"))
	if err != nil {
		return fmt.Errorf("creating viewer: %w", err)
	}
	defer v.Close()

	v.Run()
	return nil
}
