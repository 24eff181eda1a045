// pathtool builds tube meshes from a path config and exports or previews them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/pathbuilder/internal/config"
	"github.com/Faultbox/pathbuilder/internal/export"
	"github.com/Faultbox/pathbuilder/internal/logger"
	"github.com/Faultbox/pathbuilder/internal/preview"
	"github.com/Faultbox/pathbuilder/pkg/pathbuilder"
)

// errUsage marks bad command lines; main prints usage for it.
var errUsage = errors.New("usage")

// demoPoints is used when the config has no points.
var demoPoints = []config.PointConfig{
	{Position: [3]float32{0, 0, 0}},
	{Position: [3]float32{2, 0.5, 1}},
	{Position: [3]float32{4, 0, -1}},
	{Position: [3]float32{6, 1, 0}},
}

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

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

	t := &tool{cfg: cfg, log: log.Named("pathtool"), out: os.Stdout, progress: os.Stderr}
	if err := t.run(args[0], args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			printUsage(os.Stderr)
		} else {
			logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `pathtool - tube mesh builder

Usage:
  pathtool [flags] <command> [options]

Commands:
  build                  Build the path and print a summary
  export [file]          Write the mesh (.obj or .stl, "-" for stdout)
  preview [file]         Render an orthographic PNG preview
  info                   Print the effective configuration
  save [file]            Write the effective configuration (default: user config dir)
  bench [-n count]       Time repeated recomputes
  help                   Show this help

Flags:
  --config <file>        Config file (default ./config.yaml)
  --spacing <d>          Minimum distance between samples
  --profile <shape>      circle, rect, rounded_rect or polygon
  --out <file>           Output file
  --debug                Debug logging

Examples:
  pathtool --config path.yaml build
  pathtool --spacing 0.1 export tube.stl
  pathtool --profile rounded_rect preview top.png`)
}

// tool runs commands against one loaded config.
type tool struct {
	cfg      *config.Config
	log      *zap.Logger
	out      io.Writer
	progress io.Writer
}

func (t *tool) run(command string, args []string) error {
	switch command {
	case "build":
		return t.cmdBuild()
	case "export":
		return t.cmdExport(args)
	case "preview":
		return t.cmdPreview(args)
	case "info":
		return t.cmdInfo()
	case "save":
		return t.cmdSave(args)
	case "bench":
		return t.cmdBench(args)
	case "help", "-h", "--help":
		printUsage(t.out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// build returns a recomputed builder for the config.
func (t *tool) build() (*pathbuilder.Builder, error) {
	if len(t.cfg.Points) == 0 {
		t.log.Warn("no points configured, using the demo path")
		t.cfg.Points = demoPoints
	}
	b, err := t.cfg.BuildPath(t.log.Named("builder"))
	if err != nil {
		return nil, fmt.Errorf("building path: %w", err)
	}
	b.Recompute(t.cfg.Path.MinVertexDistance)
	return b, nil
}

func (t *tool) cmdBuild() error {
	b, err := t.build()
	if err != nil {
		return err
	}
	stats := b.Stats()
	t.log.Info("path built", zap.Object("stats", stats))

	m := b.Mesh()
	fmt.Fprintf(t.out, "Points:    %d\n", stats.Points)
	fmt.Fprintf(t.out, "Samples:   %d\n", stats.Samples)
	fmt.Fprintf(t.out, "Length:    %.3f\n", stats.Length)
	fmt.Fprintf(t.out, "Vertices:  %d\n", stats.Vertices)
	fmt.Fprintf(t.out, "Triangles: %d\n", stats.Triangles)
	fmt.Fprintf(t.out, "Bounds:    %v - %v\n", m.Bounds.Min, m.Bounds.Max)
	return nil
}

func (t *tool) cmdExport(args []string) error {
	output := t.cfg.Export.Output
	if len(args) > 0 {
		output = args[0]
	}

	format, err := export.ParseFormat(t.cfg.Export.Format)
	if err != nil {
		return err
	}
	if output != "-" {
		if f, err := export.FormatFromPath(output); err == nil {
			format = f
		}
	}

	b, err := t.build()
	if err != nil {
		return err
	}

	if output == "-" {
		return export.Write(t.out, b.Mesh(), format)
	}
	if err := export.WriteFile(output, b.Mesh(), format); err != nil {
		return err
	}
	t.log.Info("mesh exported",
		zap.String("file", output),
		zap.String("format", string(format)),
		zap.Int("triangles", b.Mesh().TriangleCount()))
	return nil
}

func (t *tool) cmdPreview(args []string) error {
	output := t.cfg.Preview.Output
	if len(args) > 0 {
		output = args[0]
	} else if config.OutputPath() != "" {
		output = config.OutputPath()
	}

	b, err := t.build()
	if err != nil {
		return err
	}

	scene := preview.Scene{Mesh: b.Mesh(), Samples: b.Samples()}
	for _, cp := range b.ControlPoints() {
		scene.ControlPoints = append(scene.ControlPoints, cp.Position())
	}
	opts := preview.DefaultOptions()
	opts.Width = t.cfg.Preview.Width
	opts.Height = t.cfg.Preview.Height
	opts.Plane = preview.Plane(t.cfg.Preview.Plane)

	if err := preview.SavePNG(output, scene, opts); err != nil {
		return err
	}
	t.log.Info("preview written", zap.String("file", output), zap.String("plane", t.cfg.Preview.Plane))
	return nil
}

func (t *tool) cmdInfo() error {
	data, err := t.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = t.out.Write(data)
	return err
}

// cmdSave persists the effective config. Without a file it lands where
// Load looks when no --config is given.
func (t *tool) cmdSave(args []string) error {
	var path string
	var err error
	if len(args) > 0 {
		path = args[0]
		err = t.cfg.SaveTo(path)
	} else {
		path, err = t.cfg.Save()
	}
	if err != nil {
		return err
	}
	t.log.Info("config saved", zap.String("file", path))
	fmt.Fprintf(t.out, "Saved %s\n", path)
	return nil
}

func (t *tool) cmdBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(t.progress)
	n := fs.Int("n", 100, "Number of recomputes")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *n <= 0 {
		return fmt.Errorf("%w: -n must be positive", errUsage)
	}

	b, err := t.build()
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(*n,
		progressbar.OptionSetWriter(t.progress),
		progressbar.OptionSetDescription("recompute"),
		progressbar.OptionShowCount(),
	)
	start := time.Now()
	for range *n {
		b.Recompute(t.cfg.Path.MinVertexDistance)
		bar.Add(1)
	}
	elapsed := time.Since(start)
	bar.Finish()

	per := elapsed / time.Duration(*n)
	t.log.Info("bench finished", zap.Int("runs", *n), zap.Duration("total", elapsed), zap.Duration("per_run", per))
	fmt.Fprintf(t.out, "\n%d recomputes in %v (%v each), %s\n", *n, elapsed, per, b.Stats())
	return nil
}
