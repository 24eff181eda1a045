package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/pathbuilder/internal/config"
	"github.com/Faultbox/pathbuilder/internal/export"
)

func newTool(t *testing.T) (*tool, *bytes.Buffer) {
	t.Helper()
	var out, progress bytes.Buffer
	cfg := config.Default()
	cfg.Points = []config.PointConfig{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{2, 0, 0}},
	}
	return &tool{cfg: cfg, log: zap.NewNop(), out: &out, progress: &progress}, &out
}

func TestBuild(t *testing.T) {
	tl, out := newTool(t)
	if err := tl.run("build", nil); err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{"Points:    3", "Samples:   11", "Triangles: 240"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestBuildDemoPath(t *testing.T) {
	tl, _ := newTool(t)
	tl.cfg.Points = nil
	if err := tl.run("build", nil); err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(tl.cfg.Points) != len(demoPoints) {
		t.Errorf("expected demo points, got %d", len(tl.cfg.Points))
	}
}

func TestExportFile(t *testing.T) {
	tl, _ := newTool(t)
	path := filepath.Join(t.TempDir(), "tube.stl")
	if err := tl.run("export", []string{path}); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	// The extension wins over the configured obj format.
	tris, err := export.ReadSTL(f)
	if err != nil {
		t.Fatalf("ReadSTL: %v", err)
	}
	if len(tris) != 240 {
		t.Errorf("triangles: got %d, want 240", len(tris))
	}
}

func TestExportStdout(t *testing.T) {
	tl, out := newTool(t)
	if err := tl.run("export", []string{"-"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out.String(), "# pathbuilder mesh") {
		t.Errorf("expected OBJ on stdout, got %.40q", out.String())
	}
}

func TestPreview(t *testing.T) {
	tl, _ := newTool(t)
	tl.cfg.Preview.Width, tl.cfg.Preview.Height = 64, 64
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := tl.run("preview", []string{path}); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}

func TestInfo(t *testing.T) {
	tl, out := newTool(t)
	if err := tl.run("info", nil); err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out.String(), "min_vertex_distance: 0.2") {
		t.Errorf("info output missing path settings:\n%s", out.String())
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only consulted on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	explicit := filepath.Join(t.TempDir(), "saved.yaml")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"explicit file", []string{explicit}, explicit},
		{"user config dir", nil, config.UserConfigFile()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, out := newTool(t)
			tl.cfg.Path.MinVertexDistance = 0.35
			if err := tl.run("save", tt.args); err != nil {
				t.Fatalf("save: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output should name %s:\n%s", tt.want, out.String())
			}

			loaded, err := config.LoadFile(tt.want)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if loaded.Path.MinVertexDistance != 0.35 || len(loaded.Points) != 3 {
				t.Errorf("saved config did not round trip: %+v", loaded.Path)
			}
		})
	}
}

func TestBench(t *testing.T) {
	tl, out := newTool(t)
	if err := tl.run("bench", []string{"-n", "3"}); err != nil {
		t.Fatalf("bench: %v", err)
	}
	if !strings.Contains(out.String(), "3 recomputes") {
		t.Errorf("unexpected bench output: %s", out.String())
	}

	if err := tl.run("bench", []string{"-n", "0"}); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	tl, _ := newTool(t)
	if err := tl.run("frobnicate", nil); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}
