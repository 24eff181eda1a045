package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pathbuilder/internal/viewer/camera"
	"github.com/Faultbox/pathbuilder/pkg/math"
	"github.com/Faultbox/pathbuilder/pkg/pathbuilder"
	"github.com/Faultbox/pathbuilder/pkg/spline"
)

// SpacingStep is how much one key press changes the sample spacing.
const SpacingStep float32 = 0.05

// Config configures a Viewer.
type Config struct {
	Window  WindowConfig
	Spacing float32
}

// Viewer shows a builder's path and mesh and lets the user adjust sampling.
type Viewer struct {
	log     *zap.Logger
	cfg     Config
	builder *pathbuilder.Builder

	window   *Window
	renderer *renderer
	camera   *camera.Orbit
	input    input

	spacing    float32
	wireframe  bool
	showFrames bool
}

// New opens the window and uploads the builder's current geometry.
func New(cfg Config, b *pathbuilder.Builder, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "pathview"
	}

	v := &Viewer{
		log:        log,
		cfg:        cfg,
		builder:    b,
		camera:     camera.NewOrbit(),
		spacing:    spline.ClampVertexDistance(cfg.Spacing),
		showFrames: true,
	}

	var err error
	if v.window, err = NewWindow(cfg.Window, log); err != nil {
		return nil, err
	}
	if v.renderer, err = newRenderer(log); err != nil {
		v.window.Close()
		return nil, err
	}
	v.renderer.resize(v.window.DrawableSize())

	v.rebuild()
	v.frameMesh()
	return v, nil
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.renderer.close()
	v.window.Close()
}

// Run processes input and draws until the window is closed.
func (v *Viewer) Run() {
	for {
		frame := v.input.poll()
		if frame.quit {
			return
		}
		if frame.resized {
			v.renderer.resize(v.window.DrawableSize())
		}
		for _, a := range frame.actions {
			v.apply(a)
		}
		if frame.dragX != 0 || frame.dragY != 0 {
			v.camera.HandleDrag(frame.dragX, frame.dragY)
		}
		if frame.zoom != 0 {
			v.camera.HandleZoom(frame.zoom)
		}

		w, h := v.window.DrawableSize()
		viewProj := v.camera.ProjectionMatrix(float32(w) / float32(max(h, 1))).Mul(v.camera.ViewMatrix())
		v.renderer.draw(viewProj, v.camera.Position().Sub(v.camera.Center), v.wireframe)
		v.window.SwapBuffers()
	}
}

func (v *Viewer) apply(a Action) {
	switch a {
	case ActionDenser:
		v.spacing = spline.ClampVertexDistance(v.spacing - SpacingStep)
		v.rebuild()
	case ActionCoarser:
		v.spacing += SpacingStep
		v.rebuild()
	case ActionTangents:
		v.builder.RecalculateTangents()
		v.rebuild()
	case ActionFrame:
		v.frameMesh()
	case ActionWireframe:
		v.wireframe = !v.wireframe
	case ActionShowFrames:
		v.showFrames = !v.showFrames
		v.renderer.uploadLines(v.overlay())
	}
}

// rebuild recomputes geometry at the current spacing and uploads it.
func (v *Viewer) rebuild() {
	v.builder.Recompute(v.spacing)
	v.renderer.uploadMesh(v.builder.Mesh())
	v.renderer.uploadLines(v.overlay())

	stats := v.builder.Stats()
	v.log.Info("path rebuilt", zap.Float32("spacing", v.spacing), zap.Object("stats", stats))
	v.window.SetTitle(fmt.Sprintf("%s - spacing %.2f - %s", v.cfg.Window.Title, v.spacing, stats))
}

func (v *Viewer) frameMesh() {
	if m := v.builder.Mesh(); !m.IsEmpty() {
		v.camera.FitBounds(m.Bounds.Min, m.Bounds.Max)
		return
	}
	if s := v.builder.Samples(); len(s) > 0 {
		lo, hi := s[0], s[0]
		for _, p := range s[1:] {
			lo, hi = lo.Min(p), hi.Max(p)
		}
		v.camera.FitBounds(lo, hi)
	}
}

var (
	colorPolyline = math.Vec3{X: 0.95, Y: 0.75, Z: 0.2}
	colorHandle   = math.Vec3{X: 0.9, Y: 0.3, Z: 0.3}
	colorTangent  = math.Vec3{X: 0.3, Y: 0.4, Z: 1}
	colorNormal   = math.Vec3{X: 1, Y: 0.3, Z: 0.3}
	colorBinormal = math.Vec3{X: 0.3, Y: 1, Z: 0.3}
)

// overlay builds the line list: the sampled polyline, control point handles
// and, when enabled, the frame axes at every sample.
func (v *Viewer) overlay() []lineVertex {
	var lines []lineVertex
	seg := func(a, b, color math.Vec3) {
		lines = append(lines, lineVertex{a, color}, lineVertex{b, color})
	}

	samples := v.builder.Samples()
	for i := 1; i < len(samples); i++ {
		seg(samples[i-1], samples[i], colorPolyline)
	}

	for _, cp := range v.builder.ControlPoints() {
		seg(cp.LeftWorld(), cp.Position(), colorHandle)
		seg(cp.Position(), cp.RightWorld(), colorHandle)
	}

	if v.showFrames {
		axis := v.spacing * 0.75
		tangents := v.builder.Tangents()
		normals := v.builder.Normals()
		binormals := v.builder.Binormals()
		for i, s := range samples {
			if i >= len(tangents) || i >= len(normals) || i >= len(binormals) {
				break
			}
			seg(s, s.Add(tangents[i].Scale(axis)), colorTangent)
			seg(s, s.Add(normals[i].Scale(axis)), colorNormal)
			seg(s, s.Add(binormals[i].Scale(axis)), colorBinormal)
		}
	}
	return lines
}
