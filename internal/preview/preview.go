// Package preview renders an orthographic PNG snapshot of a swept path.
package preview

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/chewxy/math32"
	"github.com/gogpu/gg"

	"github.com/Faultbox/pathbuilder/pkg/extrude"
	"github.com/Faultbox/pathbuilder/pkg/math"
)

var (
	ErrUnknownPlane = errors.New("unknown projection plane")
	ErrInvalidSize  = errors.New("invalid image size")
	ErrEmptyScene   = errors.New("nothing to draw")
)

// Plane names the two world axes mapped to image x and y.
type Plane string

const (
	PlaneXY Plane = "xy" // front view, looking down -Z
	PlaneXZ Plane = "xz" // top view, looking down -Y
	PlaneZY Plane = "zy" // side view, looking down -X
)

// Scene is what gets drawn.
type Scene struct {
	Mesh          *extrude.Mesh
	Samples       []math.Vec3
	ControlPoints []math.Vec3
}

// Options configures Render.
type Options struct {
	Width     int
	Height    int
	Plane     Plane
	Margin    float64
	Wireframe bool
}

// DefaultOptions returns an 800x800 top view.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Plane: PlaneXZ, Margin: 24}
}

var (
	background = gg.RGB(0.12, 0.13, 0.15)
	meshColor  = [3]float64{0.35, 0.62, 0.86}
)

// Render draws the scene. Faces are shaded by how directly they face the
// viewer and painted far to near.
func Render(scene Scene, opts Options) (*gg.Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	proj, err := newProjection(opts.Plane)
	if err != nil {
		return nil, err
	}

	var points []math.Vec3
	if scene.Mesh != nil {
		points = append(points, scene.Mesh.Vertices...)
	}
	points = append(points, scene.Samples...)
	points = append(points, scene.ControlPoints...)
	if len(points) == 0 {
		return nil, ErrEmptyScene
	}
	view := fit(proj, points, opts)

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(background)

	if scene.Mesh != nil && !scene.Mesh.IsEmpty() {
		if err := drawMesh(dc, scene.Mesh, proj, view, opts.Wireframe); err != nil {
			return nil, err
		}
	}

	if len(scene.Samples) > 1 {
		dc.SetRGB(0.95, 0.75, 0.2)
		dc.SetLineWidth(1.5)
		x, y := view.apply(proj.project(scene.Samples[0]))
		dc.MoveTo(x, y)
		for _, s := range scene.Samples[1:] {
			dc.LineTo(view.apply(proj.project(s)))
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("drawing polyline: %w", err)
		}
	}

	dc.SetRGB(0.9, 0.3, 0.3)
	for _, p := range scene.ControlPoints {
		x, y := view.apply(proj.project(p))
		dc.DrawCircle(x, y, 4)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("drawing control point: %w", err)
		}
	}
	return dc, nil
}

// WritePNG renders the scene and encodes it to w.
func WritePNG(w io.Writer, scene Scene, opts Options) error {
	dc, err := Render(scene, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG renders the scene to a PNG file.
func SavePNG(path string, scene Scene, opts Options) error {
	dc, err := Render(scene, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

type face struct {
	a, b, c math.Vec3
	depth   float32
	shade   float64
}

func drawMesh(dc *gg.Context, mesh *extrude.Mesh, proj projection, view viewport, wireframe bool) error {
	faces := make([]face, 0, mesh.TriangleCount())
	for i := 0; i+2 < len(mesh.Triangles); i += 3 {
		a := mesh.Vertices[mesh.Triangles[i]]
		b := mesh.Vertices[mesh.Triangles[i+1]]
		c := mesh.Vertices[mesh.Triangles[i+2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		faces = append(faces, face{
			a: a, b: b, c: c,
			depth: proj.depth(a) + proj.depth(b) + proj.depth(c),
			shade: 0.25 + 0.75*float64(math32.Abs(n.Dot(proj.toViewer))),
		})
	}
	slices.SortFunc(faces, func(x, y face) int {
		switch {
		case x.depth < y.depth:
			return -1
		case x.depth > y.depth:
			return 1
		}
		return 0
	})

	dc.SetLineWidth(0.5)
	for _, f := range faces {
		dc.MoveTo(view.apply(proj.project(f.a)))
		dc.LineTo(view.apply(proj.project(f.b)))
		dc.LineTo(view.apply(proj.project(f.c)))
		dc.ClosePath()

		if wireframe {
			dc.SetRGB(meshColor[0], meshColor[1], meshColor[2])
			if err := dc.Stroke(); err != nil {
				return fmt.Errorf("drawing mesh: %w", err)
			}
			continue
		}
		dc.SetRGB(meshColor[0]*f.shade, meshColor[1]*f.shade, meshColor[2]*f.shade)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("drawing mesh: %w", err)
		}
	}
	return nil
}
