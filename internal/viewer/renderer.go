package viewer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/pathbuilder/pkg/extrude"
	"github.com/Faultbox/pathbuilder/pkg/math"
)

// lineVertex is a colored line endpoint.
type lineVertex struct {
	Pos   math.Vec3
	Color math.Vec3
}

// gpuBuffer is a VAO with one interleaved vertex buffer and an optional
// index buffer.
type gpuBuffer struct {
	vao, vbo, ebo uint32
	count         int32
}

func (b *gpuBuffer) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	*b = gpuBuffer{}
}

// renderer draws the mesh and overlay lines.
type renderer struct {
	log *zap.Logger

	meshProgram  uint32
	locMeshVP    int32
	locMeshColor int32
	locMeshLight int32
	lineProgram  uint32
	locLineVP    int32

	mesh  gpuBuffer
	lines gpuBuffer
}

// newRenderer must be called after the GL context exists.
func newRenderer(log *zap.Logger) (*renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	r := &renderer{log: log}
	var err error
	if r.meshProgram, err = compileProgram(meshVertexShader, meshFragmentShader); err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.locMeshVP = uniform(r.meshProgram, "uViewProj")
	r.locMeshColor = uniform(r.meshProgram, "uColor")
	r.locMeshLight = uniform(r.meshProgram, "uLightDir")

	if r.lineProgram, err = compileProgram(lineVertexShader, lineFragmentShader); err != nil {
		r.close()
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.locLineVP = uniform(r.lineProgram, "uViewProj")
	return r, nil
}

func (r *renderer) close() {
	r.mesh.delete()
	r.lines.delete()
	if r.meshProgram != 0 {
		gl.DeleteProgram(r.meshProgram)
	}
	if r.lineProgram != 0 {
		gl.DeleteProgram(r.lineProgram)
	}
}

// uploadMesh replaces the GPU copy of the swept mesh. Positions and normals
// are interleaved.
func (r *renderer) uploadMesh(m *extrude.Mesh) {
	r.mesh.delete()
	if m.IsEmpty() || len(m.Normals) != len(m.Vertices) {
		return
	}

	data := make([]float32, 0, len(m.Vertices)*6)
	for i, v := range m.Vertices {
		n := m.Normals[i]
		data = append(data, v.X, v.Y, v.Z, n.X, n.Y, n.Z)
	}

	gl.GenVertexArrays(1, &r.mesh.vao)
	gl.BindVertexArray(r.mesh.vao)

	gl.GenBuffers(1, &r.mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.mesh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.mesh.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.mesh.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Triangles)*4, unsafe.Pointer(&m.Triangles[0]), gl.STATIC_DRAW)

	const stride = 6 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	r.mesh.count = int32(len(m.Triangles))

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))
}

// uploadLines replaces the overlay line list.
func (r *renderer) uploadLines(verts []lineVertex) {
	r.lines.delete()
	if len(verts) < 2 {
		return
	}

	gl.GenVertexArrays(1, &r.lines.vao)
	gl.BindVertexArray(r.lines.vao)

	gl.GenBuffers(1, &r.lines.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lines.vbo)
	size := int(unsafe.Sizeof(lineVertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*size, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(size), 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(size), 3*4)

	gl.BindVertexArray(0)
	r.lines.count = int32(len(verts))
}

func (r *renderer) resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// draw renders one frame.
func (r *renderer) draw(viewProj math.Mat4, eye math.Vec3, wireframe bool) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.mesh.count > 0 {
		gl.UseProgram(r.meshProgram)
		gl.UniformMatrix4fv(r.locMeshVP, 1, false, viewProj.Ptr())
		gl.Uniform3f(r.locMeshColor, 0.35, 0.62, 0.86)
		gl.Uniform3f(r.locMeshLight, eye.X, eye.Y, eye.Z)

		if wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		}
		gl.BindVertexArray(r.mesh.vao)
		gl.DrawElements(gl.TRIANGLES, r.mesh.count, gl.UNSIGNED_INT, nil)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if r.lines.count > 0 {
		gl.UseProgram(r.lineProgram)
		gl.UniformMatrix4fv(r.locLineVP, 1, false, viewProj.Ptr())
		gl.BindVertexArray(r.lines.vao)
		gl.DrawArrays(gl.LINES, 0, r.lines.count)
	}

	gl.BindVertexArray(0)
}
