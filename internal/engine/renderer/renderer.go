// Package renderer draws scene meshes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/internal/engine/scene"
	"github.com/Faultbox/sculptkit/internal/engine/shader"
	"github.com/Faultbox/sculptkit/internal/logger"
	"github.com/Faultbox/sculptkit/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	Wireframe bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program uint32

	// Uniform locations
	uMVP      int32
	uModel    int32
	uLightDir int32
	uColor    int32

	// GPU copies of scene meshes, re-uploaded when the object version
	// moves past the uploaded one.
	meshes map[scene.ObjectID]*gpuMesh
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	version       uint64
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[scene.ObjectID]*gpuMesh),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background

	var err error
	r.program, err = shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.uMVP = shader.MustGetUniform(r.program, "uMVP")
	r.uModel = shader.MustGetUniform(r.program, "uModel")
	r.uLightDir = shader.MustGetUniform(r.program, "uLightDir")
	r.uColor = shader.MustGetUniform(r.program, "uColor")

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for id, gm := range r.meshes {
		r.deleteMesh(gm)
		delete(r.meshes, id)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetWireframe toggles edge-only rendering.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Nothing to do for now - batched draws would be flushed here
}

// DrawScene draws every object using the given view-projection matrix.
func (r *Renderer) DrawScene(s *scene.Scene, viewProj math.Mat4) {
	gl.UseProgram(r.program)

	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	light := math.Vec3{X: 0.4, Y: 0.8, Z: 0.5}.Normalize()
	gl.Uniform3f(r.uLightDir, light.X, light.Y, light.Z)

	for _, obj := range s.Objects() {
		gm := r.syncMesh(obj)
		if gm == nil || gm.indexCount == 0 {
			continue
		}

		model := obj.WorldMatrix()
		mvp := viewProj.Mul(model)
		gl.UniformMatrix4fv(r.uMVP, 1, false, mvp.Ptr())
		gl.UniformMatrix4fv(r.uModel, 1, false, model.Ptr())

		if obj == s.Active() {
			gl.Uniform3f(r.uColor, 0.75, 0.72, 0.68)
		} else {
			gl.Uniform3f(r.uColor, 0.55, 0.55, 0.6)
		}

		gl.BindVertexArray(gm.vao)
		gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)

	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// syncMesh makes sure the GPU copy of the object's mesh matches its
// current version and returns it.
func (r *Renderer) syncMesh(obj *scene.Object) *gpuMesh {
	gm := r.meshes[obj.ID()]
	if gm != nil && gm.version == obj.Version() {
		return gm
	}

	mesh := obj.Mesh()
	if mesh == nil || mesh.VertexCount() == 0 {
		return nil
	}

	if gm == nil {
		gm = &gpuMesh{}
		gl.GenVertexArrays(1, &gm.vao)
		gl.GenBuffers(1, &gm.vbo)
		gl.GenBuffers(1, &gm.ebo)
		r.meshes[obj.ID()] = gm
	}

	data := interleave(mesh)
	indices := mesh.Indices

	gl.BindVertexArray(gm.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)

	gm.indexCount = int32(len(indices))
	gm.version = obj.Version()

	logger.Debug("mesh uploaded",
		zap.Uint32("object", uint32(obj.ID())),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return gm
}

// DropMesh releases the GPU copy of a removed object.
func (r *Renderer) DropMesh(id scene.ObjectID) {
	if gm, ok := r.meshes[id]; ok {
		r.deleteMesh(gm)
		delete(r.meshes, id)
	}
}

func (r *Renderer) deleteMesh(gm *gpuMesh) {
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
	}
}

// interleave packs vertices as [px py pz nx ny nz] for upload.
func interleave(m *geometry.Mesh) []float32 {
	data := make([]float32, 0, len(m.Vertices)*6)
	for _, v := range m.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
		)
	}
	return data
}

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec3 uLightDir;
uniform vec3 uColor;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), uLightDir), 0.0);
	vec3 shaded = uColor * (0.25 + 0.75 * diffuse);
	FragColor = vec4(shaded, 1.0);
}
`
