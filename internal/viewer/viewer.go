// Package viewer implements the interactive sculpting application: the
// main loop wiring input, camera, stroke handling and rendering.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sculptkit/internal/config"
	"github.com/Faultbox/sculptkit/internal/engine/camera"
	"github.com/Faultbox/sculptkit/internal/engine/input"
	"github.com/Faultbox/sculptkit/internal/engine/primitive"
	"github.com/Faultbox/sculptkit/internal/engine/renderer"
	"github.com/Faultbox/sculptkit/internal/engine/scene"
	"github.com/Faultbox/sculptkit/internal/engine/sculpt"
	"github.com/Faultbox/sculptkit/internal/engine/window"
	"github.com/Faultbox/sculptkit/internal/export"
	"github.com/Faultbox/sculptkit/internal/logger"
)

// Viewer is the interactive sculpting session.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	scene        *scene.Scene
	orchestrator *sculpt.Orchestrator

	// Brush state, mutated by hotkeys
	tool     sculpt.Tool
	radius   float32
	strength float32
	axes     sculpt.Axes

	sculpting bool
	orbiting  bool
	panning   bool
}

// New creates the viewer with its window, GL context and startup scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		radius:   cfg.Brush.Radius,
		strength: cfg.Brush.Strength,
		axes: sculpt.Axes{
			X: cfg.Symmetry.X,
			Y: cfg.Symmetry.Y,
			Z: cfg.Symmetry.Z,
		},
	}

	tool, err := sculpt.ParseTool(cfg.Brush.Tool)
	if err != nil {
		return nil, fmt.Errorf("invalid brush config: %w", err)
	}
	v.tool = tool

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      "SculptKit",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Width:     cfg.Graphics.Width,
		Height:    cfg.Graphics.Height,
		Wireframe: cfg.Viewer.ShowWireframe,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	v.camera = camera.NewOrbitCamera()
	v.camera.Distance = cfg.Viewer.CameraDistance

	v.scene = scene.New()
	kind, err := primitive.ParseKind(cfg.Viewer.Primitive)
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, fmt.Errorf("invalid viewer config: %w", err)
	}
	mesh := primitive.ForKind(kind, 1)
	if kind == primitive.KindSphere {
		mesh = primitive.Sphere(0.5, cfg.Viewer.Subdivisions)
	}
	obj := v.scene.Add(cfg.Viewer.Primitive, mesh)

	v.orchestrator = sculpt.NewOrchestrator()
	v.orchestrator.SetStrokeEndHook(func(modified bool) {
		if modified {
			logger.Debug("stroke finished",
				zap.Int("vertices", obj.Mesh().VertexCount()),
			)
		}
	})

	logger.Info("viewer initialized",
		zap.String("primitive", cfg.Viewer.Primitive),
		zap.Int("vertices", obj.Mesh().VertexCount()),
	)
	return v, nil
}

// Run starts the main loop. Returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}

		// Sculpt continuously while the left button is held so a slow
		// event stream still produces a smooth stroke.
		if v.sculpting {
			v.runStrokeSample()
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		v.renderer.Resize(e.Width, e.Height)

	case input.EventKeyDown:
		v.handleKey(e.Key)

	case input.EventMouseDown:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			v.sculpting = true
		case sdl.BUTTON_RIGHT:
			v.orbiting = true
		case sdl.BUTTON_MIDDLE:
			v.panning = true
		}

	case input.EventMouseUp:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			v.sculpting = false
			v.orchestrator.EndStroke()
		case sdl.BUTTON_RIGHT:
			v.orbiting = false
		case sdl.BUTTON_MIDDLE:
			v.panning = false
		}

	case input.EventMouseMove:
		if v.orbiting {
			v.camera.HandleDrag(float32(e.RelX), float32(e.RelY))
		}
		if v.panning {
			v.camera.HandlePan(float32(e.RelX), float32(e.RelY))
		}

	case input.EventMouseWheel:
		v.camera.HandleZoom(float32(e.WheelY))
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_1:
		v.setTool(sculpt.ToolAdd)
	case sdl.SCANCODE_2:
		v.setTool(sculpt.ToolSubtract)
	case sdl.SCANCODE_3:
		v.setTool(sculpt.ToolPush)

	case sdl.SCANCODE_X:
		v.axes.X = !v.axes.X
		logger.Info("symmetry toggled", zap.Bool("x", v.axes.X))
	case sdl.SCANCODE_Y:
		v.axes.Y = !v.axes.Y
		logger.Info("symmetry toggled", zap.Bool("y", v.axes.Y))
	case sdl.SCANCODE_Z:
		v.axes.Z = !v.axes.Z
		logger.Info("symmetry toggled", zap.Bool("z", v.axes.Z))

	case sdl.SCANCODE_LEFTBRACKET:
		v.radius *= 0.8
		if v.radius < 0.01 {
			v.radius = 0.01
		}
	case sdl.SCANCODE_RIGHTBRACKET:
		v.radius *= 1.25
		if v.radius > 2 {
			v.radius = 2
		}

	case sdl.SCANCODE_W:
		v.cfg.Viewer.ShowWireframe = !v.cfg.Viewer.ShowWireframe
		v.renderer.SetWireframe(v.cfg.Viewer.ShowWireframe)

	case sdl.SCANCODE_F:
		if obj := v.scene.Active(); obj != nil {
			b := obj.Mesh().Bounds
			v.camera.FitToBounds(b.Min, b.Max)
		}

	case sdl.SCANCODE_E:
		v.exportActive()
	}
}

func (v *Viewer) setTool(t sculpt.Tool) {
	v.tool = t
	logger.Info("tool selected", zap.String("tool", t.String()))
}

func (v *Viewer) runStrokeSample() {
	obj := v.scene.Active()
	if obj == nil {
		return
	}

	mx, my := v.input.MousePosition()
	w, h := v.window.GetSize()

	res := v.orchestrator.RunSample(obj, sculpt.Sample{
		ScreenX:     float32(mx),
		ScreenY:     float32(my),
		ViewportW:   float32(w),
		ViewportH:   float32(h),
		InvViewProj: v.camera.InverseViewProjection(v.window.AspectRatio()),
		Tool:        v.tool,
		Radius:      v.radius,
		Strength:    v.strength,
		Invert:      input.ShiftHeld(),
		Axes:        v.axes,
	})

	if v.cfg.Viewer.ShowStats && (res.Modified || res.Structural) {
		v.window.SetTitle(fmt.Sprintf("SculptKit - %d vertices", res.VertexCount))
	}
}

func (v *Viewer) exportActive() {
	obj := v.scene.Active()
	if obj == nil {
		return
	}
	path := fmt.Sprintf("%s-%d.obj", obj.Name(), time.Now().Unix())
	if err := export.SaveOBJ(path, obj.Name(), obj.Mesh()); err != nil {
		logger.Error("export failed", zap.Error(err))
		return
	}
	logger.Info("mesh exported",
		zap.String("path", path),
		zap.Int("vertices", obj.Mesh().VertexCount()),
	)
}

// render draws the current frame.
func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.DrawScene(v.scene, v.camera.ViewProjection(v.window.AspectRatio()))
	v.renderer.End()
}
