package sculpt

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sculptkit/internal/engine/picking"
	"github.com/Faultbox/sculptkit/internal/engine/scene"
	"github.com/Faultbox/sculptkit/internal/logger"
	"github.com/Faultbox/sculptkit/pkg/math"
)

const (
	// subdivideInterval throttles the subdivision pass; it is the most
	// expensive step and need not run every rendered frame.
	subdivideInterval = 100 * time.Millisecond

	// subdivideRadiusScale and maxEdgeScale derive the subdivision
	// parameters from the brush radius. Tunable; tests assert the
	// structural properties, not these exact values.
	subdivideRadiusScale = 1.2
	maxEdgeScale         = 0.35

	// normalSampleScale derives the normal estimation radius from the
	// brush radius.
	normalSampleScale = 0.5
)

// Sample is one stroke input event, built by the caller from the current
// pointer and UI state. It is consumed immediately and never retained.
type Sample struct {
	ScreenX, ScreenY     float32
	ViewportW, ViewportH float32
	// InvViewProj is the camera's inverse view-projection matrix used to
	// unproject the screen point.
	InvViewProj math.Mat4

	Tool     Tool
	Radius   float32
	Strength float32
	Invert   bool
	Axes     Axes
}

// Result reports what one sample did to the mesh.
type Result struct {
	// Modified is true when any vertex was displaced.
	Modified bool
	// Structural is true when subdivision changed the triangulation; the
	// caller must re-bind GPU geometry rather than just re-upload.
	Structural bool
	// Dropped is true when the result was discarded because the mesh
	// version moved under the sample (stale snapshot).
	Dropped bool
	// VertexCount is the object's vertex count after the sample.
	VertexCount int
}

// Orchestrator runs the full per-sample pipeline: surface query, symmetry
// expansion, throttled subdivision, deformation, and the version-guarded
// commit back to the scene object. One orchestrator serves one input
// device; it is not safe for concurrent use and does not need to be.
type Orchestrator struct {
	inFlight       bool
	lastSubdivide  time.Time
	interval       time.Duration
	prevWorld      *math.Vec3
	prevTool       Tool
	strokeModified bool

	onStrokeEnd func(modified bool)
	now         func() time.Time
}

// NewOrchestrator creates an orchestrator in the idle state.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{now: time.Now, interval: subdivideInterval}
}

// SetSubdivideInterval overrides the subdivision throttle. Zero makes
// every sample eligible, which headless replay uses for determinism.
func (o *Orchestrator) SetSubdivideInterval(d time.Duration) {
	o.interval = d
}

// SetStrokeEndHook registers a callback fired by EndStroke, used by the
// undo layer to record "stroke completed with modification".
func (o *Orchestrator) SetStrokeEndHook(fn func(modified bool)) {
	o.onStrokeEnd = fn
}

// RunSample processes one input sample against the given object. A miss
// (ray off-mesh), zero-strength brush, or zero affected vertices is a
// normal no-op. Reentrant calls while a sample is still being processed
// are dropped; this is cooperative scheduling, not locking.
func (o *Orchestrator) RunSample(obj *scene.Object, s Sample) Result {
	if o.inFlight {
		return Result{}
	}
	o.inFlight = true
	defer func() { o.inFlight = false }()

	if s.Tool != o.prevTool {
		// A new tool never inherits old drag history.
		o.prevWorld = nil
		o.prevTool = s.Tool
	}

	mesh, version := obj.Snapshot()
	if s.Radius <= 0 || s.Strength <= 0 {
		return Result{VertexCount: mesh.VertexCount()}
	}

	world := obj.WorldMatrix()
	invWorld := world.Inverse()

	ray := picking.ScreenToRay(s.ScreenX, s.ScreenY, s.ViewportW, s.ViewportH, s.InvViewProj)
	hit, ok := picking.IntersectMesh(ray, mesh, world)
	if !ok {
		return Result{VertexCount: mesh.VertexCount()}
	}

	normal := picking.LocalNormalEstimate(mesh, hit.Point, s.Radius*normalSampleScale, world, hit.Normal)
	localPoint := invWorld.TransformPoint(hit.Point)
	localNormal := invWorld.TransformDirection(normal).Normalize()

	points := ExpandSymmetry(localPoint, localNormal, s.Axes)

	work := mesh
	structural := false
	if o.now().Sub(o.lastSubdivide) >= o.interval {
		o.lastSubdivide = o.now()
		before := work.VertexCount()
		for _, pt := range points {
			work = Subdivide(work, pt.Position, s.Radius*subdivideRadiusScale, s.Radius*maxEdgeScale)
		}
		structural = work.VertexCount() != before
		if structural {
			logger.Debug("subdivided near stroke",
				zap.Int("verticesBefore", before),
				zap.Int("verticesAfter", work.VertexCount()),
			)
		}
	}

	modified := Deform(work, points, BrushParams{
		Tool:           s.Tool,
		Radius:         s.Radius,
		Strength:       s.Strength,
		Invert:         s.Invert,
		PrevWorldPoint: o.prevWorld,
	}, world)

	if structural || modified {
		if !obj.Commit(work, version) {
			// The mesh moved under us; drop this sample's work. The next
			// sample re-queries the current mesh, so one missed frame of
			// a continuous stroke is imperceptible.
			logger.Debug("stale mesh version, sample dropped",
				zap.Uint64("base", version),
				zap.Uint64("current", obj.Version()),
			)
			return Result{Dropped: true, VertexCount: obj.Mesh().VertexCount()}
		}
	}

	p := hit.Point
	o.prevWorld = &p
	if modified {
		o.strokeModified = true
	}

	return Result{
		Modified:    modified,
		Structural:  structural,
		VertexCount: work.VertexCount(),
	}
}

// EndStroke transitions back to idle at pointer-up: push history is
// cleared and the registered hook is told whether the stroke modified the
// mesh. Returns that flag.
func (o *Orchestrator) EndStroke() bool {
	modified := o.strokeModified
	o.prevWorld = nil
	o.strokeModified = false
	if o.onStrokeEnd != nil {
		o.onStrokeEnd(modified)
	}
	return modified
}
