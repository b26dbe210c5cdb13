package sculpt

import (
	"fmt"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/pkg/math"
)

// Tool selects the brush behavior.
type Tool int

const (
	// ToolAdd pushes vertices outward along the local surface normal.
	ToolAdd Tool = iota
	// ToolSubtract pulls vertices inward along the local surface normal.
	ToolSubtract
	// ToolPush drags vertices along the stroke's motion direction.
	ToolPush
)

// ParseTool parses a tool name as used in config files and scripts.
func ParseTool(name string) (Tool, error) {
	switch name {
	case "add":
		return ToolAdd, nil
	case "subtract":
		return ToolSubtract, nil
	case "push":
		return ToolPush, nil
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

func (t Tool) String() string {
	switch t {
	case ToolAdd:
		return "add"
	case ToolSubtract:
		return "subtract"
	case ToolPush:
		return "push"
	}
	return "unknown"
}

const (
	// brushGain scales all displacement so default strengths move
	// vertices well under one unit per sample, keeping high strength at
	// low frame rates from exploding the surface in a single frame.
	brushGain = 0.1

	// pushDragScale and pushDragCap bound the push tool's response to
	// drag distance since the previous sample.
	pushDragScale = 2.0
	pushDragCap   = 1.0
)

// BrushParams carries the per-sample brush settings.
type BrushParams struct {
	Tool     Tool
	Radius   float32
	Strength float32
	// Invert flips the displacement sign (the modifier held during a
	// stroke to carve with the add tool and vice versa).
	Invert bool
	// PrevWorldPoint is the primary stroke point of the previous sample.
	// Required by the push tool; nil means "no motion yet".
	PrevWorldPoint *math.Vec3
}

// Deform displaces every vertex within Radius of any application point.
// Points are in the mesh's local space; distances and displacement are
// computed in world space and written back in local space, and effects
// from overlapping points accumulate. The mesh is edited in place. After
// any vertex moved, normals and bounds are recomputed once. Returns
// whether anything moved; invalid radius/strength is a no-op, not an
// error, so callers may pass zero strength for preview.
func Deform(mesh *geometry.Mesh, points []Point, p BrushParams, world math.Mat4) bool {
	if p.Radius <= 0 || p.Strength <= 0 || len(points) == 0 {
		return false
	}
	invWorld := world.Inverse()

	// Resolve per-point world position, direction and magnitude up front.
	type site struct {
		pos   math.Vec3
		dir   math.Vec3
		scale float32
	}
	sites := make([]site, 0, len(points))

	var primaryWorld math.Vec3
	for _, pt := range points {
		if pt.Primary {
			primaryWorld = world.TransformPoint(pt.Position)
		}
	}

	var dragLocal math.Vec3
	var dragScale float32
	if p.Tool == ToolPush {
		// Push needs motion: without a previous point, or with a
		// stationary cursor, there is nothing to drag along.
		if p.PrevWorldPoint == nil {
			return false
		}
		dragWorld := primaryWorld.Sub(*p.PrevWorldPoint)
		dist := dragWorld.Length()
		if dist < 1e-6 {
			return false
		}
		// The mirrored copies reuse the primary drag vector, mirrored in
		// local space, since drag history exists only for the primary.
		dragLocal = invWorld.TransformDirection(dragWorld).Normalize()
		dragScale = dist * pushDragScale
		if dragScale > pushDragCap {
			dragScale = pushDragCap
		}
	}

	for _, pt := range points {
		s := site{pos: world.TransformPoint(pt.Position), scale: 1}
		switch p.Tool {
		case ToolPush:
			mirrored := MirrorVec(dragLocal, pt.Mirror)
			s.dir = world.TransformDirection(mirrored).Normalize()
			s.scale = dragScale
		default:
			s.dir = world.TransformDirection(pt.Normal).Normalize()
		}
		sites = append(sites, s)
	}

	sign := float32(1)
	if p.Tool == ToolSubtract {
		sign = -1
	}
	if p.Invert {
		sign = -sign
	}

	radiusSq := p.Radius * p.Radius
	modified := false
	for i := range mesh.Vertices {
		wp := world.TransformPoint(mesh.Vertices[i].Position)
		var disp math.Vec3
		touched := false
		for _, s := range sites {
			distSq := wp.DistanceSq(s.pos)
			if distSq > radiusSq {
				continue
			}
			falloff := 1 - wp.Distance(s.pos)/p.Radius
			if falloff < 0 {
				falloff = 0
			}
			strength := p.Strength * falloff * falloff * brushGain * s.scale
			disp = disp.Add(s.dir.Scale(strength * sign))
			touched = true
		}
		if !touched {
			continue
		}
		mesh.Vertices[i].Position = invWorld.TransformPoint(wp.Add(disp))
		modified = true
	}

	if modified {
		mesh.Refresh()
	}
	return modified
}
