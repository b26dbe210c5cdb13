// Package picking provides ray casting against sculptable meshes.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport
// dimensions. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearPoint := math.Vec4{ndcX, ndcY, -1.0, 1.0}
	farPoint := math.Vec4{ndcX, ndcY, 1.0, 1.0}

	nearWorld := invViewProj.MulVec4(nearPoint)
	farWorld := invViewProj.MulVec4(farPoint)

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	dir := math.Vec3{
		X: farWorld[0] - nearWorld[0],
		Y: farWorld[1] - nearWorld[1],
		Z: farWorld[2] - nearWorld[2],
	}.Normalize()

	return Ray{Origin: origin, Direction: dir}
}

// Transform returns the ray mapped through the given matrix. The direction
// is renormalized; scale in the matrix changes hit distances but not which
// triangles are hit.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction).Normalize(),
	}
}

// IntersectBounds tests ray intersection with an axis-aligned bounding box
// using the slab method. Returns the entry distance and whether the ray
// hits; a ray starting inside the box returns the exit distance.
func (r Ray) IntersectBounds(box geometry.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	bmax := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (bmin[axis] - origin[axis]) / dir[axis]
			t2 := (bmax[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle runs the Moller-Trumbore test against one triangle.
// Returns the ray parameter t and whether the ray hits strictly in front
// of the origin. Degenerate triangles report no hit.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	const epsilon = 1e-7

	e1 := b.Sub(a)
	e2 := c.Sub(a)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, false // parallel or zero-area triangle
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * invDet
	if t <= epsilon {
		return 0, false // behind or at the origin
	}
	return t, true
}

// Hit describes the closest ray-mesh intersection.
type Hit struct {
	// Point is the intersection in world space.
	Point math.Vec3
	// TriangleIndex identifies the hit triangle in the mesh index buffer.
	TriangleIndex int
	// Normal is the hit triangle's unit face normal in world space,
	// facing outward consistent with winding.
	Normal math.Vec3
	// Distance is the ray parameter at the hit, in local units.
	Distance float32
}

// IntersectMesh finds the closest intersection of a world-space ray with
// the mesh under the given world transform. Returns the hit and true, or
// false if the ray misses. Zero-area triangles are skipped.
func IntersectMesh(r Ray, mesh *geometry.Mesh, world math.Mat4) (Hit, bool) {
	invWorld := world.Inverse()
	local := r.Transform(invWorld)

	if _, ok := local.IntersectBounds(mesh.Bounds); !ok {
		return Hit{}, false
	}

	best := Hit{TriangleIndex: -1, Distance: math32.MaxFloat32}
	for t := 0; t < mesh.TriangleCount(); t++ {
		ia, ib, ic := mesh.Triangle(t)
		a := mesh.Vertices[ia].Position
		b := mesh.Vertices[ib].Position
		c := mesh.Vertices[ic].Position

		dist, ok := local.IntersectTriangle(a, b, c)
		if !ok || dist >= best.Distance {
			continue
		}
		best.Distance = dist
		best.TriangleIndex = t
	}

	if best.TriangleIndex < 0 {
		return Hit{}, false
	}

	ia, ib, ic := mesh.Triangle(best.TriangleIndex)
	a := mesh.Vertices[ia].Position
	b := mesh.Vertices[ib].Position
	c := mesh.Vertices[ic].Position

	localPoint := local.Origin.Add(local.Direction.Scale(best.Distance))
	localNormal := b.Sub(a).Cross(c.Sub(a))

	best.Point = world.TransformPoint(localPoint)
	best.Normal = world.TransformDirection(localNormal).Normalize()
	return best, true
}

// LocalNormalEstimate averages the per-vertex normals of all vertices
// within sampleRadius of worldPoint, seeded with the hit triangle's
// geometric normal so the result never degenerates to zero length.
func LocalNormalEstimate(mesh *geometry.Mesh, worldPoint math.Vec3, sampleRadius float32, world math.Mat4, seed math.Vec3) math.Vec3 {
	if len(mesh.Vertices) == 0 || sampleRadius <= 0 {
		return seed.Normalize()
	}

	radiusSq := sampleRadius * sampleRadius
	sum := seed.Normalize()
	for i := range mesh.Vertices {
		wp := world.TransformPoint(mesh.Vertices[i].Position)
		if wp.DistanceSq(worldPoint) > radiusSq {
			continue
		}
		wn := world.TransformDirection(mesh.Vertices[i].Normal).Normalize()
		sum = sum.Add(wn)
	}

	n := sum.Normalize()
	if n.LengthSq() < 0.5 {
		return seed.Normalize()
	}
	return n
}
