// Package scene owns the sculptable objects. Each object holds exactly one
// mesh plus a version counter; all mesh replacement goes through Commit so
// that work started against a stale snapshot is detected and dropped
// rather than clobbering a newer structural change.
package scene

import (
	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/pkg/math"
)

// ObjectID is a stable handle to an object in the scene.
type ObjectID uint32

// Object is one sculptable entity: a mesh plus its placement.
type Object struct {
	id   ObjectID
	name string

	mesh    *geometry.Mesh
	version uint64

	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// ID returns the object's stable id.
func (o *Object) ID() ObjectID { return o.id }

// Name returns the display name.
func (o *Object) Name() string { return o.name }

// Snapshot returns the current mesh together with the version it belongs
// to. Callers that intend to replace the mesh must pass this version back
// to Commit.
func (o *Object) Snapshot() (*geometry.Mesh, uint64) {
	return o.mesh, o.version
}

// Mesh returns the current mesh without a version. For read-only
// consumers such as the renderer's vertex upload.
func (o *Object) Mesh() *geometry.Mesh { return o.mesh }

// Version returns the current mesh version.
func (o *Object) Version() uint64 { return o.version }

// Commit replaces the object's mesh if baseVersion still matches the
// current version, bumping the version. Returns false (and changes
// nothing) when the snapshot went stale, which the caller must treat as
// "discard your result".
func (o *Object) Commit(mesh *geometry.Mesh, baseVersion uint64) bool {
	if o.version != baseVersion {
		return false
	}
	o.mesh = mesh
	o.version++
	return true
}

// Touch bumps the version without replacing the mesh. Used after in-place
// vertex edits so consumers holding GPU copies know to re-upload.
func (o *Object) Touch() {
	o.version++
}

// WorldMatrix returns the object's local-to-world transform.
func (o *Object) WorldMatrix() math.Mat4 {
	t := math.Translate(o.Position.X, o.Position.Y, o.Position.Z)
	r := o.Rotation.ToMat4()
	s := math.Scale(o.Scale.X, o.Scale.Y, o.Scale.Z)
	return t.Mul(r).Mul(s)
}

// InverseWorldMatrix returns the world-to-local transform.
func (o *Object) InverseWorldMatrix() math.Mat4 {
	return o.WorldMatrix().Inverse()
}

// Scene is an arena of objects indexed by stable id.
type Scene struct {
	objects map[ObjectID]*Object
	order   []ObjectID
	active  ObjectID
	nextID  ObjectID
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		objects: make(map[ObjectID]*Object),
		nextID:  1,
	}
}

// Add inserts a mesh as a new object and makes it active.
func (s *Scene) Add(name string, mesh *geometry.Mesh) *Object {
	o := &Object{
		id:       s.nextID,
		name:     name,
		mesh:     mesh,
		version:  1,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
	s.nextID++
	s.objects[o.id] = o
	s.order = append(s.order, o.id)
	s.active = o.id
	return o
}

// Remove deletes an object from the scene.
func (s *Scene) Remove(id ObjectID) {
	if _, ok := s.objects[id]; !ok {
		return
	}
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.active == id {
		s.active = 0
		if len(s.order) > 0 {
			s.active = s.order[len(s.order)-1]
		}
	}
}

// Get returns the object with the given id, or nil.
func (s *Scene) Get(id ObjectID) *Object {
	return s.objects[id]
}

// Objects returns all objects in insertion order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// Active returns the currently selected object, or nil.
func (s *Scene) Active() *Object {
	return s.objects[s.active]
}

// SetActive selects an object. Ignored if the id is unknown.
func (s *Scene) SetActive(id ObjectID) {
	if _, ok := s.objects[id]; ok {
		s.active = id
	}
}
