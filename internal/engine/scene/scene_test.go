package scene

import (
	"testing"

	"github.com/Faultbox/sculptkit/internal/engine/primitive"
	"github.com/Faultbox/sculptkit/pkg/math"
)

func TestAddGetRemove(t *testing.T) {
	s := New()
	a := s.Add("a", primitive.Cube(1))
	b := s.Add("b", primitive.Sphere(1, 1))

	if a.ID() == b.ID() {
		t.Fatal("objects share an id")
	}
	if s.Get(a.ID()) != a || s.Get(b.ID()) != b {
		t.Error("Get did not return the added objects")
	}
	if got := s.Objects(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Objects() not in insertion order: %v", got)
	}
	if s.Active() != b {
		t.Error("last added object is not active")
	}

	s.Remove(b.ID())
	if s.Get(b.ID()) != nil {
		t.Error("removed object still retrievable")
	}
	if s.Active() != a {
		t.Error("active did not fall back to the remaining object")
	}

	s.Remove(a.ID())
	if s.Active() != nil {
		t.Error("empty scene has an active object")
	}
	s.Remove(a.ID()) // double remove is fine
}

func TestSetActive(t *testing.T) {
	s := New()
	a := s.Add("a", primitive.Cube(1))
	s.Add("b", primitive.Cube(1))

	s.SetActive(a.ID())
	if s.Active() != a {
		t.Error("SetActive did not switch selection")
	}
	s.SetActive(999)
	if s.Active() != a {
		t.Error("unknown id changed the selection")
	}
}

func TestCommitVersionGuard(t *testing.T) {
	s := New()
	obj := s.Add("sphere", primitive.Sphere(1, 1))
	if obj.Version() != 1 {
		t.Fatalf("fresh object version = %d, want 1", obj.Version())
	}

	// Two workers snapshot the same version; only the first commit wins.
	meshA, verA := obj.Snapshot()
	meshB, verB := obj.Snapshot()

	workA := meshA.Clone()
	if !obj.Commit(workA, verA) {
		t.Fatal("first commit against a fresh snapshot rejected")
	}
	if obj.Version() != 2 {
		t.Errorf("version = %d after commit, want 2", obj.Version())
	}
	if obj.Mesh() != workA {
		t.Error("committed mesh not installed")
	}

	workB := meshB.Clone()
	if obj.Commit(workB, verB) {
		t.Error("stale commit accepted")
	}
	if obj.Mesh() != workA {
		t.Error("stale commit replaced the mesh")
	}
	if obj.Version() != 2 {
		t.Errorf("stale commit bumped version to %d", obj.Version())
	}
}

func TestTouch(t *testing.T) {
	s := New()
	obj := s.Add("cube", primitive.Cube(1))
	mesh, ver := obj.Snapshot()

	obj.Touch()
	if obj.Version() != ver+1 {
		t.Errorf("version = %d after Touch, want %d", obj.Version(), ver+1)
	}
	if obj.Mesh() != mesh {
		t.Error("Touch replaced the mesh")
	}
	if obj.Commit(mesh.Clone(), ver) {
		t.Error("commit against a pre-Touch snapshot accepted")
	}
}

func TestWorldMatrix(t *testing.T) {
	s := New()
	obj := s.Add("cube", primitive.Cube(1))

	// Default transform is identity.
	p := obj.WorldMatrix().TransformPoint(math.Vec3{X: 1, Y: 2, Z: 3})
	if p != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("identity transform moved point to %v", p)
	}

	obj.Position = math.Vec3{X: 1}
	obj.Scale = math.Vec3{X: 2, Y: 2, Z: 2}
	// Scale applies before translation: (1,0,0) -> (2,0,0) -> (3,0,0).
	p = obj.WorldMatrix().TransformPoint(math.Vec3{X: 1})
	if d := p.Distance(math.Vec3{X: 3}); d > 1e-5 {
		t.Errorf("scaled+translated point = %v, want (3,0,0)", p)
	}

	// Inverse round-trip.
	back := obj.InverseWorldMatrix().TransformPoint(p)
	if d := back.Distance(math.Vec3{X: 1}); d > 1e-5 {
		t.Errorf("inverse world transform returned %v, want (1,0,0)", back)
	}
}
