package builder

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/wingedge/pkg/math"
)

func near(a, b math.Vec3) bool {
	const eps = 1e-9
	return stdmath.Abs(a.X-b.X) < eps && stdmath.Abs(a.Y-b.Y) < eps && stdmath.Abs(a.Z-b.Z) < eps
}

func TestTransformStackComposition(t *testing.T) {
	outer := math.Translate(1, 2, 3)
	inner := math.RotateZ(stdmath.Pi / 2)

	var s TransformStack
	if _, ok := s.Current(); ok {
		t.Fatal("empty stack should have no current matrix")
	}

	s = s.Push(outer)
	if got, _ := s.Current(); got != outer {
		t.Errorf("single push should adopt the matrix, got %v", got)
	}

	s = s.Push(inner)
	if s.Depth() != 2 {
		t.Fatalf("depth: got %d, want 2", s.Depth())
	}

	v := math.Vec3{X: 1}
	cur, _ := s.Current()
	got := cur.TransformPoint(v)
	want := outer.TransformPoint(inner.TransformPoint(v))
	if !near(got, want) {
		t.Errorf("inner transform must apply first: got %v, want %v", got, want)
	}
	if !near(got, math.Vec3{X: 1, Y: 3, Z: 3}) {
		t.Errorf("got %v, want (1, 3, 3)", got)
	}

	s = s.Pop()
	if got, _ := s.Current(); got != outer || s.Depth() != 1 {
		t.Errorf("pop should restore the outer matrix, got %v at depth %d", got, s.Depth())
	}
	if s = s.Pop().Pop(); s.Depth() != 0 {
		t.Errorf("popping an empty stack should stay empty, depth %d", s.Depth())
	}
}

// Sibling pushes onto the same parent must not overwrite each other.
func TestTransformStackSiblingsIndependent(t *testing.T) {
	parent := TransformStack{}.Push(math.Translate(1, 0, 0)).Push(math.Identity()).Pop()

	a := parent.Push(math.Scale(2, 2, 2))
	b := parent.Push(math.Scale(3, 3, 3))

	ma, _ := a.Current()
	mb, _ := b.Current()
	if p := ma.TransformPoint(math.Vec3{X: 1}); !near(p, math.Vec3{X: 3}) {
		t.Errorf("first sibling: got %v, want (3, 0, 0)", p)
	}
	if p := mb.TransformPoint(math.Vec3{X: 1}); !near(p, math.Vec3{X: 4}) {
		t.Errorf("second sibling: got %v, want (4, 0, 0)", p)
	}
	if parent.Depth() != 1 {
		t.Errorf("parent depth changed to %d", parent.Depth())
	}
}

func TestTransformNormalsIgnoreTranslation(t *testing.T) {
	m := math.Translate(5, 5, 5).Mul(math.Scale(2, 1, 1))

	positions := transformPositions([]float64{1, 1, 0}, m)
	if got := math.Vec3FromSlice(positions, 0); !near(got, math.Vec3{X: 7, Y: 6, Z: 5}) {
		t.Errorf("position: got %v, want (7, 6, 5)", got)
	}

	s := 1 / stdmath.Sqrt2
	normals := transformNormals([]float64{s, s, 0}, m)
	got := math.Vec3FromSlice(normals, 0)
	want := math.Vec3{X: 0.5, Y: 1}.Normalize()
	if !near(got, want) {
		t.Errorf("normal: got %v, want %v", got, want)
	}
	if full := m.TransformPoint(math.Vec3{X: s, Y: s}).Normalize(); near(got, full) {
		t.Errorf("normal must not follow the position transform, both gave %v", got)
	}
	if !near(got, math.Vec3FromSlice(transformNormals([]float64{1, 1, 0}, m), 0)) {
		t.Error("normals should come out unit length regardless of input length")
	}
}

func TestContextValueSemantics(t *testing.T) {
	var root Context
	child := root.WithTransform(math.Translate(0, 0, 1))
	if root.Transforms.Depth() != 0 {
		t.Error("WithTransform modified the parent context")
	}
	if child.WithoutTransform().Transforms.Depth() != 0 {
		t.Error("WithoutTransform should undo WithTransform")
	}
}
