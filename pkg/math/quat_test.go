package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	if q.ToMat4() != Identity() {
		t.Error("identity quaternion should convert to the identity matrix")
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math.Abs(length-1) > 1e-12 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}

	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("zero quaternion should normalize to identity")
	}
}

func TestQuatToMat4MatchesRotateAxis(t *testing.T) {
	axis := Vec3{1, 2, 3}.Normalize()
	q := QuatFromAxisAngle(axis, 0.9)
	a := q.ToMat4()
	b := RotateAxis(axis, 0.9)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			t.Fatalf("element %d: quaternion %f, axis-angle %f", i, a[i], b[i])
		}
	}
}

func TestQuatMul(t *testing.T) {
	y := Vec3{0, 1, 0}
	q := QuatFromAxisAngle(y, math.Pi/4).Mul(QuatFromAxisAngle(y, math.Pi/4))
	p := q.ToMat4().TransformPoint(Vec3{1, 0, 0})
	if !near(p, Vec3{0, 0, -1}) {
		t.Errorf("two 45 degree turns about Y: got %v, want (0,0,-1)", p)
	}
}
