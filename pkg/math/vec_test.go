package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	if got := (Vec3{3, 4, 12}).Length(); got != 13 {
		t.Errorf("Vec3.Length() = %v, want 13", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, -2}
	if got, want := a.Min(b), (Vec3{1, -1, -2}); got != want {
		t.Errorf("Min = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, -2}); got != want {
		t.Errorf("Max = %v, want %v", got, want)
	}
}

func TestFromSlice(t *testing.T) {
	values := []float64{9, 1, 2, 3, 4}
	if got, want := Vec3FromSlice(values, 1), (Vec3{1, 2, 3}); got != want {
		t.Errorf("Vec3FromSlice = %v, want %v", got, want)
	}
	if got, want := Vec2FromSlice(values, 3), (Vec2{3, 4}); got != want {
		t.Errorf("Vec2FromSlice = %v, want %v", got, want)
	}
}
