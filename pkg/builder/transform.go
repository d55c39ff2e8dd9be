package builder

import "github.com/Faultbox/wingedge/pkg/math"

// TransformStack holds the composed matrix of every enclosing transform
// node, innermost last. It is a value: Push and Pop return a new stack and
// never modify the receiver, so a stack handed to a child scope is released
// simply by leaving that scope.
type TransformStack struct {
	composed []math.Mat4
}

// Push enters a transform node. With nothing active the node's matrix is
// adopted as is; otherwise the new current matrix is current * m, so the
// node-local transform applies first.
func (s TransformStack) Push(m math.Mat4) TransformStack {
	if cur, ok := s.Current(); ok {
		m = cur.Mul(m)
	}
	n := len(s.composed)
	return TransformStack{composed: append(s.composed[:n:n], m)}
}

// Pop leaves the innermost transform node.
func (s TransformStack) Pop() TransformStack {
	if len(s.composed) == 0 {
		return s
	}
	return TransformStack{composed: s.composed[:len(s.composed)-1]}
}

// Current returns the composed matrix, and false when no transform is active.
func (s TransformStack) Current() (math.Mat4, bool) {
	if len(s.composed) == 0 {
		return math.Identity(), false
	}
	return s.composed[len(s.composed)-1], true
}

// Depth returns the number of enclosing transform nodes.
func (s TransformStack) Depth() int {
	return len(s.composed)
}

// transformPositions maps flat x, y, z triples through m with the
// homogeneous divide.
func transformPositions(values []float64, m math.Mat4) []float64 {
	out := make([]float64, len(values))
	for i := 0; i+2 < len(values); i += 3 {
		p := m.TransformPoint(math.Vec3FromSlice(values, i))
		out[i], out[i+1], out[i+2] = p.X, p.Y, p.Z
	}
	return out
}

// transformNormals maps flat normal triples through the normal matrix of m
// and renormalizes them. Translation and projective terms never reach a
// normal.
func transformNormals(values []float64, m math.Mat4) []float64 {
	nm := m.NormalMatrix()
	out := make([]float64, len(values))
	for i := 0; i+2 < len(values); i += 3 {
		n := nm.MulVec3(math.Vec3FromSlice(values, i)).Normalize()
		out[i], out[i+1], out[i+2] = n.X, n.Y, n.Z
	}
	return out
}
