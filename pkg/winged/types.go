// Package winged holds the winged-edge mesh: vertices with their incident
// faces, triangular faces with per-corner normals, and edges pairing at most
// two opposite half-edges.
package winged

import (
	"fmt"

	"github.com/Faultbox/wingedge/pkg/math"
)

// Vertex is a mesh vertex. ID equals the vertex's flat position offset / 3.
type Vertex struct {
	ID           int
	Position     math.Vec3
	Normal       math.Vec3
	SurfaceNdotV float32
	Smooth       bool    // false marks a crease vertex
	Faces        []*Face // insertion order
	Edges        []*Edge
}

// IsBoundary reports whether any incident edge has a single half-edge.
func (v *Vertex) IsBoundary() bool {
	for _, e := range v.Edges {
		if e.IsBoundary() {
			return true
		}
	}
	return false
}

// Valence returns the number of incident edges.
func (v *Vertex) Valence() int {
	return len(v.Edges)
}

// Face is a triangle with one normal (and optionally one texcoord) per corner.
type Face struct {
	ID           int
	Vertices     [3]*Vertex
	Normals      [3]math.Vec3
	TexCoords    [3]math.Vec2
	HasTexCoords bool
	Material     int
	UserTag      int
	HalfEdges    [3]*HalfEdge // HalfEdges[i] runs Vertices[i] -> Vertices[(i+1)%3]
}

// Index returns the corner index of v in f, or -1.
func (f *Face) Index(v *Vertex) int {
	for i, fv := range f.Vertices {
		if fv == v {
			return i
		}
	}
	return -1
}

// VertexNormal returns the corner normal this face assigns to v.
func (f *Face) VertexNormal(v *Vertex) (math.Vec3, bool) {
	i := f.Index(v)
	if i < 0 {
		return math.Vec3{}, false
	}
	return f.Normals[i], true
}

// Normal returns the unit geometric normal from the winding order.
func (f *Face) Normal() math.Vec3 {
	p0 := f.Vertices[0].Position
	e1 := f.Vertices[1].Position.Sub(p0)
	e2 := f.Vertices[2].Position.Sub(p0)
	return e1.Cross(e2).Normalize()
}

// HalfEdge is the directed side of an edge owned by exactly one face.
type HalfEdge struct {
	From, To *Vertex
	Face     *Face
	Next     *HalfEdge // next half-edge around Face
	Twin     *HalfEdge // opposite half-edge, nil on a boundary
	Edge     *Edge
}

// Edge is an undirected edge: First and, once a neighbouring face arrives,
// Second running the opposite way.
type Edge struct {
	First  *HalfEdge
	Second *HalfEdge
	Extra  []*HalfEdge // surplus half-edges kept under KeepEdge
}

// IsBoundary reports whether only one face uses the edge.
func (e *Edge) IsBoundary() bool {
	return e.Second == nil
}

// IsNonManifold reports whether more than two faces use the edge.
func (e *Edge) IsNonManifold() bool {
	return len(e.Extra) > 0
}

// Vertices returns the endpoints in the direction of First.
func (e *Edge) Vertices() (*Vertex, *Vertex) {
	return e.First.From, e.First.To
}

// Other returns the endpoint opposite v.
func (e *Edge) Other(v *Vertex) *Vertex {
	if e.First.From == v {
		return e.First.To
	}
	return e.First.From
}

// Length returns the Euclidean distance between the endpoints.
func (e *Edge) Length() float64 {
	return e.First.From.Position.Distance(e.First.To.Position)
}

// halfEdgeCount counts every half-edge recorded on the edge.
func (e *Edge) halfEdgeCount() int {
	n := 1 + len(e.Extra)
	if e.Second != nil {
		n++
	}
	return n
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the box extent per axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns the length of the box diagonal.
func (b Bounds) Diagonal() float64 {
	return b.Size().Length()
}

// AnomalyKind classifies a recoverable topology problem.
type AnomalyKind int

const (
	AnomalyNonManifold AnomalyKind = iota // third face on an edge
	AnomalyOrientation                    // two faces traverse an edge the same way
	AnomalyDegenerate                     // face repeats a vertex
)

// String returns a human-readable kind name.
func (k AnomalyKind) String() string {
	switch k {
	case AnomalyNonManifold:
		return "non-manifold"
	case AnomalyOrientation:
		return "orientation"
	case AnomalyDegenerate:
		return "degenerate"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Anomaly records a topology problem met while inserting a face.
type Anomaly struct {
	Kind     AnomalyKind
	From, To int    // vertex ids of the offending edge
	Face     int    // id of the inserted face, -1 when the face was rejected
	Corners  [3]int // vertex ids of the face being inserted
}

// Rejected reports whether the face was left out of the mesh.
func (a Anomaly) Rejected() bool {
	return a.Face < 0
}
