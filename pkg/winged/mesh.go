package winged

import (
	"errors"
	"fmt"

	"github.com/Faultbox/wingedge/pkg/math"
	"github.com/Faultbox/wingedge/pkg/scene"
)

// Topology errors.
var (
	ErrUnknownVertex   = errors.New("face references a vertex not in the mesh")
	ErrDegenerateFace  = errors.New("face repeats a vertex")
	ErrNonManifoldEdge = errors.New("edge already shared by two faces")
)

// NonManifoldPolicy decides what happens to a face that would put a third
// half-edge on an edge.
type NonManifoldPolicy int

const (
	// RejectFace leaves the face out; the mesh stays 2-manifold.
	RejectFace NonManifoldPolicy = iota
	// KeepEdge inserts the face and records the surplus half-edge in Edge.Extra.
	KeepEdge
)

// String returns the policy name used in configuration files.
func (p NonManifoldPolicy) String() string {
	switch p {
	case RejectFace:
		return "reject"
	case KeepEdge:
		return "keep"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseNonManifoldPolicy parses "reject" or "keep".
func ParseNonManifoldPolicy(name string) (NonManifoldPolicy, error) {
	switch name {
	case "reject", "":
		return RejectFace, nil
	case "keep":
		return KeepEdge, nil
	default:
		return 0, fmt.Errorf("unknown non-manifold policy %q", name)
	}
}

// Mesh is one shape's winged-edge structure.
type Mesh struct {
	ID          int
	Silhouettes bool
	Materials   []scene.Material
	Policy      NonManifoldPolicy

	Vertices []*Vertex
	Faces    []*Face
	Edges    []*Edge

	Bounds         Bounds
	MeanEdgeLength float64
	Anomalies      []Anomaly

	finalized bool
}

// NewMesh creates an empty mesh.
func NewMesh(id int, policy NonManifoldPolicy) *Mesh {
	return &Mesh{ID: id, Policy: policy}
}

// AddVertex appends a vertex; its id is its position in the vertex list.
func (m *Mesh) AddVertex(position, normal math.Vec3, surfaceNdotV float32) *Vertex {
	v := &Vertex{
		ID:           len(m.Vertices),
		Position:     position,
		Normal:       normal,
		SurfaceNdotV: surfaceNdotV,
		Smooth:       true,
	}
	m.Vertices = append(m.Vertices, v)
	return v
}

// FaceData carries the per-face attributes given to MakeFace.
type FaceData struct {
	Normals      [3]math.Vec3
	TexCoords    [3]math.Vec2
	HasTexCoords bool
	Material     int
	UserTag      int
}

// edgeLink is the planned placement of one directed side of a new face.
type edgeLink struct {
	pair  *Edge // pair with this edge's unmatched half-edge
	extra *Edge // KeepEdge: record as surplus on this edge
}

// MakeFace creates a triangle over the vertices with the given ids and
// links its sides into the mesh. Rejected faces leave the mesh untouched;
// anomalies are appended to m.Anomalies either way.
func (m *Mesh) MakeFace(ids [3]int, data FaceData) (*Face, error) {
	var verts [3]*Vertex
	for i, id := range ids {
		if id < 0 || id >= len(m.Vertices) {
			return nil, fmt.Errorf("%w: id %d of %d", ErrUnknownVertex, id, len(m.Vertices))
		}
		verts[i] = m.Vertices[id]
	}

	if verts[0] == verts[1] || verts[1] == verts[2] || verts[2] == verts[0] {
		m.Anomalies = append(m.Anomalies, Anomaly{Kind: AnomalyDegenerate, Face: -1, Corners: ids})
		return nil, fmt.Errorf("%w: %v", ErrDegenerateFace, ids)
	}

	// Plan every side before touching the mesh so a rejection links nothing.
	var links [3]edgeLink
	var pending []Anomaly
	for i := 0; i < 3; i++ {
		a, b := verts[i], verts[(i+1)%3]
		shared := edgesBetween(a, b)

		count := 0
		for _, e := range shared {
			count += e.halfEdgeCount()
		}

		switch {
		case count >= 2:
			anomaly := Anomaly{Kind: AnomalyNonManifold, From: a.ID, To: b.ID, Face: -1, Corners: ids}
			if m.Policy == RejectFace {
				m.Anomalies = append(m.Anomalies, anomaly)
				return nil, fmt.Errorf("%w: %d-%d", ErrNonManifoldEdge, a.ID, b.ID)
			}
			links[i].extra = shared[0]
			pending = append(pending, anomaly)

		case count == 1 && shared[0].First.From == b:
			links[i].pair = shared[0]

		case count == 1:
			pending = append(pending, Anomaly{Kind: AnomalyOrientation, From: a.ID, To: b.ID, Corners: ids})
		}
	}

	f := &Face{
		ID:           len(m.Faces),
		Vertices:     verts,
		Normals:      data.Normals,
		TexCoords:    data.TexCoords,
		HasTexCoords: data.HasTexCoords,
		Material:     data.Material,
		UserTag:      data.UserTag,
	}

	for i := 0; i < 3; i++ {
		a, b := verts[i], verts[(i+1)%3]
		he := &HalfEdge{From: a, To: b, Face: f}
		f.HalfEdges[i] = he

		switch {
		case links[i].pair != nil:
			e := links[i].pair
			e.Second = he
			he.Twin = e.First
			e.First.Twin = he
			he.Edge = e

		case links[i].extra != nil:
			e := links[i].extra
			e.Extra = append(e.Extra, he)
			he.Edge = e

		default:
			e := &Edge{First: he}
			he.Edge = e
			m.Edges = append(m.Edges, e)
			a.Edges = append(a.Edges, e)
			b.Edges = append(b.Edges, e)
		}
	}
	for i := 0; i < 3; i++ {
		f.HalfEdges[i].Next = f.HalfEdges[(i+1)%3]
	}

	for _, v := range verts {
		v.Faces = append(v.Faces, f)
	}
	m.Faces = append(m.Faces, f)

	for _, anomaly := range pending {
		anomaly.Face = f.ID
		m.Anomalies = append(m.Anomalies, anomaly)
	}

	return f, nil
}

// edgesBetween returns the edges joining a and b in creation order.
func edgesBetween(a, b *Vertex) []*Edge {
	var out []*Edge
	for _, e := range a.Edges {
		if e.Other(a) == b {
			out = append(out, e)
		}
	}
	return out
}

// BoundaryEdgeCount returns the number of edges used by a single face.
func (m *Mesh) BoundaryEdgeCount() int {
	n := 0
	for _, e := range m.Edges {
		if e.IsBoundary() {
			n++
		}
	}
	return n
}

// CreaseVertexCount returns the number of vertices classified as creases.
func (m *Mesh) CreaseVertexCount() int {
	n := 0
	for _, v := range m.Vertices {
		if !v.Smooth {
			n++
		}
	}
	return n
}

// Finalized reports whether Finalize has run.
func (m *Mesh) Finalized() bool {
	return m.finalized
}
