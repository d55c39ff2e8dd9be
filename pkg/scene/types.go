// Package scene defines the scene-graph nodes handed to the mesh builder:
// groups, transforms, shapes carrying a material, and indexed face sets.
package scene

import (
	"fmt"

	"github.com/Faultbox/wingedge/pkg/math"
)

// TriangleStyle tags how a face-set row encodes its triangles.
type TriangleStyle int

const (
	TriangleStrip TriangleStyle = 0 // Rolling window of 3, alternating winding
	TriangleFan   TriangleStyle = 1 // Shared first vertex
	Triangles     TriangleStyle = 2 // Independent triples

	// UnknownStyle tags a row whose style name was not recognised. Decoding
	// skips such rows.
	UnknownStyle TriangleStyle = -1
)

// String returns a human-readable style name.
func (s TriangleStyle) String() string {
	switch s {
	case TriangleStrip:
		return "strip"
	case TriangleFan:
		return "fan"
	case Triangles:
		return "triangles"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseTriangleStyle parses a style name as written in scene files.
func ParseTriangleStyle(name string) (TriangleStyle, error) {
	switch name {
	case "strip", "triangle_strip":
		return TriangleStrip, nil
	case "fan", "triangle_fan":
		return TriangleFan, nil
	case "triangles":
		return Triangles, nil
	default:
		return 0, fmt.Errorf("unknown triangle style %q", name)
	}
}

// Material holds the surface colors of a shape (RGBA components).
type Material struct {
	Name      string     `yaml:"name"`
	Diffuse   [4]float32 `yaml:"diffuse"`
	Specular  [4]float32 `yaml:"specular"`
	Ambient   [4]float32 `yaml:"ambient"`
	Emission  [4]float32 `yaml:"emission"`
	Shininess float32    `yaml:"shininess"`
}

// DefaultMaterial returns the material used when nothing else applies.
func DefaultMaterial() Material {
	return Material{
		Name:     "default",
		Diffuse:  [4]float32{0.8, 0.8, 0.8, 1},
		Specular: [4]float32{0, 0, 0, 1},
		Ambient:  [4]float32{0.2, 0.2, 0.2, 1},
		Emission: [4]float32{0, 0, 0, 1},
	}
}

// Node is any element of the scene graph.
type Node interface {
	node()
}

// Group is a transparent container.
type Group struct {
	Name     string
	Children []Node
}

// Transform applies Matrix to every descendant.
type Transform struct {
	Name     string
	Matrix   math.Mat4
	Children []Node
}

// Shape sets the current material for its descendants.
type Shape struct {
	Name     string
	Material Material
	Children []Node
}

// IndexedFaceSet is flat, index-based polygon soup.
//
// Index units differ per array:
//   - VIndices hold raw offsets into Vertices; the vertex id is offset/3.
//   - NIndices hold raw offsets into Normals.
//   - TIndices hold raw offsets into TexCoords (stride 2).
//   - MIndices index the Materials table.
//
// Corner arrays are consumed row by row, NumVertexPerFace[i] entries per row.
type IndexedFaceSet struct {
	ID              int
	MeshSilhouettes bool

	Vertices  []float64 // x, y, z per vertex
	Normals   []float64 // x, y, z per normal
	TexCoords []float64 // u, v per texcoord

	VIndices []uint32
	NIndices []uint32
	TIndices []uint32
	MIndices []uint32

	NumVertexPerFace []uint32
	FaceStyles       []TriangleStyle
	FaceUserData     []int     // optional, one tag per row
	VertexUserData   []float32 // optional, one value per vertex

	Materials []Material
}

// VertexCount returns the number of positions.
func (s *IndexedFaceSet) VertexCount() int {
	return len(s.Vertices) / 3
}

// FaceCount returns the number of encoded rows.
func (s *IndexedFaceSet) FaceCount() int {
	return len(s.NumVertexPerFace)
}

// UserTag returns the user tag of row i, or 0 when none were supplied.
func (s *IndexedFaceSet) UserTag(i int) int {
	if i < len(s.FaceUserData) {
		return s.FaceUserData[i]
	}
	return 0
}

func (*Group) node()          {}
func (*Transform) node()      {}
func (*Shape) node()          {}
func (*IndexedFaceSet) node() {}
