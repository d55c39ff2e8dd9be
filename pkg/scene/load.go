package scene

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wingedge/internal/logger"
	"github.com/Faultbox/wingedge/pkg/math"
)

// Scene loading errors.
var (
	ErrUnknownNodeKind = errors.New("unknown scene node kind")
	ErrEmptyScene      = errors.New("scene has no root node")
)

// File is the on-disk layout of a scene description.
type File struct {
	Name string   `yaml:"name"`
	Root NodeSpec `yaml:"root"`
}

// NodeSpec is the YAML form of a scene node. Kind selects which fields apply.
type NodeSpec struct {
	Kind     string     `yaml:"kind"` // group, transform, shape, faceset
	Name     string     `yaml:"name,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty"`

	// transform
	Matrix    []float64   `yaml:"matrix,omitempty"` // 16 values, column-major
	Translate *[3]float64 `yaml:"translate,omitempty"`
	Axis      *[3]float64 `yaml:"axis,omitempty"`
	Angle     float64     `yaml:"angle,omitempty"`    // radians, around Axis
	Rotation  *[4]float64 `yaml:"rotation,omitempty"` // quaternion x, y, z, w
	Euler     *[3]float64 `yaml:"euler,omitempty"`    // radians about x, then y, then z
	Scale     *[3]float64 `yaml:"scale,omitempty"`

	// shape
	Material *Material `yaml:"material,omitempty"`

	// faceset
	FaceSet *FaceSetSpec `yaml:"faceset,omitempty"`
}

// FaceSetSpec is the YAML form of an IndexedFaceSet.
type FaceSetSpec struct {
	ID          int        `yaml:"id"`
	Silhouettes bool       `yaml:"silhouettes"`
	Vertices    []float64  `yaml:"vertices"`
	Normals     []float64  `yaml:"normals"`
	TexCoords   []float64  `yaml:"texcoords,omitempty"`
	VIndices    []uint32   `yaml:"vindices"`
	NIndices    []uint32   `yaml:"nindices"`
	TIndices    []uint32   `yaml:"tindices,omitempty"`
	MIndices    []uint32   `yaml:"mindices,omitempty"`
	Counts      []uint32   `yaml:"counts"`
	Styles      []string   `yaml:"styles"`
	UserData    []int      `yaml:"face_user_data,omitempty"`
	VertexData  []float32  `yaml:"vertex_user_data,omitempty"`
	Materials   []Material `yaml:"materials,omitempty"`
}

// LoadFile reads and converts a YAML scene file.
func LoadFile(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	node, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return node, nil
}

// Parse converts YAML scene data into a node tree.
func Parse(data []byte) (Node, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Root.Kind == "" {
		return nil, ErrEmptyScene
	}
	return f.Root.Build()
}

// Build converts the node description and its children into scene nodes.
func (s *NodeSpec) Build() (Node, error) {
	children := make([]Node, 0, len(s.Children))
	for i := range s.Children {
		child, err := s.Children[i].Build()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	switch s.Kind {
	case "group":
		return &Group{Name: s.Name, Children: children}, nil

	case "transform":
		m, err := s.matrix()
		if err != nil {
			return nil, fmt.Errorf("transform %q: %w", s.Name, err)
		}
		return &Transform{Name: s.Name, Matrix: m, Children: children}, nil

	case "shape":
		mat := DefaultMaterial()
		if s.Material != nil {
			mat = *s.Material
		}
		return &Shape{Name: s.Name, Material: mat, Children: children}, nil

	case "faceset":
		if s.FaceSet == nil {
			return nil, fmt.Errorf("faceset %q: missing faceset body", s.Name)
		}
		return s.FaceSet.Build(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeKind, s.Kind)
	}
}

// matrix returns the explicit matrix, or Translate * Rotate * Scale built
// from the component fields.
func (s *NodeSpec) matrix() (math.Mat4, error) {
	if len(s.Matrix) > 0 {
		return math.Mat4FromSlice(s.Matrix)
	}

	m := math.Identity()
	if s.Translate != nil {
		m = m.Mul(math.Translate(s.Translate[0], s.Translate[1], s.Translate[2]))
	}
	switch {
	case s.Rotation != nil:
		q := math.Quat{X: s.Rotation[0], Y: s.Rotation[1], Z: s.Rotation[2], W: s.Rotation[3]}
		m = m.Mul(q.ToMat4())
	case s.Axis != nil && s.Angle != 0:
		m = m.Mul(math.RotateAxis(math.Vec3{X: s.Axis[0], Y: s.Axis[1], Z: s.Axis[2]}, s.Angle))
	case s.Euler != nil:
		m = m.Mul(math.RotateZ(s.Euler[2])).Mul(math.RotateY(s.Euler[1])).Mul(math.RotateX(s.Euler[0]))
	}
	if s.Scale != nil {
		m = m.Mul(math.Scale(s.Scale[0], s.Scale[1], s.Scale[2]))
	}
	return m, nil
}

// Build converts the YAML face set into an IndexedFaceSet. An unrecognised
// style name only costs its own row: it becomes UnknownStyle and is logged.
func (s *FaceSetSpec) Build() *IndexedFaceSet {
	styles := make([]TriangleStyle, len(s.Styles))
	for i, name := range s.Styles {
		style, err := ParseTriangleStyle(name)
		if err != nil {
			logger.Warn("unknown triangle style",
				zap.Int("faceset", s.ID),
				zap.Int("row", i),
				zap.String("style", name),
			)
			style = UnknownStyle
		}
		styles[i] = style
	}

	return &IndexedFaceSet{
		ID:               s.ID,
		MeshSilhouettes:  s.Silhouettes,
		Vertices:         s.Vertices,
		Normals:          s.Normals,
		TexCoords:        s.TexCoords,
		VIndices:         s.VIndices,
		NIndices:         s.NIndices,
		TIndices:         s.TIndices,
		MIndices:         s.MIndices,
		NumVertexPerFace: s.Counts,
		FaceStyles:       styles,
		FaceUserData:     s.UserData,
		VertexUserData:   s.VertexData,
		Materials:        s.Materials,
	}
}
