// Package faceset expands the rows of an indexed face set into oriented
// triangles.
package faceset

import (
	"errors"
	"fmt"

	"github.com/Faultbox/wingedge/pkg/math"
	"github.com/Faultbox/wingedge/pkg/scene"
)

// Decoding errors. ErrMalformed and ErrIndexOutOfRange abort the whole
// face set; the others skip a single row.
var (
	ErrMalformed          = errors.New("malformed face set")
	ErrIndexOutOfRange    = errors.New("corner index out of range")
	ErrUnknownStyle       = errors.New("unknown triangle style")
	ErrFanUnsupported     = errors.New("triangle fan rows are not supported")
	ErrIncompleteTriangle = errors.New("triangles row length is not a multiple of 3")
)

// Triangle is one decoded, consistently wound triangle.
type Triangle struct {
	Vertices     [3]int // vertex ids (position offset / 3)
	Normals      [3]math.Vec3
	TexCoords    [3]math.Vec2
	HasTexCoords bool
	Material     int
	UserTag      int
	Row          int // source row in the face set
}

// FaceError describes a row that was skipped.
type FaceError struct {
	Row   int
	Style scene.TriangleStyle
	Err   error
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Style, e.Err)
}

func (e *FaceError) Unwrap() error {
	return e.Err
}

// Result holds the triangles of every decodable row and the rows skipped.
type Result struct {
	Triangles []Triangle
	Skipped   []*FaceError
}

// Validate checks array lengths against the per-row counts.
func Validate(set *scene.IndexedFaceSet) error {
	if len(set.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d position values is not a multiple of 3", ErrMalformed, len(set.Vertices))
	}
	if len(set.Normals)%3 != 0 {
		return fmt.Errorf("%w: %d normal values is not a multiple of 3", ErrMalformed, len(set.Normals))
	}
	if len(set.TexCoords)%2 != 0 {
		return fmt.Errorf("%w: %d texcoord values is not a multiple of 2", ErrMalformed, len(set.TexCoords))
	}
	if len(set.FaceStyles) != len(set.NumVertexPerFace) {
		return fmt.Errorf("%w: %d styles for %d rows", ErrMalformed, len(set.FaceStyles), len(set.NumVertexPerFace))
	}

	corners := 0
	for _, n := range set.NumVertexPerFace {
		corners += int(n)
	}
	if len(set.VIndices) < corners {
		return fmt.Errorf("%w: %d vertex indices for %d corners", ErrMalformed, len(set.VIndices), corners)
	}
	if len(set.NIndices) < corners {
		return fmt.Errorf("%w: %d normal indices for %d corners", ErrMalformed, len(set.NIndices), corners)
	}
	if hasTexCoords(set) && len(set.TIndices) < corners {
		return fmt.Errorf("%w: %d texcoord indices for %d corners", ErrMalformed, len(set.TIndices), corners)
	}
	if len(set.MIndices) > 0 && len(set.MIndices) < corners {
		return fmt.Errorf("%w: %d material indices for %d corners", ErrMalformed, len(set.MIndices), corners)
	}
	if len(set.VertexUserData) > 0 && len(set.VertexUserData) < set.VertexCount() {
		return fmt.Errorf("%w: %d vertex user values for %d vertices", ErrMalformed, len(set.VertexUserData), set.VertexCount())
	}
	return nil
}

func hasTexCoords(set *scene.IndexedFaceSet) bool {
	return len(set.TexCoords) > 0 && len(set.TIndices) > 0
}

// Decode expands every row of set. normals replaces set.Normals when
// non-nil (the caller passes world-space normals); it must have the same
// layout. A returned error means the face set is unusable as a whole.
func Decode(set *scene.IndexedFaceSet, normals []float64) (*Result, error) {
	if err := Validate(set); err != nil {
		return nil, err
	}
	if normals == nil {
		normals = set.Normals
	}

	d := &decoder{
		set:     set,
		normals: normals,
		hasTex:  hasTexCoords(set),
	}

	res := &Result{}
	start := 0
	for row, count := range set.NumVertexPerFace {
		n := int(count)
		style := set.FaceStyles[row]

		var err error
		switch style {
		case scene.TriangleStrip:
			err = d.strip(res, row, start, n)
		case scene.Triangles:
			err = d.triangles(res, row, start, n)
		case scene.TriangleFan:
			res.Skipped = append(res.Skipped, &FaceError{Row: row, Style: style, Err: ErrFanUnsupported})
		default:
			res.Skipped = append(res.Skipped, &FaceError{Row: row, Style: style, Err: ErrUnknownStyle})
		}
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", row, style, err)
		}

		start += n
	}

	return res, nil
}

type decoder struct {
	set     *scene.IndexedFaceSet
	normals []float64
	hasTex  bool
}

// strip emits n-2 triangles; odd triangles swap their last two corners so
// the whole strip keeps one winding.
func (d *decoder) strip(res *Result, row, start, n int) error {
	for k := 0; k+2 < n; k++ {
		order := [3]int{k, k + 1, k + 2}
		if k%2 == 1 {
			order = [3]int{k, k + 2, k + 1}
		}

		tri, err := d.triangle(row, start, order)
		if err != nil {
			return err
		}
		if tri.Material, err = d.material(start + k); err != nil {
			return err
		}
		res.Triangles = append(res.Triangles, tri)
	}
	return nil
}

// triangles emits consecutive triples; the row's first material applies to
// all of them.
func (d *decoder) triangles(res *Result, row, start, n int) error {
	if n%3 != 0 {
		res.Skipped = append(res.Skipped, &FaceError{Row: row, Style: scene.Triangles, Err: ErrIncompleteTriangle})
		return nil
	}
	if n == 0 {
		return nil
	}

	material, err := d.material(start)
	if err != nil {
		return err
	}
	for k := 0; k < n; k += 3 {
		tri, err := d.triangle(row, start, [3]int{k, k + 1, k + 2})
		if err != nil {
			return err
		}
		tri.Material = material
		res.Triangles = append(res.Triangles, tri)
	}
	return nil
}

// triangle resolves three corners given relative to the row start.
func (d *decoder) triangle(row, start int, order [3]int) (Triangle, error) {
	tri := Triangle{
		HasTexCoords: d.hasTex,
		UserTag:      d.set.UserTag(row),
		Row:          row,
	}
	for i, k := range order {
		c := start + k

		vi := int(d.set.VIndices[c])
		if vi%3 != 0 {
			return tri, fmt.Errorf("%w: vertex offset %d is not a multiple of 3", ErrMalformed, vi)
		}
		if vi/3 >= d.set.VertexCount() {
			return tri, fmt.Errorf("%w: vertex offset %d, %d positions", ErrIndexOutOfRange, vi, len(d.set.Vertices))
		}
		tri.Vertices[i] = vi / 3

		ni := int(d.set.NIndices[c])
		if ni+2 >= len(d.normals) {
			return tri, fmt.Errorf("%w: normal offset %d, %d normal values", ErrIndexOutOfRange, ni, len(d.normals))
		}
		tri.Normals[i] = math.Vec3FromSlice(d.normals, ni)

		if d.hasTex {
			ti := int(d.set.TIndices[c])
			if ti+1 >= len(d.set.TexCoords) {
				return tri, fmt.Errorf("%w: texcoord offset %d, %d texcoord values", ErrIndexOutOfRange, ti, len(d.set.TexCoords))
			}
			tri.TexCoords[i] = math.Vec2FromSlice(d.set.TexCoords, ti)
		}
	}
	return tri, nil
}

// material returns the material index stored at corner c, or 0 when the
// face set carries no material indices.
func (d *decoder) material(c int) (int, error) {
	if len(d.set.MIndices) == 0 {
		return 0, nil
	}
	mi := int(d.set.MIndices[c])
	if len(d.set.Materials) > 0 && mi >= len(d.set.Materials) {
		return 0, fmt.Errorf("%w: material %d, %d materials", ErrIndexOutOfRange, mi, len(d.set.Materials))
	}
	return mi, nil
}
