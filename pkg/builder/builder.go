// Package builder walks a scene graph and turns every indexed face set into
// a finalized winged-edge mesh in world space.
package builder

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/wingedge/internal/logger"
	"github.com/Faultbox/wingedge/pkg/faceset"
	"github.com/Faultbox/wingedge/pkg/math"
	"github.com/Faultbox/wingedge/pkg/scene"
	"github.com/Faultbox/wingedge/pkg/winged"
)

// ShapeError reports a face set that produced no mesh. Sibling shapes are
// unaffected.
type ShapeError struct {
	ID  int
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape %d: %v", e.ID, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// Options configures mesh construction.
type Options struct {
	NonManifold winged.NonManifoldPolicy
}

// Stats counts what a build produced.
type Stats struct {
	Shapes        int // meshes registered
	FailedShapes  int
	Faces         int
	SkippedRows   int
	RejectedFaces int
	Anomalies     int
}

// Builder builds meshes into a WingedEdge collection.
type Builder struct {
	opts   Options
	shapes *winged.WingedEdge
	stats  Stats
}

// New creates a builder that registers meshes in shapes.
func New(shapes *winged.WingedEdge, opts Options) *Builder {
	return &Builder{opts: opts, shapes: shapes}
}

// Stats returns the counters accumulated since the builder was created.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Build walks the graph from root. Every shape that fails contributes a
// *ShapeError to the returned error; the others are still built.
func (b *Builder) Build(root scene.Node) error {
	return b.walk(Context{}, root)
}

func (b *Builder) walk(ctx Context, n scene.Node) error {
	switch n := n.(type) {
	case nil:
		return nil
	case *scene.Group:
		return b.walkChildren(ctx, n.Children)
	case *scene.Transform:
		return b.walkChildren(b.EnterTransform(ctx, n), n.Children)
	case *scene.Shape:
		return b.walkChildren(b.EnterShape(ctx, n), n.Children)
	case *scene.IndexedFaceSet:
		_, err := b.BuildShape(ctx, n)
		return err
	default:
		return fmt.Errorf("unsupported scene node %T", n)
	}
}

func (b *Builder) walkChildren(ctx Context, children []scene.Node) error {
	var errs error
	for _, child := range children {
		errs = multierr.Append(errs, b.walk(ctx, child))
	}
	return errs
}

// EnterTransform returns the context for the children of t.
func (b *Builder) EnterTransform(ctx Context, t *scene.Transform) Context {
	return ctx.WithTransform(t.Matrix)
}

// LeaveTransform undoes EnterTransform for hosts that drive enter and leave
// callbacks on a single context.
func (b *Builder) LeaveTransform(ctx Context) Context {
	return ctx.WithoutTransform()
}

// EnterShape returns the context for the children of s, with its material
// current.
func (b *Builder) EnterShape(ctx Context, s *scene.Shape) Context {
	return ctx.WithMaterial(s.Material)
}

// BuildShape builds one face set under ctx, finalizes the mesh and
// registers it. Rows and faces that cannot be used are logged and
// counted; only a face set that is unusable as a whole yields an error,
// always a *ShapeError.
func (b *Builder) BuildShape(ctx Context, set *scene.IndexedFaceSet) (*winged.Mesh, error) {
	mesh, err := b.buildShape(ctx, set)
	if err != nil {
		b.stats.FailedShapes++
		logger.Warn("shape skipped", zap.Int("shape", set.ID), zap.Error(err))
		return nil, &ShapeError{ID: set.ID, Err: err}
	}
	return mesh, nil
}

func (b *Builder) buildShape(ctx Context, set *scene.IndexedFaceSet) (*winged.Mesh, error) {
	if err := faceset.Validate(set); err != nil {
		return nil, err
	}

	positions, normals := set.Vertices, set.Normals
	if m, ok := ctx.Transforms.Current(); ok {
		positions = transformPositions(positions, m)
		normals = transformNormals(normals, m)
	}

	decoded, err := faceset.Decode(set, normals)
	if err != nil {
		return nil, err
	}

	mesh := winged.NewMesh(set.ID, b.opts.NonManifold)
	mesh.Silhouettes = set.MeshSilhouettes
	mesh.Materials = materialTable(ctx, set)

	// Vertex i takes the normal at its own offset when the normal array is
	// laid out per vertex.
	perVertexNormals := len(normals) >= len(positions)
	for i := 0; i < set.VertexCount(); i++ {
		var ndotv float32
		if i < len(set.VertexUserData) {
			ndotv = set.VertexUserData[i]
		}
		var normal math.Vec3
		if perVertexNormals {
			normal = math.Vec3FromSlice(normals, i*3)
		}
		mesh.AddVertex(math.Vec3FromSlice(positions, i*3), normal, ndotv)
	}

	for _, skipped := range decoded.Skipped {
		b.stats.SkippedRows++
		logger.Warn("face row skipped",
			zap.Int("shape", set.ID),
			zap.Int("row", skipped.Row),
			zap.Stringer("style", skipped.Style),
			zap.Error(skipped.Err),
		)
	}

	// Without a table of its own every face uses the inherited material,
	// whatever its material index says.
	ownMaterials := len(set.Materials) > 0
	for _, tri := range decoded.Triangles {
		material := tri.Material
		if !ownMaterials {
			material = 0
		}
		_, err := mesh.MakeFace(tri.Vertices, winged.FaceData{
			Normals:      tri.Normals,
			TexCoords:    tri.TexCoords,
			HasTexCoords: tri.HasTexCoords,
			Material:     material,
			UserTag:      tri.UserTag,
		})
		switch {
		case err == nil:
		case errors.Is(err, winged.ErrNonManifoldEdge), errors.Is(err, winged.ErrDegenerateFace):
			b.stats.RejectedFaces++
			logger.Debug("face rejected", zap.Int("shape", set.ID), zap.Int("row", tri.Row), zap.Error(err))
		default:
			return nil, err
		}
	}

	// Shorter normal arrays are indexed per corner only; such a vertex takes
	// the normal its first face gives it.
	if !perVertexNormals {
		for _, v := range mesh.Vertices {
			if len(v.Faces) > 0 {
				v.Normal, _ = v.Faces[0].VertexNormal(v)
			}
		}
	}

	mesh.Finalize()
	if err := b.shapes.Add(mesh); err != nil {
		return nil, err
	}

	if len(mesh.Anomalies) > 0 {
		logger.Warn("topology anomalies",
			zap.Int("shape", set.ID),
			zap.Int("count", len(mesh.Anomalies)),
			zap.Stringer("policy", b.opts.NonManifold),
		)
	}
	logger.Debug("shape built",
		zap.Int("shape", set.ID),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", len(mesh.Faces)),
		zap.Int("edges", len(mesh.Edges)),
		zap.Int("creases", mesh.CreaseVertexCount()),
	)

	b.stats.Shapes++
	b.stats.Faces += len(mesh.Faces)
	b.stats.Anomalies += len(mesh.Anomalies)
	return mesh, nil
}

// materialTable returns the face set's own materials, or the material
// current in ctx as a one-entry table.
func materialTable(ctx Context, set *scene.IndexedFaceSet) []scene.Material {
	if len(set.Materials) > 0 {
		return append([]scene.Material(nil), set.Materials...)
	}
	if ctx.Material != nil {
		return []scene.Material{*ctx.Material}
	}
	return []scene.Material{scene.DefaultMaterial()}
}
