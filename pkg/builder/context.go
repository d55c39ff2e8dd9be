package builder

import (
	"github.com/Faultbox/wingedge/pkg/math"
	"github.com/Faultbox/wingedge/pkg/scene"
)

// Context is the traversal state inherited from ancestor nodes. It is
// passed by value down the recursion; siblings never see each other's
// changes.
type Context struct {
	Transforms TransformStack
	Material   *scene.Material
}

// WithTransform returns a child context with m pushed.
func (c Context) WithTransform(m math.Mat4) Context {
	c.Transforms = c.Transforms.Push(m)
	return c
}

// WithoutTransform returns the context with the innermost transform popped.
func (c Context) WithoutTransform() Context {
	c.Transforms = c.Transforms.Pop()
	return c
}

// WithMaterial returns a child context whose current material is mat.
func (c Context) WithMaterial(mat scene.Material) Context {
	c.Material = &mat
	return c
}
