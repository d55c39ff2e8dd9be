package winged

import "fmt"

// WingedEdge is the collection of finished meshes owned by the host pipeline.
type WingedEdge struct {
	shapes []*Mesh
}

// Add registers a finalized mesh.
func (w *WingedEdge) Add(m *Mesh) error {
	if !m.Finalized() {
		return fmt.Errorf("mesh %d: %w", m.ID, ErrNotFinalized)
	}
	w.shapes = append(w.shapes, m)
	return nil
}

// Shapes returns the registered meshes in insertion order.
func (w *WingedEdge) Shapes() []*Mesh {
	return w.shapes
}

// Len returns the number of registered meshes.
func (w *WingedEdge) Len() int {
	return len(w.shapes)
}

// Totals sums vertex, face and edge counts over all meshes.
func (w *WingedEdge) Totals() (vertices, faces, edges int) {
	for _, m := range w.shapes {
		vertices += len(m.Vertices)
		faces += len(m.Faces)
		edges += len(m.Edges)
	}
	return vertices, faces, edges
}
