package winged

import "errors"

// ErrNotFinalized is returned when a mesh under construction is registered.
var ErrNotFinalized = errors.New("mesh has not been finalized")

// Finalize classifies vertex smoothness and computes the bounding box and
// mean edge length. It runs once, after the last face is inserted.
func (m *Mesh) Finalize() {
	m.ClassifySmoothness()
	m.ComputeBounds()
	m.ComputeMeanEdgeLength()
	m.finalized = true
}

// ComputeBounds sets Bounds to the component-wise min/max over all vertex
// positions. An empty mesh gets a zero box.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}

	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	m.Bounds = b
}

// ComputeMeanEdgeLength sets MeanEdgeLength to the mean length over all
// undirected vertex pairs joined by an edge. Each pair counts once, even
// when an orientation conflict gave it two Edge records.
func (m *Mesh) ComputeMeanEdgeLength() {
	type vertexPair struct{ a, b int }

	seen := make(map[vertexPair]struct{}, len(m.Edges))
	var sum float64
	for _, e := range m.Edges {
		from, to := e.Vertices()
		key := vertexPair{from.ID, to.ID}
		if key.a > key.b {
			key.a, key.b = key.b, key.a
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sum += e.Length()
	}

	if len(seen) == 0 {
		m.MeanEdgeLength = 0
		return
	}
	m.MeanEdgeLength = sum / float64(len(seen))
}
