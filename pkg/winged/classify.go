package winged

import "github.com/Faultbox/wingedge/pkg/math"

// ClassifySmoothness marks interior vertices whose incident faces assign
// them more than one distinct corner normal as creases. Normals compare by
// exact component equality. Boundary vertices keep the smooth default.
func (m *Mesh) ClassifySmoothness() {
	normals := make(map[math.Vec3]struct{})
	for _, v := range m.Vertices {
		if v.IsBoundary() {
			continue
		}

		clear(normals)
		for _, f := range v.Faces {
			n, ok := f.VertexNormal(v)
			if !ok {
				continue
			}
			normals[n] = struct{}{}
			if len(normals) > 1 {
				break
			}
		}
		v.Smooth = len(normals) <= 1
	}
}
