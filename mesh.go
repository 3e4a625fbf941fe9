package roadnet

import "github.com/paulmach/orb"

// RibbonMesh is the renderable triangle strip between a chunk's boundary lines.
// Vertices interleave left/right boundary points, indices reference them in triples
type RibbonMesh struct {
	Vertices []Point3
	Indices  []int
}

// QuadMesh is a single renderable quad, used for end caps
type QuadMesh struct {
	Corners [4]Point3
}

// Footprint is the collidable ground-plane outline of a chunk or cap
type Footprint struct {
	Outline orb.Ring
}

// buildRibbonMesh triangulates the area between two boundary polylines of equal length
func buildRibbonMesh(left, right []Point3) RibbonMesh {
	mesh := RibbonMesh{}
	if len(left) < 2 || len(left) != len(right) {
		return mesh
	}
	mesh.Vertices = make([]Point3, 0, len(left)*2)
	for i := range left {
		mesh.Vertices = append(mesh.Vertices, left[i], right[i])
	}
	for i := 0; i < len(left)-1; i++ {
		l0 := i * 2
		r0 := i*2 + 1
		l1 := (i + 1) * 2
		r1 := (i+1)*2 + 1
		mesh.Indices = append(mesh.Indices, l0, r0, l1, r0, r1, l1)
	}
	return mesh
}

// buildFootprint projects the closed left+reversed-right outline onto the ground plane
func buildFootprint(left, right []Point3) Footprint {
	if len(left) == 0 || len(right) == 0 {
		return Footprint{}
	}
	outline := make(orb.Ring, 0, len(left)+len(right)+1)
	for i := range left {
		outline = append(outline, left[i].Planar())
	}
	for i := len(right) - 1; i >= 0; i-- {
		outline = append(outline, right[i].Planar())
	}
	outline = append(outline, left[0].Planar())
	return Footprint{Outline: outline}
}

// containsPlanar reports whether the footprint contains the ground-plane projection of pt.
// Even-odd rule
func (f Footprint) containsPlanar(pt Point3) bool {
	ring := f.Outline
	if len(ring) < 4 {
		return false
	}
	p := pt.Planar()
	inside := false
	for i := 1; i < len(ring); i++ {
		a := ring[i-1]
		b := ring[i]
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := a[0] + (p[1]-a[1])/(b[1]-a[1])*(b[0]-a[0])
			if p[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}
