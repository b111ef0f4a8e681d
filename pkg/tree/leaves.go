package tree

import (
	gomath "math"

	"github.com/Faultbox/eztree/pkg/math"
)

// leafUVs are the texture coordinates of a leaf quad's corners, top-left
// first, matching leafCorners.
var leafUVs = [4]math.Vec2{
	{X: 0, Y: 1},
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
}

// leafCorners returns a size×size quad standing on its bottom edge, centered
// on the growth axis.
func leafCorners(size float64) [4]math.Vec3 {
	half := size / 2
	return [4]math.Vec3{
		{X: -half, Y: size, Z: 0},
		{X: -half, Y: 0, Z: 0},
		{X: half, Y: 0, Z: 0},
		{X: half, Y: size, Z: 0},
	}
}

// addLeaves places the configured leaf cluster along sections.
func (s *growth) addLeaves(sections []section) {
	opts := &s.opts.Leaves
	for p := range s.placements(sections, opts.Count, opts.Start, opts.Angle) {
		s.addLeaf(p.origin, p.orientation)
	}
}

// addLeaf emits one leaf at origin, drawing its size variation.
func (s *growth) addLeaf(origin math.Vec3, orientation math.Quat) {
	opts := &s.opts.Leaves
	size := opts.Size * (1 + s.rng.Next(-opts.SizeVariance, opts.SizeVariance))

	s.tree.Stats.Leaves++
	s.addLeafQuad(origin, orientation, size, 0)
	if opts.Billboard == Double {
		s.addLeafQuad(origin, orientation, size, gomath.Pi/2)
	}
}

func (s *growth) addLeafQuad(origin math.Vec3, orientation math.Quat, size, spin float64) {
	mesh := &s.tree.Leaves
	q := orientation.Mul(math.QuatFromAxisAngle(math.Up, spin))
	normal := q.Rotate(math.Front)

	corners := leafCorners(size)
	base := uint32(mesh.VertexCount())
	for i, c := range corners {
		mesh.addVertex(q.Rotate(c).Add(origin), normal, leafUVs[i])
	}
	mesh.addFace(base, base+1, base+2, base+3)
}
