package preview

import (
	"github.com/Faultbox/eztree/pkg/math"
	"github.com/Faultbox/eztree/pkg/tree"
)

// boxEdges returns the 12 edges of b as endpoint pairs: bottom face, top
// face, then the vertical edges.
func boxEdges(b tree.Bounds) [12][2]math.Vec3 {
	lo, hi := b.Min, b.Max
	corner := func(x, y, z float64) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	return [12][2]math.Vec3{
		// Bottom face
		{corner(lo.X, lo.Y, lo.Z), corner(hi.X, lo.Y, lo.Z)},
		{corner(hi.X, lo.Y, lo.Z), corner(hi.X, lo.Y, hi.Z)},
		{corner(hi.X, lo.Y, hi.Z), corner(lo.X, lo.Y, hi.Z)},
		{corner(lo.X, lo.Y, hi.Z), corner(lo.X, lo.Y, lo.Z)},
		// Top face
		{corner(lo.X, hi.Y, lo.Z), corner(hi.X, hi.Y, lo.Z)},
		{corner(hi.X, hi.Y, lo.Z), corner(hi.X, hi.Y, hi.Z)},
		{corner(hi.X, hi.Y, hi.Z), corner(lo.X, hi.Y, hi.Z)},
		{corner(lo.X, hi.Y, hi.Z), corner(lo.X, hi.Y, lo.Z)},
		// Vertical edges
		{corner(lo.X, lo.Y, lo.Z), corner(lo.X, hi.Y, lo.Z)},
		{corner(hi.X, lo.Y, lo.Z), corner(hi.X, hi.Y, lo.Z)},
		{corner(hi.X, lo.Y, hi.Z), corner(hi.X, hi.Y, hi.Z)},
		{corner(lo.X, lo.Y, hi.Z), corner(lo.X, hi.Y, hi.Z)},
	}
}
