package tree

import (
	"github.com/Faultbox/eztree/pkg/math"
)

// tipRadius caps the last section of the deepest level so the branch closes
// to a point without producing a degenerate zero-radius ring.
const tipRadius = 0.001

// branch is a queued unit of growth.
type branch struct {
	origin       math.Vec3
	orientation  math.Quat
	length       float64
	radius       float64
	level        int
	sectionCount int
	segmentCount int
}

// section is a snapshot of one ring along a branch. Children and leaves are
// placed by interpolating between consecutive sections.
type section struct {
	origin      math.Vec3
	orientation math.Quat
	radius      float64
}
