package tree

import (
	"iter"
	gomath "math"

	"github.com/Faultbox/eztree/pkg/math"
)

// placement is a spawn point interpolated along a parent branch.
type placement struct {
	// t is the normalized position along the parent, in [start, 1).
	t           float64
	origin      math.Vec3
	orientation math.Quat
	radius      float64
}

// placements yields count spawn points spread around and along sections.
//
// One random phase is drawn for the whole batch so the items are evenly
// spaced around the parent; each item then draws its position t. Consumers
// may draw further random values per item: the sequence is lazy, so their
// draws interleave with the t draws in item order.
//
// Each orientation tilts by tiltDeg about the lateral axis, spins about the
// growth axis, and is finally aligned with the parent.
func (s *growth) placements(sections []section, count int, start, tiltDeg float64) iter.Seq[placement] {
	return func(yield func(placement) bool) {
		phase := s.rng.Next(0, 1)
		tilt := math.QuatFromAxisAngle(math.Right, math.Radians(tiltDeg))

		for k := 0; k < count; k++ {
			t := s.rng.Next(start, 1)
			p := interpolate(sections, t)

			spinAngle := 2 * gomath.Pi * (phase + float64(k)/float64(count))
			spin := math.QuatFromAxisAngle(math.Up, spinAngle)
			p.orientation = p.orientation.Mul(spin).Mul(tilt)

			if !yield(p) {
				return
			}
		}
	}
}

// interpolate samples sections at normalized position t. Origin and radius
// blend linearly between the bracketing sections, orientation spherically.
func interpolate(sections []section, t float64) placement {
	last := len(sections) - 1
	if last < 1 {
		only := sections[0]
		return placement{t: t, origin: only.origin, orientation: only.orientation, radius: only.radius}
	}

	idx := int(gomath.Floor(t * float64(last)))
	idx = min(max(idx, 0), last-1)

	a := sections[idx]
	b := sections[idx+1]

	spacing := 1 / float64(last)
	alpha := (t - float64(idx)/float64(last)) / spacing
	alpha = math.Clamp(alpha, 0, 1)

	return placement{
		t:      t,
		origin: a.origin.Lerp(b.origin, alpha),
		// Blends from b towards a. Swapping the arguments changes the output.
		orientation: b.orientation.Slerp(a.orientation, alpha),
		radius:      (1-alpha)*a.radius + alpha*b.radius,
	}
}

// addChildren queues count child branches of the given level along sections.
func (s *growth) addChildren(count, level int, sections []section) {
	opts := &s.opts.Branch
	for p := range s.placements(sections, count, opts.Start.At(level), opts.Angle.At(level)) {
		length := opts.Length.At(level)
		if s.opts.Type == Evergreen {
			length *= 1 - p.t
		}

		s.queue = append(s.queue, branch{
			origin:       p.origin,
			orientation:  p.orientation,
			length:       length,
			radius:       opts.Radius.At(level) * p.radius,
			level:        level,
			sectionCount: s.sectionCount(level),
			segmentCount: s.segmentCount(level),
		})
	}
}
