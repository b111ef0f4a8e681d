package tree

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/eztree/pkg/math"
	"github.com/Faultbox/eztree/pkg/rng"
)

// twoSections is a parent segment 4 units long that turns bendDeg about Z
// and halves its radius.
func twoSections(bendDeg float64) []section {
	return []section{
		{origin: math.Vec3{}, orientation: math.QuatIdentity(), radius: 1},
		{origin: math.Vec3{Y: 4}, orientation: math.QuatFromAxisAngle(math.Front, math.Radians(bendDeg)), radius: 0.5},
	}
}

func TestPlacementOrientation(t *testing.T) {
	const (
		bend    = 60.0
		tiltDeg = 30.0
		count   = 3
	)

	s := &growth{rng: rng.New(11)}
	var got []placement
	for p := range s.placements(twoSections(bend), count, 0, tiltDeg) {
		got = append(got, p)
	}
	if len(got) != count {
		t.Fatalf("expected %d placements, got %d", count, len(got))
	}

	ref := rng.New(11)
	phase := ref.Next(0, 1)
	tilt := math.Radians(tiltDeg)
	sin, cos := gomath.Sin, gomath.Cos

	for k, p := range got {
		tk := ref.Next(0, 1)
		if p.t != tk {
			t.Fatalf("placement %d t = %v, want %v", k, p.t, tk)
		}

		// With one interval the blend weight is t. The parent turns from
		// the second section's angle back towards the first's.
		beta := math.Radians(bend * (1 - tk))
		phi := 2 * gomath.Pi * (phase + float64(k)/count)

		// Tilt about X, then spin about Y, then the parent's turn about Z
		up := math.Vec3{X: sin(tilt) * sin(phi), Y: cos(tilt), Z: sin(tilt) * cos(phi)}
		wantUp := math.Vec3{X: up.X*cos(beta) - up.Y*sin(beta), Y: up.X*sin(beta) + up.Y*cos(beta), Z: up.Z}
		wantRight := math.Vec3{X: cos(phi) * cos(beta), Y: cos(phi) * sin(beta), Z: -sin(phi)}

		if gotUp := p.orientation.Rotate(math.Up); gotUp.Distance(wantUp) > 1e-9 {
			t.Errorf("placement %d up = %v, want %v", k, gotUp, wantUp)
		}
		if gotRight := p.orientation.Rotate(math.Right); gotRight.Distance(wantRight) > 1e-9 {
			t.Errorf("placement %d right = %v, want %v", k, gotRight, wantRight)
		}
		if want := (math.Vec3{Y: 4 * tk}); p.origin.Distance(want) > 1e-12 {
			t.Errorf("placement %d origin = %v, want %v", k, p.origin, want)
		}
		if want := 1 - 0.5*tk; gomath.Abs(p.radius-want) > 1e-12 {
			t.Errorf("placement %d radius = %v, want %v", k, p.radius, want)
		}
	}
}

func TestPlacementComposition(t *testing.T) {
	sections := twoSections(45)
	s := &growth{rng: rng.New(3)}

	ref := rng.New(3)
	phase := ref.Next(0, 1)
	tk := ref.Next(0.2, 1)

	for p := range s.placements(sections, 1, 0.2, 50) {
		parent := sections[1].orientation.Slerp(sections[0].orientation, tk)
		spin := math.QuatFromAxisAngle(math.Up, 2*gomath.Pi*phase)
		tilt := math.QuatFromAxisAngle(math.Right, math.Radians(50))
		want := parent.Mul(spin).Mul(tilt)

		for _, v := range []math.Vec3{math.Up, math.Right, math.Front} {
			if got, w := p.orientation.Rotate(v), want.Rotate(v); got.Distance(w) > 1e-12 {
				t.Errorf("rotated %v = %v, want %v", v, got, w)
			}
		}
	}
}

func TestPlacementDrawsPhaseOnce(t *testing.T) {
	s := &growth{rng: rng.New(9)}
	for range s.placements(twoSections(0), 4, 0, 0) {
	}

	// One phase plus one position per item
	ref := rng.New(9)
	for i := 0; i < 1+4; i++ {
		ref.Next(0, 1)
	}
	if got, want := s.rng.Next(0, 1), ref.Next(0, 1); got != want {
		t.Errorf("next draw = %v, want %v: placement consumed a different number of draws", got, want)
	}
}

func TestPlacementStopsEarly(t *testing.T) {
	s := &growth{rng: rng.New(9)}
	n := 0
	for range s.placements(twoSections(0), 4, 0, 0) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2 placements, got %d", n)
	}
}
