package preview

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/eztree/pkg/math"
	"github.com/Faultbox/eztree/pkg/tree"
)

func TestBoxEdges(t *testing.T) {
	b := tree.Bounds{Min: math.Vec3{X: -1, Y: 0, Z: -2}, Max: math.Vec3{X: 1, Y: 5, Z: 2}}
	edges := boxEdges(b)

	// Four edges along each axis
	lengths := map[float64]int{}
	for _, e := range edges {
		lengths[gomath.Round(e[0].Distance(e[1])*1000)/1000]++
	}
	want := map[float64]int{2: 4, 5: 4, 4: 4}
	for l, n := range want {
		if lengths[l] != n {
			t.Errorf("expected %d edges of length %v, got %d (all: %v)", n, l, lengths[l], lengths)
		}
	}
}
