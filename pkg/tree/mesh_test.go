package tree

import (
	"errors"
	"testing"

	"github.com/Faultbox/eztree/pkg/math"
)

func unitQuad() Mesh {
	var m Mesh
	m.addVertex(math.Vec3{X: 0, Y: 0, Z: 0}, math.Front, math.Vec2{X: 0, Y: 0})
	m.addVertex(math.Vec3{X: 1, Y: 0, Z: 0}, math.Front, math.Vec2{X: 1, Y: 0})
	m.addVertex(math.Vec3{X: 1, Y: 2, Z: 0}, math.Front, math.Vec2{X: 1, Y: 1})
	m.addVertex(math.Vec3{X: 0, Y: 2, Z: -1}, math.Front, math.Vec2{X: 0, Y: 1})
	m.addFace(0, 1, 2, 3)
	return m
}

func TestMeshTriangles(t *testing.T) {
	m := unitQuad()
	got := m.Triangles()
	want := []uint32{0, 1, 2, 0, 2, 3}

	if len(got) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMeshInterleaved(t *testing.T) {
	m := unitQuad()
	data := m.Interleaved()

	if len(data) != 4*InterleavedStride {
		t.Fatalf("expected %d floats, got %d", 4*InterleavedStride, len(data))
	}
	// Third vertex: position (1,2,0), normal front, uv (1,1)
	v := data[2*InterleavedStride : 3*InterleavedStride]
	want := []float32{1, 2, 0, 0, 0, 1, 1, 1}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("float %d: got %v, want %v", i, v[i], want[i])
		}
	}
}

func TestMeshBounds(t *testing.T) {
	m := unitQuad()
	b := m.Bounds()

	if b.Min != (math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("min = %v", b.Min)
	}
	if b.Max != (math.Vec3{X: 1, Y: 2, Z: 0}) {
		t.Errorf("max = %v", b.Max)
	}
	if b.Center() != (math.Vec3{X: 0.5, Y: 1, Z: -0.5}) {
		t.Errorf("center = %v", b.Center())
	}

	var empty Mesh
	if empty.Bounds() != (Bounds{}) {
		t.Errorf("empty mesh bounds = %v", empty.Bounds())
	}
}

func TestMeshValidate(t *testing.T) {
	m := unitQuad()
	if err := m.Validate(); err != nil {
		t.Fatalf("valid mesh rejected: %v", err)
	}

	bad := unitQuad()
	bad.addFace(0, 1, 2, 9)
	if err := bad.Validate(); !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}

	short := unitQuad()
	short.UVs = short.UVs[:3]
	if err := short.Validate(); !errors.Is(err, ErrBufferMismatch) {
		t.Errorf("expected ErrBufferMismatch, got %v", err)
	}
}
