package tree

import (
	"errors"
	"fmt"

	"github.com/Faultbox/eztree/pkg/math"
)

// Mesh validation errors.
var (
	ErrBufferMismatch = errors.New("mesh buffers differ in length")
	ErrIndexRange     = errors.New("face index out of range")
)

// Mesh is an indexed quad mesh. Vertices, Normals and UVs are parallel
// buffers; each face lists four vertex indices in winding order.
type Mesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2
	Faces    [][4]uint32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Union returns the smallest box containing b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

func (m *Mesh) addVertex(pos, normal math.Vec3, uv math.Vec2) uint32 {
	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, pos)
	m.Normals = append(m.Normals, normal)
	m.UVs = append(m.UVs, uv)
	return idx
}

func (m *Mesh) addFace(a, b, c, d uint32) {
	m.Faces = append(m.Faces, [4]uint32{a, b, c, d})
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of quads.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Vertices) == 0
}

// Bounds returns the bounding box of all vertices. An empty mesh has a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// Triangles splits every quad (a, b, c, d) into (a, b, c) and (a, c, d).
func (m *Mesh) Triangles() []uint32 {
	indices := make([]uint32, 0, len(m.Faces)*6)
	for _, f := range m.Faces {
		indices = append(indices,
			f[0], f[1], f[2],
			f[0], f[2], f[3],
		)
	}
	return indices
}

// InterleavedStride is the number of floats per vertex in Interleaved.
const InterleavedStride = 8

// Interleaved packs position, normal and UV per vertex as float32, ready for
// GPU upload.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*InterleavedStride)
	for i, v := range m.Vertices {
		p := v.Array()
		n := m.Normals[i].Array()
		uv := m.UVs[i].Array()
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// Validate checks the buffer invariants: parallel buffers have equal length
// and every face index refers to an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != n || len(m.UVs) != n {
		return fmt.Errorf("%w: %d vertices, %d normals, %d uvs", ErrBufferMismatch, n, len(m.Normals), len(m.UVs))
	}
	for i, f := range m.Faces {
		for _, idx := range f {
			if int(idx) >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrIndexRange, i, idx, n)
			}
		}
	}
	return nil
}
