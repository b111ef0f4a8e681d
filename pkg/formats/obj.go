// Package formats reads and writes the mesh interchange formats treegen
// exports: Wavefront OBJ geometry and its MTL material library.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/eztree/pkg/encoding"
	"github.com/Faultbox/eztree/pkg/math"
	"github.com/Faultbox/eztree/pkg/tree"
)

// OBJ format errors.
var (
	ErrMalformedOBJ = errors.New("malformed OBJ data")
	ErrOBJIndex     = errors.New("OBJ index out of range")
)

// Material names shared by the OBJ and MTL writers.
const (
	BarkMaterial = "bark"
	LeafMaterial = "leaves"
)

// DefaultObjectName prefixes object names when OBJOptions.Name is empty.
const DefaultObjectName = "tree"

// OBJOptions controls OBJ output.
type OBJOptions struct {
	// Name prefixes the object names: <name>_branches and <name>_leaves.
	Name string
	// MaterialLib is written as the mtllib statement when set.
	MaterialLib string
}

// WriteOBJ writes the branch and leaf meshes of t as two OBJ objects. Empty
// meshes are skipped. Bark texture coordinates are scaled by the bark
// texture scale.
func WriteOBJ(w io.Writer, t *tree.Tree, opts OBJOptions) error {
	name := encoding.Identifier(opts.Name)
	if name == "" {
		name = DefaultObjectName
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# eztree %s seed %d\n", t.Options.Type, t.Options.Seed)
	if opts.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", opts.MaterialLib)
	}

	bark := t.Options.Bark
	scale := math.Vec2{X: bark.TextureScale.X, Y: bark.TextureScale.Y}
	smooth := !bark.FlatShading

	var base uint32
	if !t.Branches.Empty() {
		writeObject(bw, name+"_branches", BarkMaterial, &t.Branches, base, scale, smooth)
		base += uint32(t.Branches.VertexCount())
	}
	if !t.Leaves.Empty() {
		writeObject(bw, name+"_leaves", LeafMaterial, &t.Leaves, base, math.Vec2{X: 1, Y: 1}, false)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}

// writeObject emits one object. Positions, UVs and normals are parallel, so
// every face corner uses the same index for all three.
func writeObject(w *bufio.Writer, name, material string, m *tree.Mesh, base uint32, uvScale math.Vec2, smooth bool) {
	fmt.Fprintf(w, "o %s\n", name)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	for _, uv := range m.UVs {
		uv = uv.Mul(uvScale)
		fmt.Fprintf(w, "vt %s %s\n", formatFloat(uv.X), formatFloat(uv.Y))
	}
	for _, n := range m.Normals {
		fmt.Fprintf(w, "vn %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
	}

	fmt.Fprintf(w, "usemtl %s\n", material)
	if smooth {
		w.WriteString("s 1\n")
	} else {
		w.WriteString("s off\n")
	}
	for _, f := range m.Faces {
		w.WriteString("f")
		for _, idx := range f {
			i := base + idx + 1
			fmt.Fprintf(w, " %d/%d/%d", i, i, i)
		}
		w.WriteByte('\n')
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteOBJFile writes t to path.
func WriteOBJFile(path string, t *tree.Tree, opts OBJOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(f, t, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OBJCorner references one face corner. Indices are 0-based into the file's
// global buffers; -1 marks an absent UV or normal.
type OBJCorner struct {
	V, VT, VN int
}

// OBJObject is one "o" block.
type OBJObject struct {
	Name     string
	Material string
	Vertices int // vertex statements inside the block
	Faces    [][]OBJCorner
}

// OBJ is a parsed Wavefront OBJ file.
type OBJ struct {
	MaterialLib string
	Vertices    []math.Vec3
	UVs         []math.Vec2
	Normals     []math.Vec3
	Objects     []OBJObject
}

// ParseOBJ parses OBJ data from a byte slice. Statements other than o, v,
// vt, vn, f, usemtl and mtllib are ignored. Faces before any "o" statement
// go into an unnamed object.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	var current *OBJObject
	object := func() *OBJObject {
		if current == nil {
			obj.Objects = append(obj.Objects, OBJObject{})
			current = &obj.Objects[len(obj.Objects)-1]
		}
		return current
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "mtllib":
			obj.MaterialLib = strings.Join(fields[1:], " ")
		case "o":
			obj.Objects = append(obj.Objects, OBJObject{Name: strings.Join(fields[1:], " ")})
			current = &obj.Objects[len(obj.Objects)-1]
		case "usemtl":
			object().Material = strings.Join(fields[1:], " ")
		case "v":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			obj.Vertices = append(obj.Vertices, v)
			object().Vertices++
		case "vt":
			var uv math.Vec2
			uv, err = parseVec2(fields[1:])
			obj.UVs = append(obj.UVs, uv)
		case "vn":
			var n math.Vec3
			n, err = parseVec3(fields[1:])
			obj.Normals = append(obj.Normals, n)
		case "f":
			var face []OBJCorner
			face, err = parseFace(fields[1:])
			o := object()
			o.Faces = append(o.Faces, face)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	if err := obj.checkIndices(); err != nil {
		return nil, err
	}
	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: expected %d components, got %d", ErrMalformedOBJ, n, len(fields))
	}
	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: f[0], Y: f[1]}, nil
}

// parseFace parses "v", "v/vt", "v//vn" and "v/vt/vn" corners.
func parseFace(fields []string) ([]OBJCorner, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: face with %d corners", ErrMalformedOBJ, len(fields))
	}
	face := make([]OBJCorner, len(fields))
	for i, field := range fields {
		parts := strings.Split(field, "/")
		if len(parts) > 3 {
			return nil, fmt.Errorf("%w: face corner %q", ErrMalformedOBJ, field)
		}
		idx := [3]int{-1, -1, -1}
		for j, p := range parts {
			if p == "" {
				if j == 0 {
					return nil, fmt.Errorf("%w: face corner %q has no vertex", ErrMalformedOBJ, field)
				}
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: face corner %q", ErrMalformedOBJ, field)
			}
			idx[j] = n - 1
		}
		face[i] = OBJCorner{V: idx[0], VT: idx[1], VN: idx[2]}
	}
	return face, nil
}

func (obj *OBJ) checkIndices() error {
	for _, o := range obj.Objects {
		for fi, face := range o.Faces {
			for _, c := range face {
				if c.V >= len(obj.Vertices) || c.VT >= len(obj.UVs) || c.VN >= len(obj.Normals) {
					return fmt.Errorf("%w: object %q face %d", ErrOBJIndex, o.Name, fi)
				}
			}
		}
	}
	return nil
}

// GetTotalFaceCount returns the number of faces across all objects.
func (obj *OBJ) GetTotalFaceCount() int {
	total := 0
	for _, o := range obj.Objects {
		total += len(o.Faces)
	}
	return total
}

// GetObjectByName returns an object by its name, or nil if not found.
func (obj *OBJ) GetObjectByName(name string) *OBJObject {
	for i := range obj.Objects {
		if obj.Objects[i].Name == name {
			return &obj.Objects[i]
		}
	}
	return nil
}
