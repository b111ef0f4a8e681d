// Package preview renders a generated tree to a flat-shaded image with an
// orthographic camera, for quick inspection without a 3D host.
package preview

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/eztree/pkg/math"
	"github.com/Faultbox/eztree/pkg/tree"
)

// ErrUnknownFormat is returned for image paths with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown image format")

// maxPitch keeps the camera off the trunk axis, where LookAt degenerates.
const maxPitch = 89

// Options configures the preview camera and palette.
type Options struct {
	Size  int     // Square image edge in pixels
	Yaw   float64 // Degrees around the trunk axis
	Pitch float64 // Degrees above the horizon

	Background gg.RGBA
	Bark       gg.RGBA
	Leaves     gg.RGBA
	// Light is the direction towards the light, in world space.
	Light math.Vec3

	// ShowBounds overlays the bounding box wireframe.
	ShowBounds  bool
	BoundsColor gg.RGBA
}

// DefaultOptions returns a 512px three-quarter view.
func DefaultOptions() Options {
	return Options{
		Size:       512,
		Yaw:        30,
		Pitch:      15,
		Background: gg.RGB(0.93, 0.95, 0.97),
		Bark:       gg.RGB(0.42, 0.30, 0.20),
		Leaves:     gg.RGB(0.30, 0.55, 0.22),
		Light:      SunDirection(35, 55),

		BoundsColor: gg.RGB(0.85, 0.15, 0.15),
	}
}

// quad is one projected face, ready to fill.
type quad struct {
	points [4][2]float64
	depth  float64
	color  gg.RGBA
}

// Render draws both meshes of t. Faces are filled back to front and shaded
// by their normal against the light. The caller must Close the context.
func Render(t *tree.Tree, opts Options) (*gg.Context, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid preview size %d", opts.Size)
	}

	bounds := t.Bounds()
	mvp := camera(bounds, opts)
	light := opts.Light.Normalize()
	size := float64(opts.Size)
	toScreen := func(p math.Vec3) [2]float64 {
		return [2]float64{(p.X + 1) / 2 * size, (1 - p.Y) / 2 * size}
	}

	var quads []quad
	project := func(m *tree.Mesh, tint gg.RGBA, twoSided bool) {
		for _, f := range m.Faces {
			var q quad
			var normal math.Vec3
			for i, idx := range f {
				p := mvp.TransformVec3(m.Vertices[idx])
				q.points[i] = toScreen(p)
				q.depth += p.Z / 4
				normal = normal.Add(m.Normals[idx])
			}
			q.color = shade(tint, normal.Normalize(), light, twoSided)
			quads = append(quads, q)
		}
	}
	project(&t.Branches, tinted(opts.Bark, t.Options.Bark.Tint), false)
	project(&t.Leaves, tinted(opts.Leaves, t.Options.Leaves.Tint), true)

	// Larger NDC depth is further from the camera
	sort.SliceStable(quads, func(i, j int) bool {
		return quads[i].depth > quads[j].depth
	})

	dc := gg.NewContext(opts.Size, opts.Size)
	dc.ClearWithColor(opts.Background)
	for _, q := range quads {
		dc.SetRGBA(q.color.R, q.color.G, q.color.B, q.color.A)
		dc.MoveTo(q.points[0][0], q.points[0][1])
		for _, p := range q.points[1:] {
			dc.LineTo(p[0], p[1])
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("filling face: %w", err)
		}
	}

	if opts.ShowBounds {
		c := opts.BoundsColor
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.SetLineWidth(gomath.Max(1, size/256))
		for _, e := range boxEdges(bounds) {
			a, b := toScreen(mvp.TransformVec3(e[0])), toScreen(mvp.TransformVec3(e[1]))
			dc.MoveTo(a[0], a[1])
			dc.LineTo(b[0], b[1])
		}
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("stroking bounds: %w", err)
		}
	}
	return dc, nil
}

// camera frames bounds from the yaw/pitch direction.
func camera(b tree.Bounds, opts Options) math.Mat4 {
	cam := NewOrbitCamera(opts.Yaw, opts.Pitch)
	cam.FitToBounds(b)
	return cam.ProjectionMatrix().Mul(cam.ViewMatrix())
}

// shade applies a half-Lambert term so faces turned away stay visible.
// Leaves are lit from either side.
func shade(c gg.RGBA, normal, light math.Vec3, twoSided bool) gg.RGBA {
	d := normal.Dot(light)
	if twoSided {
		d = gomath.Abs(d)
	}
	k := 0.45 + 0.55*gomath.Max(0, d)
	return gg.RGBA{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// tinted multiplies a palette colour by a material tint.
func tinted(c gg.RGBA, tint tree.Color) gg.RGBA {
	r, g, b := tint.RGB()
	return gg.RGBA{R: c.R * r, G: c.G * g, B: c.B * b, A: c.A}
}

// Format is an output image encoding.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes the rendered image in the given format.
func Encode(w io.Writer, dc *gg.Context, format Format) error {
	switch format {
	case PNG:
		return dc.EncodePNG(w)
	case BMP:
		return bmp.Encode(w, dc.Image())
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes the rendered image to path, choosing the encoding from the
// extension.
func Save(path string, dc *gg.Context) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	if err := Encode(f, dc, format); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return f.Close()
}
