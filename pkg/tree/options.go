// Package tree grows procedural tree meshes: a branch skeleton of tapered,
// jointed cylinders and a cluster of billboard leaves, both fully determined
// by an Options value and its seed.
package tree

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/eztree/pkg/math"
)

// Minimum ring resolution. A branch needs at least one section to have
// length and three segments to enclose any volume.
const (
	MinSections = 1
	MinSegments = 3
)

// Options configures a tree.
type Options struct {
	Seed   int64         `yaml:"seed"`
	Type   TreeType      `yaml:"type"`
	Bark   BarkOptions   `yaml:"bark"`
	Branch BranchOptions `yaml:"branch"`
	Leaves LeafOptions   `yaml:"leaves"`
}

// Color is a 0xRRGGBB tint.
type Color uint32

// RGB returns the tint as components in [0, 1].
func (c Color) RGB() (r, g, b float64) {
	return float64(c>>16&0xFF) / 255, float64(c>>8&0xFF) / 255, float64(c&0xFF) / 255
}

// TextureScale scales texture coordinates.
type TextureScale struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BarkOptions describes the branch surface. The generator ignores it; mesh
// exporters use it to describe the bark material.
type BarkOptions struct {
	Type         BarkType     `yaml:"type"`
	Tint         Color        `yaml:"tint"`
	FlatShading  bool         `yaml:"flat_shading"`
	Textured     bool         `yaml:"textured"`
	TextureScale TextureScale `yaml:"texture_scale"`
}

// Force is a global direction branches bend towards. Thin branches bend more.
type Force struct {
	Direction math.Vec3 `yaml:"direction"`
	Strength  float64   `yaml:"strength"`
}

// BranchOptions holds the per-level branch parameters.
type BranchOptions struct {
	// Levels is the depth of the branch hierarchy. Leaves grow on the last level.
	Levels int `yaml:"levels"`

	// Angle between a child and its parent, in degrees.
	Angle LevelParam[float64] `yaml:"angle"`
	// Children spawned along a branch of the given level.
	Children LevelParam[int] `yaml:"children"`
	Force    Force            `yaml:"force"`
	// Gnarliness is the random orientation jitter applied per section.
	Gnarliness LevelParam[float64] `yaml:"gnarliness"`
	Length     LevelParam[float64] `yaml:"length"`
	// Radius of level 0 is absolute; deeper levels scale the parent radius.
	Radius   LevelParam[float64] `yaml:"radius"`
	Sections LevelParam[int]     `yaml:"sections"`
	Segments LevelParam[int]     `yaml:"segments"`
	// Start is the earliest normalized position along the parent where
	// children of the level may spawn.
	Start LevelParam[float64] `yaml:"start"`
	Taper LevelParam[float64] `yaml:"taper"`
	// Twist about the growth axis per section, in radians.
	Twist LevelParam[float64] `yaml:"twist"`
}

// LeafOptions configures the leaf cluster.
type LeafOptions struct {
	Type      LeafType  `yaml:"type"`
	Billboard Billboard `yaml:"billboard"`
	// Angle between a leaf and its branch, in degrees.
	Angle        float64 `yaml:"angle"`
	Count        int     `yaml:"count"`
	Start        float64 `yaml:"start"`
	Size         float64 `yaml:"size"`
	SizeVariance float64 `yaml:"size_variance"`
	Tint         Color   `yaml:"tint"`
	AlphaTest    float64 `yaml:"alpha_test"`
}

// Fallbacks for levels a table does not set.
const (
	DefaultAngle      = 60
	DefaultChildren   = 0
	DefaultGnarliness = 0.1
	DefaultLength     = 10
	DefaultRadius     = 0.5
	DefaultSections   = 6
	DefaultSegments   = 4
	DefaultStart      = 0.3
	DefaultTaper      = 0.7
	DefaultTwist      = 0
)

// DefaultOptions returns a three-level deciduous oak.
func DefaultOptions() Options {
	return Options{
		Seed: 0,
		Type: Deciduous,
		Bark: BarkOptions{
			Type:         BarkOak,
			Tint:         0xFFFFFF,
			FlatShading:  false,
			Textured:     true,
			TextureScale: TextureScale{X: 1, Y: 1},
		},
		Branch: BranchOptions{
			Levels:   3,
			Angle:    Levels(DefaultAngle, map[int]float64{1: 70, 2: 60, 3: 60}),
			Children: Levels(DefaultChildren, map[int]int{0: 7, 1: 7, 2: 5}),
			Force: Force{
				Direction: math.Vec3{X: 0, Y: 1, Z: 0},
				Strength:  0.01,
			},
			Gnarliness: Levels(DefaultGnarliness, map[int]float64{0: 0.15, 1: 0.2, 2: 0.3, 3: 0.02}),
			Length:     Levels(DefaultLength, map[int]float64{0: 20, 1: 20, 2: 10, 3: 1}),
			Radius:     Levels(DefaultRadius, map[int]float64{0: 1.5, 1: 0.7, 2: 0.7, 3: 0.7}),
			Sections:   Levels(DefaultSections, map[int]int{0: 12, 1: 10, 2: 8, 3: 6}),
			Segments:   Levels(DefaultSegments, map[int]int{0: 8, 1: 6, 2: 4, 3: 3}),
			Start:      Levels(DefaultStart, map[int]float64{1: 0.4, 2: 0.3, 3: 0.3}),
			Taper:      Levels(DefaultTaper, map[int]float64{0: 0.7, 1: 0.7, 2: 0.7, 3: 0.7}),
			Twist:      Levels(DefaultTwist, map[int]float64{0: 0, 1: 0, 2: 0, 3: 0}),
		},
		Leaves: LeafOptions{
			Type:         LeafOak,
			Billboard:    Double,
			Angle:        10,
			Count:        1,
			Start:        0,
			Size:         2.5,
			SizeVariance: 0.7,
			Tint:         0xFFFFFF,
			AlphaTest:    0.5,
		},
	}
}

// Clamped returns a copy of o with every out-of-range value pulled back into
// range, plus a description of each adjustment.
func (o Options) Clamped() (Options, []string) {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	switch o.Type {
	case Deciduous, Evergreen:
	default:
		note("tree type %q replaced with %q", o.Type, Deciduous)
		o.Type = Deciduous
	}
	switch o.Leaves.Billboard {
	case Single, Double:
	default:
		note("billboard %q replaced with %q", o.Leaves.Billboard, Double)
		o.Leaves.Billboard = Double
	}

	if l := min(max(o.Branch.Levels, 0), MaxLevel); l != o.Branch.Levels {
		note("levels %d clamped to %d", o.Branch.Levels, l)
		o.Branch.Levels = l
	}
	if o.Leaves.Count < 0 {
		note("leaf count %d clamped to 0", o.Leaves.Count)
		o.Leaves.Count = 0
	}

	if a := math.Clamp(o.Leaves.AlphaTest, 0, 1); a != o.Leaves.AlphaTest {
		note("alpha test %g clamped to %g", o.Leaves.AlphaTest, a)
		o.Leaves.AlphaTest = a
	}

	atLeast := func(name string, lo int, why string) func(int) int {
		return func(v int) int {
			if v < lo {
				note("%s %d clamped to %d: %s", name, v, lo, why)
				return lo
			}
			return v
		}
	}
	o.Branch.Sections.mapValues(atLeast("sections", MinSections, "a branch needs at least one section"))
	o.Branch.Segments.mapValues(atLeast("segments", MinSegments, "fewer than 3 segments make a flat ring with no volume"))
	o.Branch.Children.mapValues(atLeast("children", 0, "a branch cannot have negative children"))

	dir := o.Branch.Force.Direction
	if dir.Length() == 0 || gomath.IsNaN(dir.Length()) {
		note("force direction %v replaced with up", dir)
		o.Branch.Force.Direction = math.Up
	}

	return o, notes
}
