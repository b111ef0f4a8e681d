package tree

import (
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/eztree/pkg/math"
	"github.com/Faultbox/eztree/pkg/rng"
)

// Tree is the result of one generation run.
type Tree struct {
	Branches Mesh
	Leaves   Mesh
	// Options are the clamped options the tree was grown from.
	Options Options
	Stats   Stats
}

// Stats counts what a generation run produced.
type Stats struct {
	Branches        int
	BranchesByLevel [MaxLevel + 1]int
	Sections        int
	Leaves          int
}

// Bounds returns the bounding box of branches and leaves together.
func (t *Tree) Bounds() Bounds {
	switch {
	case t.Leaves.Empty():
		return t.Branches.Bounds()
	case t.Branches.Empty():
		return t.Leaves.Bounds()
	}
	return t.Branches.Bounds().Union(t.Leaves.Bounds())
}

// Generator grows trees from a fixed set of options. It holds no mutable
// state, so one Generator may be used from several goroutines.
type Generator struct {
	opts Options
	log  *zap.Logger
}

// NewGenerator returns a generator for opts. A nil logger discards output.
func NewGenerator(opts Options, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	clamped, notes := opts.Clamped()
	for _, n := range notes {
		log.Warn("tree option adjusted", zap.String("change", n))
	}
	return &Generator{opts: clamped, log: log}
}

// Options returns the clamped options the generator uses.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate grows a tree from options.
func Generate(opts Options) *Tree {
	return NewGenerator(opts, nil).Generate()
}

// Generate runs the growth simulation and returns the finished meshes.
func (g *Generator) Generate() *Tree {
	return g.generate(g.opts)
}

// GenerateSeed grows a tree from the generator's options with seed in place
// of the configured one.
func (g *Generator) GenerateSeed(seed int64) *Tree {
	opts := g.opts
	opts.Seed = seed
	return g.generate(opts)
}

func (g *Generator) generate(opts Options) *Tree {
	start := time.Now()

	s := newGrowth(opts)
	s.run()

	g.log.Debug("tree generated",
		zap.Int64("seed", opts.Seed),
		zap.String("type", string(opts.Type)),
		zap.Int("branches", s.tree.Stats.Branches),
		zap.Int("leaves", s.tree.Stats.Leaves),
		zap.Int("branchVertices", s.tree.Branches.VertexCount()),
		zap.Int("leafVertices", s.tree.Leaves.VertexCount()),
		zap.Duration("elapsed", time.Since(start)))

	return s.tree
}

// growth is the state of a single generation run. It is created fresh for
// every Generate call and never shared.
type growth struct {
	opts  *Options
	rng   *rng.RNG
	queue []branch
	tree  *Tree

	// force is the orientation branches are pulled towards.
	force math.Quat
}

func newGrowth(opts Options) *growth {
	t := &Tree{Options: opts}
	return &growth{
		opts:  &t.Options,
		rng:   rng.New(opts.Seed),
		tree:  t,
		force: math.QuatFromUnitVectors(math.Up, opts.Branch.Force.Direction.Normalize()),
	}
}

// run grows the trunk and then every queued branch in FIFO order. The order
// fixes the sequence of random draws, so it must stay breadth-first.
func (s *growth) run() {
	s.queue = append(s.queue, s.trunk())

	for len(s.queue) > 0 {
		b := s.queue[0]
		s.queue = s.queue[1:]
		s.generateBranch(b)
	}
}

func (s *growth) trunk() branch {
	return branch{
		origin:       math.Vec3{},
		orientation:  math.QuatIdentity(),
		length:       s.opts.Branch.Length.At(0),
		radius:       s.opts.Branch.Radius.At(0),
		level:        0,
		sectionCount: s.sectionCount(0),
		segmentCount: s.segmentCount(0),
	}
}

func (s *growth) sectionCount(level int) int {
	return max(s.opts.Branch.Sections.At(level), MinSections)
}

func (s *growth) segmentCount(level int) int {
	return max(s.opts.Branch.Segments.At(level), MinSegments)
}

// levelDivisor shortens deciduous sections so the continuation chain of
// trunk and boughs adds up to a sensible height.
func (s *growth) levelDivisor() float64 {
	if s.opts.Type == Evergreen {
		return 1
	}
	return float64(max(1, s.opts.Branch.Levels-1))
}

// generateBranch meshes b, queues its continuation and children, and places
// its leaves. It returns the section snapshots it recorded.
func (s *growth) generateBranch(b branch) []section {
	s.tree.Stats.Branches++
	s.tree.Stats.BranchesByLevel[clampLevel(b.level)]++
	s.tree.Stats.Sections += b.sectionCount + 1

	indexOffset := uint32(s.tree.Branches.VertexCount())
	origin := b.origin
	orientation := b.orientation
	sectionLength := b.length / float64(b.sectionCount) / s.levelDivisor()

	sections := make([]section, 0, b.sectionCount+1)
	for i := 0; i <= b.sectionCount; i++ {
		radius := s.sectionRadius(b, i)
		s.addRing(origin, orientation, radius, b.segmentCount, i)

		sections = append(sections, section{
			origin:      origin,
			orientation: orientation,
			radius:      radius,
		})

		origin = origin.Add(orientation.Rotate(math.Up.Scale(sectionLength)))
		orientation = s.bend(orientation, radius, b.level)
	}

	s.addBranchFaces(indexOffset, b)

	levels := s.opts.Branch.Levels
	last := sections[len(sections)-1]

	if s.opts.Type == Deciduous {
		if b.level < levels {
			s.queue = append(s.queue, branch{
				origin:       last.origin,
				orientation:  last.orientation,
				length:       s.opts.Branch.Length.At(b.level + 1),
				radius:       last.radius,
				level:        b.level + 1,
				sectionCount: b.sectionCount,
				segmentCount: b.segmentCount,
			})
		} else {
			s.addLeaf(last.origin, last.orientation)
		}
	}

	switch {
	case b.level == levels:
		s.addLeaves(sections)
	case b.level < levels:
		s.addChildren(s.opts.Branch.Children.At(b.level), b.level+1, sections)
	}

	return sections
}

func (s *growth) sectionRadius(b branch, i int) float64 {
	progress := float64(i) / float64(b.sectionCount)
	switch {
	case i == b.sectionCount && b.level == s.opts.Branch.Levels:
		return tipRadius
	case s.opts.Type == Evergreen:
		return b.radius * (1 - progress)
	default:
		return b.radius * (1 - s.opts.Branch.Taper.At(b.level)*progress)
	}
}

// addRing emits one ring of segmentCount+1 vertices. The last vertex repeats
// the first at u=1 so the texture wraps without a seam.
func (s *growth) addRing(origin math.Vec3, orientation math.Quat, radius float64, segmentCount, sectionIndex int) {
	mesh := &s.tree.Branches
	v := float64(sectionIndex % 2)

	var first, firstNormal math.Vec3
	for j := 0; j < segmentCount; j++ {
		angle := 2 * gomath.Pi * float64(j) / float64(segmentCount)
		radial := math.Vec3{X: gomath.Cos(angle), Y: 0, Z: gomath.Sin(angle)}

		pos := orientation.Rotate(radial.Scale(radius)).Add(origin)
		normal := orientation.Rotate(radial).Normalize()
		mesh.addVertex(pos, normal, math.Vec2{X: float64(j) / float64(segmentCount), Y: v})

		if j == 0 {
			first, firstNormal = pos, normal
		}
	}
	mesh.addVertex(first, firstNormal, math.Vec2{X: 1, Y: v})
}

// bend advances the orientation to the next section: random jitter scaled by
// gnarliness, then twist, then a pull towards the force direction.
func (s *growth) bend(orientation math.Quat, radius float64, level int) math.Quat {
	opts := &s.opts.Branch

	gnarliness := opts.Gnarliness.At(level)
	scale := gnarliness
	if radius > 0 {
		scale = gomath.Max(1, 1/gomath.Sqrt(radius)) * gnarliness
	}

	// Jitter is applied to Euler components, X draw first.
	e := orientation.Euler()
	e.X += s.rng.Next(-scale, scale)
	e.Z += s.rng.Next(-scale, scale)
	q := e.Quat()

	q = q.Mul(math.QuatFromAxisAngle(math.Up, opts.Twist.At(level)))

	step := 0.0
	if radius > 0.0001 {
		step = opts.Force.Strength / radius
	}
	return q.RotateTowards(s.force, step)
}

// addBranchFaces connects consecutive rings with quads. Rings are
// segmentCount+1 vertices apart because of the seam vertex.
func (s *growth) addBranchFaces(indexOffset uint32, b branch) {
	mesh := &s.tree.Branches
	stride := uint32(b.segmentCount + 1)
	for i := 0; i < b.sectionCount; i++ {
		for j := 0; j < b.segmentCount; j++ {
			v1 := indexOffset + uint32(i)*stride + uint32(j)
			v2 := v1 + 1
			v3 := v1 + stride
			v4 := v2 + stride
			mesh.addFace(v1, v2, v4, v3)
		}
	}
}
