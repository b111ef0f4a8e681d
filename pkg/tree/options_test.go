package tree

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/eztree/pkg/math"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Type != Deciduous {
		t.Errorf("expected deciduous, got %q", opts.Type)
	}
	if opts.Branch.Levels != 3 {
		t.Errorf("expected 3 levels, got %d", opts.Branch.Levels)
	}
	if got := opts.Branch.Children.At(0); got != 7 {
		t.Errorf("expected 7 trunk children, got %d", got)
	}
	if got := opts.Branch.Radius.At(0); got != 1.5 {
		t.Errorf("expected trunk radius 1.5, got %v", got)
	}
	if got := opts.Branch.Start.At(0); got != DefaultStart {
		t.Errorf("unset start level should fall back to %v, got %v", DefaultStart, got)
	}
	if opts.Leaves.Billboard != Double || opts.Leaves.Count != 1 {
		t.Errorf("unexpected leaf defaults: %+v", opts.Leaves)
	}

	if _, notes := opts.Clamped(); len(notes) != 0 {
		t.Errorf("defaults should need no clamping, got %v", notes)
	}
}

func TestClamped(t *testing.T) {
	opts := DefaultOptions()
	opts.Branch.Levels = -2
	opts.Branch.Sections.Default = 0
	opts.Branch.Children.Set(1, -4)
	opts.Branch.Force.Direction = math.Vec3{}
	opts.Leaves.AlphaTest = 1.5

	got, notes := opts.Clamped()

	if got.Branch.Levels != 0 {
		t.Errorf("levels = %d, want 0", got.Branch.Levels)
	}
	if got.Branch.Sections.At(4) != MinSections {
		t.Errorf("default sections = %d, want %d", got.Branch.Sections.At(4), MinSections)
	}
	if got.Branch.Children.At(1) != 0 {
		t.Errorf("children = %d, want 0", got.Branch.Children.At(1))
	}
	if got.Branch.Force.Direction != math.Up {
		t.Errorf("force direction = %v, want up", got.Branch.Force.Direction)
	}
	if got.Leaves.AlphaTest != 1 {
		t.Errorf("alpha test = %g, want 1", got.Leaves.AlphaTest)
	}
	if len(notes) != 5 {
		t.Errorf("expected 5 notes, got %d: %v", len(notes), notes)
	}

	// The receiver is left untouched
	if opts.Branch.Levels != -2 || opts.Branch.Children.At(1) != -4 {
		t.Error("Clamped modified its receiver")
	}
}

func TestClampedSegmentsExplained(t *testing.T) {
	opts := DefaultOptions()
	opts.Branch.Segments.Set(2, 2)

	got, notes := opts.Clamped()

	if got.Branch.Segments.At(2) != MinSegments {
		t.Errorf("segments = %d, want %d", got.Branch.Segments.At(2), MinSegments)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d: %v", len(notes), notes)
	}
	want := "segments 2 clamped to 3: fewer than 3 segments make a flat ring with no volume"
	if notes[0] != want {
		t.Errorf("note = %q, want %q", notes[0], want)
	}
}

func TestParseEnums(t *testing.T) {
	if v, err := ParseTreeType(" Evergreen "); err != nil || v != Evergreen {
		t.Errorf("ParseTreeType = %q, %v", v, err)
	}
	if v, err := ParseBillboard("SINGLE"); err != nil || v != Single {
		t.Errorf("ParseBillboard = %q, %v", v, err)
	}
	if v, err := ParseLeafType("aspen"); err != nil || v != LeafAspen {
		t.Errorf("ParseLeafType = %q, %v", v, err)
	}
	if v, err := ParseBarkType("willow"); err != nil || v != BarkWillow {
		t.Errorf("ParseBarkType = %q, %v", v, err)
	}

	_, err := ParseTreeType("palm")
	if err == nil || !strings.Contains(err.Error(), `unknown tree type "palm"`) {
		t.Errorf("expected unknown tree type error, got %v", err)
	}
}

func TestOptionsYAML(t *testing.T) {
	doc := `
seed: 7
type: evergreen
branch:
  levels: 2
  children: {0: 12}
  force:
    direction: {x: 1, y: 0, z: 0}
    strength: 0.05
leaves:
  billboard: single
  count: 3
`
	opts := DefaultOptions()
	if err := yaml.Unmarshal([]byte(doc), &opts); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if opts.Seed != 7 || opts.Type != Evergreen || opts.Branch.Levels != 2 {
		t.Errorf("unexpected top level: seed=%d type=%q levels=%d", opts.Seed, opts.Type, opts.Branch.Levels)
	}
	if got := opts.Branch.Children.At(0); got != 12 {
		t.Errorf("children[0] = %d, want 12", got)
	}
	// Levels missing from the document keep their defaults
	if got := opts.Branch.Children.At(1); got != 7 {
		t.Errorf("children[1] = %d, want 7", got)
	}
	if opts.Branch.Force.Direction != (math.Vec3{X: 1}) {
		t.Errorf("force direction = %v", opts.Branch.Force.Direction)
	}
	if opts.Leaves.Billboard != Single || opts.Leaves.Count != 3 {
		t.Errorf("unexpected leaves: %+v", opts.Leaves)
	}
	if opts.Leaves.Size != 2.5 {
		t.Errorf("leaf size default lost, got %v", opts.Leaves.Size)
	}
}

func TestOptionsYAMLRejectsUnknownEnum(t *testing.T) {
	opts := DefaultOptions()
	err := yaml.Unmarshal([]byte("leaves:\n  billboard: triple\n"), &opts)
	if err == nil {
		t.Fatal("expected error for unknown billboard")
	}
	if !strings.Contains(err.Error(), "unknown billboard") {
		t.Errorf("unexpected error: %v", err)
	}
}
