package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MaxLevel is the deepest branch level a tree can have. Level 0 is the trunk.
const MaxLevel = 4

// Number is the set of value types a per-level table can hold.
type Number interface {
	~int | ~float64
}

// LevelParam is a per-level setting backed by a fixed table. Lookups are
// total: a level that was never set resolves to Default, and out-of-range
// levels are clamped into [0, MaxLevel].
//
// In YAML a LevelParam is a sparse map from level to value, e.g. {1: 70, 2: 60}.
type LevelParam[T Number] struct {
	values  [MaxLevel + 1]T
	set     [MaxLevel + 1]bool
	Default T
}

// Levels builds a table with the given default and per-level values.
func Levels[T Number](def T, values map[int]T) LevelParam[T] {
	p := LevelParam[T]{Default: def}
	for level, v := range values {
		p.Set(level, v)
	}
	return p
}

func clampLevel(level int) int {
	return min(max(level, 0), MaxLevel)
}

// At returns the value for level.
func (p LevelParam[T]) At(level int) T {
	level = clampLevel(level)
	if !p.set[level] {
		return p.Default
	}
	return p.values[level]
}

// IsSet reports whether level has an explicit value.
func (p LevelParam[T]) IsSet(level int) bool {
	return p.set[clampLevel(level)]
}

// Set assigns a value to level.
func (p *LevelParam[T]) Set(level int, v T) {
	level = clampLevel(level)
	p.values[level] = v
	p.set[level] = true
}

// Unset removes the explicit value for level so it falls back to Default.
func (p *LevelParam[T]) Unset(level int) {
	level = clampLevel(level)
	var zero T
	p.values[level] = zero
	p.set[level] = false
}

// Map returns the explicitly set levels.
func (p LevelParam[T]) Map() map[int]T {
	m := make(map[int]T)
	for level := range MaxLevel + 1 {
		if p.set[level] {
			m[level] = p.values[level]
		}
	}
	return m
}

// mapValues applies fn to every explicitly set value and to Default.
func (p *LevelParam[T]) mapValues(fn func(T) T) {
	p.Default = fn(p.Default)
	for level := range MaxLevel + 1 {
		if p.set[level] {
			p.values[level] = fn(p.values[level])
		}
	}
}

// MarshalYAML encodes the set levels as a map.
func (p LevelParam[T]) MarshalYAML() (any, error) {
	return p.Map(), nil
}

// UnmarshalYAML merges a level map into the table. Levels not present in the
// document keep their current values.
func (p *LevelParam[T]) UnmarshalYAML(node *yaml.Node) error {
	var m map[int]T
	if err := node.Decode(&m); err != nil {
		return err
	}
	for level, v := range m {
		if level < 0 || level > MaxLevel {
			return fmt.Errorf("level %d out of range [0, %d]", level, MaxLevel)
		}
		p.Set(level, v)
	}
	return nil
}
