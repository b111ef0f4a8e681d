package tree

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLevelParamLookup(t *testing.T) {
	p := Levels(5.0, map[int]float64{1: 70, 3: 30})

	tests := []struct {
		level int
		want  float64
	}{
		{0, 5},
		{1, 70},
		{2, 5},
		{3, 30},
		{4, 5},
		{-1, 5}, // clamps to level 0
		{9, 5},  // clamps to MaxLevel
	}
	for _, tt := range tests {
		if got := p.At(tt.level); got != tt.want {
			t.Errorf("At(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}

	if !p.IsSet(1) || p.IsSet(2) {
		t.Error("IsSet reports wrong levels")
	}
}

func TestLevelParamSetUnset(t *testing.T) {
	p := Levels(3, nil)

	p.Set(MaxLevel+3, 8)
	if got := p.At(MaxLevel); got != 8 {
		t.Errorf("Set beyond MaxLevel should clamp, At(MaxLevel) = %d", got)
	}

	p.Unset(MaxLevel)
	if got := p.At(MaxLevel); got != 3 {
		t.Errorf("after Unset, At(MaxLevel) = %d, want default 3", got)
	}
	if len(p.Map()) != 0 {
		t.Errorf("expected no set levels, got %v", p.Map())
	}
}

func TestLevelParamYAMLMerge(t *testing.T) {
	var holder struct {
		Angle LevelParam[float64] `yaml:"angle"`
	}
	holder.Angle = Levels(60.0, map[int]float64{1: 70, 2: 60})

	if err := yaml.Unmarshal([]byte("angle: {2: 45, 3: 20}\n"), &holder); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := map[int]float64{1: 70, 2: 45, 3: 20}
	for level, v := range want {
		if got := holder.Angle.At(level); got != v {
			t.Errorf("At(%d) = %v, want %v", level, got, v)
		}
	}
	if holder.Angle.Default != 60 {
		t.Errorf("default changed to %v", holder.Angle.Default)
	}

	out, err := yaml.Marshal(holder)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), "3: 20") {
		t.Errorf("marshaled table missing level 3:\n%s", out)
	}
}

func TestLevelParamYAMLOutOfRange(t *testing.T) {
	var p LevelParam[int]
	err := yaml.Unmarshal([]byte("{5: 1}\n"), &p)
	if err == nil {
		t.Fatal("expected error for level 5")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("unexpected error: %v", err)
	}
}
