package tree

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TreeType selects the growth model.
type TreeType string

const (
	// Deciduous trees continue each branch from its tip and taper by level.
	Deciduous TreeType = "deciduous"
	// Evergreen trees taper every branch to a point and shorten children
	// towards the top.
	Evergreen TreeType = "evergreen"
)

// Billboard selects leaf geometry.
type Billboard string

const (
	// Single leaves are one quad.
	Single Billboard = "single"
	// Double leaves are two quads crossed at 90 degrees.
	Double Billboard = "double"
)

// LeafType names the leaf texture family.
type LeafType string

const (
	LeafAsh   LeafType = "ash"
	LeafAspen LeafType = "aspen"
	LeafPine  LeafType = "pine"
	LeafOak   LeafType = "oak"
)

// BarkType names the bark texture family.
type BarkType string

const (
	BarkBirch  BarkType = "birch"
	BarkOak    BarkType = "oak"
	BarkPine   BarkType = "pine"
	BarkWillow BarkType = "willow"
)

// ParseTreeType parses a tree type name, ignoring case.
func ParseTreeType(s string) (TreeType, error) {
	return parseEnum(s, "tree type", Deciduous, Evergreen)
}

// ParseBillboard parses a billboard mode name, ignoring case.
func ParseBillboard(s string) (Billboard, error) {
	return parseEnum(s, "billboard", Single, Double)
}

// ParseLeafType parses a leaf type name, ignoring case.
func ParseLeafType(s string) (LeafType, error) {
	return parseEnum(s, "leaf type", LeafAsh, LeafAspen, LeafPine, LeafOak)
}

// ParseBarkType parses a bark type name, ignoring case.
func ParseBarkType(s string) (BarkType, error) {
	return parseEnum(s, "bark type", BarkBirch, BarkOak, BarkPine, BarkWillow)
}

func parseEnum[E ~string](s, what string, valid ...E) (E, error) {
	v := E(strings.ToLower(strings.TrimSpace(s)))
	for _, e := range valid {
		if v == e {
			return e, nil
		}
	}
	var zero E
	return zero, fmt.Errorf("unknown %s %q", what, s)
}

func decodeEnum[E ~string](node *yaml.Node, parse func(string) (E, error)) (E, error) {
	var s string
	if err := node.Decode(&s); err != nil {
		var zero E
		return zero, err
	}
	return parse(s)
}

// UnmarshalYAML validates the tree type name.
func (t *TreeType) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeEnum(node, ParseTreeType)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalYAML validates the billboard name.
func (b *Billboard) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeEnum(node, ParseBillboard)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// UnmarshalYAML validates the leaf type name.
func (l *LeafType) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeEnum(node, ParseLeafType)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// UnmarshalYAML validates the bark type name.
func (b *BarkType) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeEnum(node, ParseBarkType)
	if err != nil {
		return err
	}
	*b = v
	return nil
}
