package model

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/bdsqqq/resource-pack-backporter/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnknownNodeType signals an item descriptor node outside the closed
// set of recognized shapes.
var ErrUnknownNodeType = errors.New("unknown item model node type")

const (
	nodeTypeModel     = "minecraft:model"
	nodeTypeSelect    = "minecraft:select"
	nodeTypeCondition = "minecraft:condition"

	propertyDisplayContext = "minecraft:display_context"
	propertyComponent      = "minecraft:component"
)

// Node is one node in an item's conditional model tree.
//
// The set of shapes is closed: a leaf model reference, a display-context
// select, a stored-component select, or a boolean component condition.
// Decoding an unrecognized shape is an error, never a silent no-op.
type Node interface {
	node()
}

// LeafNode terminates traversal with a concrete model reference.
type LeafNode struct {
	Model string
}

// ContextCase binds a group of display contexts to a nested model.
type ContextCase struct {
	When  []string
	Model Node
}

// ContextSelectNode selects a nested model by render context.
type ContextSelectNode struct {
	Cases    []ContextCase
	Fallback Node
}

// ComponentCase binds component values (enchantment id to level) to a
// nested model.
type ComponentCase struct {
	When  map[string]int
	Model Node
}

// ComponentSelectNode selects a nested model by a stored component value.
type ComponentSelectNode struct {
	Component string
	Cases     []ComponentCase
}

// ConditionNode branches on boolean component presence.
type ConditionNode struct {
	Predicate string
	OnTrue    Node
	OnFalse   Node
}

func (LeafNode) node()            {}
func (ContextSelectNode) node()   {}
func (ComponentSelectNode) node() {}
func (ConditionNode) node()       {}

// ItemDescriptor is the root of one item's conditional model description.
type ItemDescriptor struct {
	Model Node
}

// ParseItemDescriptor decodes an item descriptor file.
func ParseItemDescriptor(data []byte) (*ItemDescriptor, error) {
	var raw struct {
		Model jsoniter.RawMessage `json:"model"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Model) == 0 {
		return nil, fmt.Errorf("item descriptor has no model field")
	}
	node, err := DecodeNode(raw.Model)
	if err != nil {
		return nil, err
	}
	return &ItemDescriptor{Model: node}, nil
}

type rawNode struct {
	Type      string              `json:"type"`
	Model     string              `json:"model"`
	Property  string              `json:"property"`
	Component string              `json:"component"`
	Predicate string              `json:"predicate"`
	Cases     []rawCase           `json:"cases"`
	Fallback  jsoniter.RawMessage `json:"fallback"`
	OnTrue    jsoniter.RawMessage `json:"on_true"`
	OnFalse   jsoniter.RawMessage `json:"on_false"`
}

type rawCase struct {
	When  jsoniter.RawMessage `json:"when"`
	Model jsoniter.RawMessage `json:"model"`
}

// DecodeNode decodes one selector-tree node, recursively.
func DecodeNode(data []byte) (Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch raw.Type {
	case nodeTypeModel:
		return LeafNode{Model: raw.Model}, nil

	case nodeTypeSelect:
		switch raw.Property {
		case propertyDisplayContext:
			return decodeContextSelect(raw)
		case propertyComponent:
			return decodeComponentSelect(raw)
		default:
			return nil, ErrUnknownNodeType.WrapMsg(nil, "select property %q", raw.Property)
		}

	case nodeTypeCondition:
		return decodeCondition(raw)

	default:
		return nil, ErrUnknownNodeType.WrapMsg(nil, "type %q", raw.Type)
	}
}

func decodeContextSelect(raw rawNode) (Node, error) {
	node := ContextSelectNode{}
	for i, c := range raw.Cases {
		var when []string
		if err := json.Unmarshal(c.When, &when); err != nil {
			// A single context may appear as a bare string.
			var one string
			if err2 := json.Unmarshal(c.When, &one); err2 != nil {
				return nil, fmt.Errorf("context select case %d: %w", i, err)
			}
			when = []string{one}
		}
		nested, err := DecodeNode(c.Model)
		if err != nil {
			return nil, fmt.Errorf("context select case %d: %w", i, err)
		}
		node.Cases = append(node.Cases, ContextCase{When: when, Model: nested})
	}
	if len(raw.Fallback) > 0 {
		fallback, err := DecodeNode(raw.Fallback)
		if err != nil {
			return nil, fmt.Errorf("context select fallback: %w", err)
		}
		node.Fallback = fallback
	}
	return node, nil
}

func decodeComponentSelect(raw rawNode) (Node, error) {
	node := ComponentSelectNode{Component: raw.Component}
	for i, c := range raw.Cases {
		when := map[string]int{}
		if err := json.Unmarshal(c.When, &when); err != nil {
			// The value may also be a list of id->level objects; flatten it.
			var many []map[string]int
			if err2 := json.Unmarshal(c.When, &many); err2 != nil {
				return nil, fmt.Errorf("component select case %d: %w", i, err)
			}
			for _, m := range many {
				for id, level := range m {
					when[id] = level
				}
			}
		}
		nested, err := DecodeNode(c.Model)
		if err != nil {
			return nil, fmt.Errorf("component select case %d: %w", i, err)
		}
		node.Cases = append(node.Cases, ComponentCase{When: when, Model: nested})
	}
	return node, nil
}

func decodeCondition(raw rawNode) (Node, error) {
	node := ConditionNode{Predicate: raw.Predicate}
	if len(raw.OnTrue) > 0 {
		onTrue, err := DecodeNode(raw.OnTrue)
		if err != nil {
			return nil, fmt.Errorf("condition on_true: %w", err)
		}
		node.OnTrue = onTrue
	}
	if len(raw.OnFalse) > 0 {
		onFalse, err := DecodeNode(raw.OnFalse)
		if err != nil {
			return nil, fmt.Errorf("condition on_false: %w", err)
		}
		node.OnFalse = onFalse
	}
	return node, nil
}
