package platform

// yaml.go — shared YAML emission helpers.
//
// The platform schemas care about key order (a workflow whose jobs reorder
// between runs produces noisy diffs), and Go maps do not preserve it, so
// ordered mappings are built as yaml.Node mapping nodes by hand.

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pair is one entry of an order-preserving string mapping.
type Pair struct {
	Key   string
	Value string
}

// Pairs marshals as a YAML mapping that keeps insertion order.
type Pairs []Pair

// MarshalYAML implements yaml.Marshaler.
func (p Pairs) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range p {
		node.Content = append(node.Content, scalarNode(e.Key), scalarNode(e.Value))
	}
	return node, nil
}

func scalarNode(s string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(s)
	return n
}

func encodeNode(v interface{}) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml node: %w", err)
	}
	return n, nil
}

// marshal serializes v with 2-space indentation and a trailing newline.
func marshal(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("close yaml encoder: %w", err)
	}
	return buf.String(), nil
}
