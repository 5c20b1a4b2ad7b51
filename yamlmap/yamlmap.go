// Package yamlmap serializes pair-backed maps to and from YAML mappings
// while preserving entry order.
//
// gopkg.in/yaml.v3 keeps mapping order only at the node level, so this
// adapter works on *yaml.Node: encoding builds a mapping node whose
// content follows the map's stored order, and decoding walks the mapping
// node's key/value pairs in document order, passing each wire key through
// a keycodec.Codec before insertion.
//
// YAML mapping keys are decoded through their string scalar form, so the
// wire key type is fixed to string, as in jsonmap.
package yamlmap

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/amp-labs/pairmap"
	"github.com/amp-labs/pairmap/keycodec"
)

// ErrNotAMapping is returned when the input's top-level node is not a YAML
// mapping.
var ErrNotAMapping = errors.New("yamlmap: input is not a YAML mapping")

// Marshal serializes the map as a YAML mapping document, emitting entries
// in stored order. A nil or empty map marshals as "{}".
func Marshal[K comparable, V any](m *pairmap.Map[K, V], codec keycodec.Codec[K, string]) ([]byte, error) {
	node, err := MarshalNode(m, codec)
	if err != nil {
		return nil, err
	}

	return yaml.Marshal(node)
}

// MarshalNode builds a mapping node whose content lists the map's entries
// in stored order. Each key is passed through the codec and becomes a
// string scalar node; each value is encoded with yaml.Node.Encode.
func MarshalNode[K comparable, V any](m *pairmap.Map[K, V], codec keycodec.Codec[K, string]) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	if m == nil {
		return node, nil
	}

	for key, value := range m.Seq() {
		wire, err := codec.EncodeKey(key)
		if err != nil {
			return nil, fmt.Errorf("yamlmap: encode key %v: %w", key, err)
		}

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: wire}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

// Unmarshal deserializes a YAML mapping into a new map, preserving the
// order in which keys appear in the document and keeping duplicate keys as
// separate entries. On any error no map is returned.
func Unmarshal[K comparable, V any](data []byte, codec keycodec.Codec[K, string]) (*pairmap.Map[K, V], error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	return UnmarshalNode[K, V](&node, codec)
}

// UnmarshalNode deserializes a mapping node into a new map. A document
// node wrapping a single mapping is unwrapped first. Node decode errors
// are propagated unchanged; a codec error is wrapped with the offending
// wire key. In both cases the partially built map is discarded.
func UnmarshalNode[K comparable, V any](node *yaml.Node, codec keycodec.Codec[K, string]) (*pairmap.Map[K, V], error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d", ErrNotAMapping, node.Line)
	}

	m := pairmap.WithCapacity[K, V](len(node.Content) / 2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var wire string
		if err := keyNode.Decode(&wire); err != nil {
			return nil, err
		}

		key, err := codec.DecodeKey(wire)
		if err != nil {
			return nil, fmt.Errorf("yamlmap: decode key %q: %w", wire, err)
		}

		var value V
		if err := valueNode.Decode(&value); err != nil {
			return nil, err
		}

		m.Insert(key, value)
	}

	return m, nil
}

// Map is a pair-backed map with string keys and no key transformation that
// plugs directly into yaml.v3 marshaling:
//
//	type Config struct {
//	    Env yamlmap.Map[string] `yaml:"env"`
//	}
type Map[V any] struct {
	pairmap.Map[string, V]
}

var (
	_ yaml.Marshaler   = (*Map[any])(nil)
	_ yaml.Unmarshaler = (*Map[any])(nil)
)

// MarshalYAML implements yaml.Marshaler, emitting entries in stored order.
func (m Map[V]) MarshalYAML() (any, error) {
	return MarshalNode(&m.Map, keycodec.Identity[string]())
}

// UnmarshalYAML implements yaml.Unmarshaler, preserving the document's key
// order. On error the receiver is left unchanged.
func (m *Map[V]) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := UnmarshalNode[string, V](node, keycodec.Identity[string]())
	if err != nil {
		return err
	}

	m.Map = *decoded

	return nil
}
