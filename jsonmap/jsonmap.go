// Package jsonmap serializes pair-backed maps to and from JSON objects
// while preserving entry order.
//
// The standard library decodes JSON objects into Go maps, discarding key
// order and collapsing duplicates. This adapter instead walks the object's
// token stream one entry at a time: each wire key passes through a
// keycodec.Codec and the decoded entry is appended to a pairmap.Map in
// arrival order. Serialization is symmetric, emitting entries in the map's
// stored order, so with an identity codec a decode/encode round trip
// reproduces the original object byte order exactly.
//
// JSON object keys are always strings, so the wire key type is fixed to
// string; pick a codec with any in-memory key type you need (e.g.
// keycodec.Int64String for int64 keys).
package jsonmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/pairmap"
	"github.com/amp-labs/pairmap/keycodec"
)

// ErrNotAnObject is returned when the input's top-level value is not a
// JSON object.
var ErrNotAnObject = errors.New("jsonmap: input is not a JSON object")

// Marshal serializes the map as a compact JSON object, emitting entries in
// stored order. Each key is passed through the codec before being written;
// a codec error aborts the call. A nil or empty map marshals as "{}".
func Marshal[K comparable, V any](m *pairmap.Map[K, V], codec keycodec.Codec[K, string]) ([]byte, error) {
	var buf bytes.Buffer

	if err := Encode(&buf, m, codec); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode serializes the map as a compact JSON object to the given writer.
// If the codec or the writer fails mid-stream, entries written so far are
// not rolled back; the output of a failed call is undefined.
func Encode[K comparable, V any](w io.Writer, m *pairmap.Map[K, V], codec keycodec.Codec[K, string]) error {
	var buf bytes.Buffer

	buf.WriteByte('{')

	if m != nil {
		first := true

		for key, value := range m.Seq() {
			wire, err := codec.EncodeKey(key)
			if err != nil {
				return fmt.Errorf("jsonmap: encode key %v: %w", key, err)
			}

			if !first {
				buf.WriteByte(',')
			}

			first = false

			keyBytes, err := json.Marshal(wire)
			if err != nil {
				return err
			}

			buf.Write(keyBytes)
			buf.WriteByte(':')

			valueBytes, err := json.Marshal(value)
			if err != nil {
				return err
			}

			buf.Write(valueBytes)
		}
	}

	buf.WriteByte('}')

	_, err := w.Write(buf.Bytes())

	return err
}

// Unmarshal deserializes a JSON object into a new map, preserving the
// order in which keys appear in the input and keeping duplicate keys as
// separate entries. Each wire key is passed through the codec before
// insertion. On any error no map is returned.
func Unmarshal[K comparable, V any](data []byte, codec keycodec.Codec[K, string]) (*pairmap.Map[K, V], error) {
	return Decode[K, V](bytes.NewReader(data), codec)
}

// Decode deserializes a JSON object from the given reader into a new map.
// See Unmarshal.
func Decode[K comparable, V any](r io.Reader, codec keycodec.Codec[K, string]) (*pairmap.Map[K, V], error) {
	return DecodeFrom[K, V](json.NewDecoder(r), codec)
}

// DecodeFrom deserializes a JSON object from an existing decoder,
// consuming exactly one object's worth of tokens. This is the entry point
// for callers that are already walking a token stream, e.g. inside a
// custom UnmarshalJSON. Decoder errors are propagated unchanged; a codec
// error is wrapped with the offending wire key. In both cases the
// partially built map is discarded.
func DecodeFrom[K comparable, V any](dec *json.Decoder, codec keycodec.Codec[K, string]) (*pairmap.Map[K, V], error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: got %v", ErrNotAnObject, tok)
	}

	m := pairmap.New[K, V]()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		// Inside an object, the decoder only yields string tokens in key
		// position.
		wire, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected key token %v", ErrNotAnObject, tok)
		}

		key, err := codec.DecodeKey(wire)
		if err != nil {
			return nil, fmt.Errorf("jsonmap: decode key %q: %w", wire, err)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		m.Insert(key, value)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return m, nil
}

// Map is a pair-backed map with string keys and no key transformation that
// plugs directly into encoding/json. Embed it in a struct or use it as a
// field type wherever an order-preserving JSON object is needed:
//
//	type Document struct {
//	    Fields jsonmap.Map[any] `json:"fields"`
//	}
type Map[V any] struct {
	pairmap.Map[string, V]
}

var (
	_ json.Marshaler   = (*Map[any])(nil)
	_ json.Unmarshaler = (*Map[any])(nil)
)

// MarshalJSON implements json.Marshaler, emitting entries in stored order.
func (m Map[V]) MarshalJSON() ([]byte, error) {
	return Marshal(&m.Map, keycodec.Identity[string]())
}

// UnmarshalJSON implements json.Unmarshaler, preserving the input's key
// order. A JSON null leaves the map untouched. On error the receiver is
// left unchanged.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	decoded, err := Unmarshal[string, V](data, keycodec.Identity[string]())
	if err != nil {
		return err
	}

	m.Map = *decoded

	return nil
}
