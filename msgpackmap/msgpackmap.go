// Package msgpackmap serializes pair-backed maps to and from msgpack maps
// while preserving entry order.
//
// msgpack map headers carry the entry count followed by key/value pairs in
// stream order, so an ordered encode and decode falls out of walking the
// stream one entry at a time. Unlike the text adapters, msgpack map keys
// can be any encodable type, so the wire key type W stays generic: a
// keycodec.Codec[K, W] bridges the in-memory key type and whatever the
// wire expects.
package msgpackmap

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/amp-labs/pairmap"
	"github.com/amp-labs/pairmap/keycodec"
)

// Marshal serializes the map as a msgpack map, emitting entries in stored
// order. Each key is passed through the codec before being written; a
// codec error aborts the call.
func Marshal[K comparable, W any, V any](m *pairmap.Map[K, V], codec keycodec.Codec[K, W]) ([]byte, error) {
	var buf bytes.Buffer

	if err := Encode(&buf, m, codec); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode serializes the map as a msgpack map to the given writer. If the
// codec or the writer fails mid-stream, bytes written so far are not
// rolled back; the output of a failed call is undefined.
func Encode[K comparable, W any, V any](w io.Writer, m *pairmap.Map[K, V], codec keycodec.Codec[K, W]) error {
	return EncodeTo(msgpack.NewEncoder(w), m, codec)
}

// EncodeTo serializes the map through an existing encoder: the map length
// header first, then each key/value pair in stored order. This is the
// entry point for callers already driving an encoder, e.g. inside a custom
// EncodeMsgpack.
func EncodeTo[K comparable, W any, V any](enc *msgpack.Encoder, m *pairmap.Map[K, V], codec keycodec.Codec[K, W]) error {
	if m == nil {
		return enc.EncodeMapLen(0)
	}

	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}

	for key, value := range m.Seq() {
		wire, err := codec.EncodeKey(key)
		if err != nil {
			return fmt.Errorf("msgpackmap: encode key %v: %w", key, err)
		}

		if err := enc.Encode(wire); err != nil {
			return err
		}

		if err := enc.Encode(value); err != nil {
			return err
		}
	}

	return nil
}

// Unmarshal deserializes a msgpack map into a new map, preserving the
// order in which keys appear on the wire and keeping duplicate keys as
// separate entries. On any error no map is returned.
func Unmarshal[K comparable, W any, V any](data []byte, codec keycodec.Codec[K, W]) (*pairmap.Map[K, V], error) {
	return Decode[K, W, V](bytes.NewReader(data), codec)
}

// Decode deserializes a msgpack map from the given reader into a new map.
// See Unmarshal.
func Decode[K comparable, W any, V any](r io.Reader, codec keycodec.Codec[K, W]) (*pairmap.Map[K, V], error) {
	return DecodeFrom[K, W, V](msgpack.NewDecoder(r), codec)
}

// DecodeFrom deserializes a msgpack map through an existing decoder,
// consuming exactly one map's worth of the stream. A nil map on the wire
// decodes as an empty map. Decoder errors are propagated unchanged; a
// codec error is wrapped with the offending wire key. In both cases the
// partially built map is discarded.
func DecodeFrom[K comparable, W any, V any](dec *msgpack.Decoder, codec keycodec.Codec[K, W]) (*pairmap.Map[K, V], error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		return pairmap.New[K, V](), nil
	}

	m := pairmap.WithCapacity[K, V](n)

	for range n {
		var wire W
		if err := dec.Decode(&wire); err != nil {
			return nil, err
		}

		key, err := codec.DecodeKey(wire)
		if err != nil {
			return nil, fmt.Errorf("msgpackmap: decode key %v: %w", wire, err)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		m.Insert(key, value)
	}

	return m, nil
}

// Map is a pair-backed map with untransformed keys that plugs directly
// into msgpack marshaling:
//
//	type Snapshot struct {
//	    Counters msgpackmap.Map[string, int64]
//	}
type Map[K comparable, V any] struct {
	pairmap.Map[K, V]
}

var (
	_ msgpack.CustomEncoder = (*Map[string, any])(nil)
	_ msgpack.CustomDecoder = (*Map[string, any])(nil)
)

// EncodeMsgpack implements msgpack.CustomEncoder, emitting entries in
// stored order.
func (m *Map[K, V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return EncodeTo(enc, &m.Map, keycodec.Identity[K]())
}

// DecodeMsgpack implements msgpack.CustomDecoder, preserving the wire's
// key order. On error the receiver is left unchanged.
func (m *Map[K, V]) DecodeMsgpack(dec *msgpack.Decoder) error {
	decoded, err := DecodeFrom[K, K, V](dec, keycodec.Identity[K]())
	if err != nil {
		return err
	}

	m.Map = *decoded

	return nil
}
