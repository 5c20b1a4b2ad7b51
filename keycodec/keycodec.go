// Package keycodec defines the key transformation boundary used when
// serializing and deserializing pair-backed maps.
//
// A Codec intercepts each key exactly once at the serialization boundary:
// EncodeKey as the entry is written to the wire, DecodeKey as the wire key
// is read back, before the entry ever reaches storage. Transforming or
// validating keys here, rather than in a second pass over the finished map,
// means a bad key is rejected before it occupies storage or participates in
// replace semantics. The container itself knows nothing about codecs.
//
// For a well-behaved codec, DecodeKey(EncodeKey(k)) == k for every key in
// its domain; that relation is what guarantees serialize/deserialize round
// trips reproduce the original map. A codec that breaks the relation (for
// example, lowercasing keys on encode) trades round-trip fidelity for
// normalization, which is legitimate but must be documented by the codec.
package keycodec

import "github.com/amp-labs/amp-common/zero"

// Codec transforms keys between their in-memory representation K and their
// wire representation W.
//
// Both methods must be pure functions of their argument: adapters call them
// once per entry, in entry order, and assume no hidden cross-key state. A
// codec that keeps state across calls (e.g. assigning sequential ids) must
// document that behavior and reset its state at the start of each
// serialize or deserialize pass.
type Codec[K any, W any] interface {
	// EncodeKey converts an in-memory key to its wire representation.
	// Returning an error aborts the entire serialize call.
	EncodeKey(key K) (W, error)

	// DecodeKey converts a wire key back to its in-memory representation.
	// Returning an error aborts the entire deserialize call; no partially
	// built map is surfaced to the caller.
	DecodeKey(wire W) (K, error)
}

// Identity returns the default codec: both directions return the key
// unchanged and never fail. With Identity, round trips are exact by
// construction.
func Identity[K any]() Codec[K, K] {
	return identity[K]{}
}

type identity[K any] struct{}

func (identity[K]) EncodeKey(key K) (K, error) { return key, nil }

func (identity[K]) DecodeKey(wire K) (K, error) { return wire, nil }

// Funcs adapts a pair of functions into a Codec. Both functions must be
// non-nil.
//
// Example:
//
//	codec := keycodec.Funcs[string, string]{
//	    Encode: func(k string) (string, error) { return "user:" + k, nil },
//	    Decode: func(w string) (string, error) {
//	        return strings.TrimPrefix(w, "user:"), nil
//	    },
//	}
type Funcs[K any, W any] struct {
	Encode func(K) (W, error)
	Decode func(W) (K, error)
}

func (f Funcs[K, W]) EncodeKey(key K) (W, error) { return f.Encode(key) }

func (f Funcs[K, W]) DecodeKey(wire W) (K, error) { return f.Decode(wire) }

// Validated wraps a codec with a key check that runs on both directions:
// before encoding an in-memory key, and after decoding a wire key. A check
// failure aborts the surrounding serialize or deserialize call, so invalid
// keys never reach the wire or the map.
func Validated[K any, W any](inner Codec[K, W], check func(K) error) Codec[K, W] {
	return validated[K, W]{inner: inner, check: check}
}

type validated[K any, W any] struct {
	inner Codec[K, W]
	check func(K) error
}

func (v validated[K, W]) EncodeKey(key K) (W, error) {
	if err := v.check(key); err != nil {
		return zero.Value[W](), err
	}

	return v.inner.EncodeKey(key)
}

func (v validated[K, W]) DecodeKey(wire W) (K, error) {
	key, err := v.inner.DecodeKey(wire)
	if err != nil {
		return zero.Value[K](), err
	}

	if err := v.check(key); err != nil {
		return zero.Value[K](), err
	}

	return key, nil
}
