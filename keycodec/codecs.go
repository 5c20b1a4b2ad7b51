package keycodec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Int64String is a codec for int64 keys stored as decimal strings on the
// wire, for formats whose map keys must be strings (JSON, YAML).
func Int64String() Codec[int64, string] {
	return Funcs[int64, string]{
		Encode: func(key int64) (string, error) {
			return strconv.FormatInt(key, 10), nil
		},
		Decode: func(wire string) (int64, error) {
			key, err := strconv.ParseInt(wire, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("keycodec: parse int64 key %q: %w", wire, err)
			}

			return key, nil
		},
	}
}

// TimeString is a codec for time.Time keys stored as strings in the given
// layout, e.g. time.RFC3339. Round trips are exact only if the layout
// captures everything Parse needs to rebuild the instant; sub-second
// precision or location data not present in the layout is lost.
func TimeString(layout string) Codec[time.Time, string] {
	return Funcs[time.Time, string]{
		Encode: func(key time.Time) (string, error) {
			return key.Format(layout), nil
		},
		Decode: func(wire string) (time.Time, error) {
			key, err := time.Parse(layout, wire)
			if err != nil {
				return time.Time{}, fmt.Errorf("keycodec: parse time key %q: %w", wire, err)
			}

			return key, nil
		},
	}
}

// UUIDString is a codec for uuid.UUID keys stored in canonical string form
// on the wire.
func UUIDString() Codec[uuid.UUID, string] {
	return Funcs[uuid.UUID, string]{
		Encode: func(key uuid.UUID) (string, error) {
			return key.String(), nil
		},
		Decode: func(wire string) (uuid.UUID, error) {
			key, err := uuid.Parse(wire)
			if err != nil {
				return uuid.Nil, fmt.Errorf("keycodec: parse uuid key %q: %w", wire, err)
			}

			return key, nil
		},
	}
}
