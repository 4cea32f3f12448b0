package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Codec errors.
var (
	ErrCodecLength   = errors.New("integer buffer must be 1, 2, 4 or 8 bytes")
	ErrCodecOverflow = errors.New("value not representable in 8 signed bytes")
)

// EncodeInt encodes v as a big-endian signed integer using the smallest
// of 1, 2, 4 or 8 bytes that represents it without sign loss. This is
// the canonical minimal-length integer representation of the data
// model.
func EncodeInt(v int64) []byte {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return []byte{byte(v)}
	case v >= math.MinInt16 && v <= math.MaxInt16:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(v))
		return b
	case v >= math.MinInt32 && v <= math.MaxInt32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(v))
		return b
	default:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(v))
		return b
	}
}

// EncodeUint encodes v like EncodeInt, promoting to the next width when
// the value would overflow into the sign bit of its natural width. A
// value above math.MaxInt64 cannot be represented in 8 signed bytes and
// fails with ErrCodecOverflow; no partial output is produced.
func EncodeUint(v uint64) ([]byte, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", ErrCodecOverflow, v)
	}
	return EncodeInt(int64(v)), nil
}

// DecodeInt interprets a 1, 2, 4 or 8 byte big-endian buffer as a
// signed integer of the matching width. Any other length fails with
// ErrCodecLength.
func DecodeInt(b []byte) (int64, error) {
	switch len(b) {
	case 1:
		return int64(int8(b[0])), nil
	case 2:
		return int64(int16(binary.BigEndian.Uint16(b))), nil
	case 4:
		return int64(int32(binary.BigEndian.Uint32(b))), nil
	case 8:
		return int64(binary.BigEndian.Uint64(b)), nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrCodecLength, len(b))
	}
}
