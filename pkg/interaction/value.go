package interaction

import (
	"fmt"
	"strconv"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/wire"
)

// Value is a typed resource value crossing the adapter boundary.
// Exactly one of the payload fields is meaningful, selected by Type.
type Value struct {
	// Type is the resource data type of the value.
	Type model.ResourceType

	// Int carries integer and time values.
	Int int64

	// Bool carries boolean values.
	Bool bool

	// Bytes carries string, opaque and unknown values.
	Bytes []byte
}

// IntValue builds an integer value.
func IntValue(v int64) Value {
	return Value{Type: model.ResourceTypeInteger, Int: v}
}

// TimeValue builds a time value (seconds since the epoch).
func TimeValue(v int64) Value {
	return Value{Type: model.ResourceTypeTime, Int: v}
}

// BoolValue builds a boolean value.
func BoolValue(v bool) Value {
	return Value{Type: model.ResourceTypeBoolean, Bool: v}
}

// StringValue builds a string value.
func StringValue(v string) Value {
	return Value{Type: model.ResourceTypeString, Bytes: []byte(v)}
}

// OpaqueValue builds an opaque byte value.
func OpaqueValue(v []byte) Value {
	return Value{Type: model.ResourceTypeOpaque, Bytes: v}
}

// String renders the value for logging.
func (v Value) String() string {
	switch v.Type {
	case model.ResourceTypeInteger, model.ResourceTypeTime:
		return strconv.FormatInt(v.Int, 10)
	case model.ResourceTypeBoolean:
		return strconv.FormatBool(v.Bool)
	case model.ResourceTypeString:
		return string(v.Bytes)
	default:
		return fmt.Sprintf("%x", v.Bytes)
	}
}

// ResourceValue pairs a resource id with its typed value. Pending
// marks a read the handler accepted but will answer later; the value
// is not meaningful until the protocol engine polls the handler for
// the result.
type ResourceValue struct {
	ID      uint16
	Value   Value
	Pending bool
}

// decodeValue interprets the scratch buffer a read handler produced as
// a typed value. Integer and time buffers carry the minimal-length
// binary encoding, booleans a single byte, strings and opaques raw
// bytes. Floats are not supported by the read conversion.
func decodeValue(resType model.ResourceType, buf []byte) (Value, wire.ResultKind) {
	switch resType {
	case model.ResourceTypeInteger, model.ResourceTypeTime:
		n, err := wire.DecodeInt(buf)
		if err != nil {
			return Value{}, wire.ResultGeneralError
		}
		return Value{Type: resType, Int: n}, wire.ResultCompleted
	case model.ResourceTypeBoolean:
		if len(buf) != 1 {
			return Value{}, wire.ResultGeneralError
		}
		return Value{Type: resType, Bool: buf[0] != 0}, wire.ResultCompleted
	case model.ResourceTypeString, model.ResourceTypeOpaque, model.ResourceTypeUnknown:
		out := make([]byte, len(buf))
		copy(out, buf)
		return Value{Type: resType, Bytes: out}, wire.ResultCompleted
	default:
		// Floats are not representable on the read path.
		return Value{}, wire.ResultGeneralError
	}
}

// encodeValue serializes a typed value into the byte convention the
// write handlers expect. Integer and time values are encoded as
// decimal ASCII text, not the binary form the read path uses; the
// resource-handler catalogue was written against the text convention
// and changing it would alter wire-visible behavior.
func encodeValue(v Value) ([]byte, wire.ResultKind) {
	switch v.Type {
	case model.ResourceTypeInteger, model.ResourceTypeTime:
		return strconv.AppendInt(nil, v.Int, 10), wire.ResultCompleted
	case model.ResourceTypeBoolean:
		if v.Bool {
			return []byte{1}, wire.ResultCompleted
		}
		return []byte{0}, wire.ResultCompleted
	case model.ResourceTypeString, model.ResourceTypeOpaque, model.ResourceTypeUnknown:
		return v.Bytes, wire.ResultCompleted
	default:
		return nil, wire.ResultGeneralError
	}
}
