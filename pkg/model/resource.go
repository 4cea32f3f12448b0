package model

import "github.com/lwm2m-protocol/lwm2m-go/pkg/wire"

// ResourceType is the data type of a resource value.
type ResourceType uint8

const (
	ResourceTypeUnknown ResourceType = iota
	ResourceTypeInteger
	ResourceTypeBoolean
	ResourceTypeString
	ResourceTypeOpaque
	ResourceTypeFloat
	ResourceTypeTime
)

// String returns the resource type name.
func (t ResourceType) String() string {
	names := []string{"unknown", "integer", "boolean", "string", "opaque", "float", "time"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// ChangeFunc notifies the protocol engine that a resource value changed
// outside a request, e.g. for observe reporting. Read handlers receive
// it so asynchronous results can be reported later.
type ChangeFunc func(target *wire.Target)

// ReadHandler produces the current resource value into a byte buffer.
// Integer and time resources use the minimal-length binary encoding,
// boolean resources a single byte, string and opaque resources raw
// bytes.
type ReadHandler func(target *wire.Target, notify ChangeFunc) ([]byte, wire.ResultKind)

// WriteHandler consumes a new resource value. Integer values arrive as
// decimal ASCII text, not the binary form the read path produces; the
// asymmetry is inherited from the resource-handler catalogue.
type WriteHandler func(target *wire.Target, payload []byte) wire.ResultKind

// ExecuteHandler triggers a resource action with optional arguments.
type ExecuteHandler func(target *wire.Target, args []byte) wire.ResultKind

// ResourceDescriptor statically describes one resource of an object.
// A nil handler means the corresponding operation is unsupported.
type ResourceDescriptor struct {
	// ID is the resource identifier within the object.
	ID uint16

	// Type is the data type of the resource value.
	Type ResourceType

	// MaxInstances is the maximum resource-instance count.
	MaxInstances uint16

	// Read, Write and Execute are the optional operation handlers.
	Read    ReadHandler
	Write   WriteHandler
	Execute ExecuteHandler
}

// Operations returns the verbs this resource supports.
func (d *ResourceDescriptor) Operations() wire.Operation {
	var ops wire.Operation
	if d.Read != nil {
		ops |= wire.OpRead
	}
	if d.Write != nil {
		ops |= wire.OpWrite
	}
	if d.Execute != nil {
		ops |= wire.OpExecute
	}
	return ops
}

// Resource is the runtime node built from a ResourceDescriptor. The
// registry owns all resource nodes.
type Resource struct {
	desc ResourceDescriptor
}

// ID returns the resource identifier.
func (r *Resource) ID() uint16 {
	return r.desc.ID
}

// Type returns the resource data type.
func (r *Resource) Type() ResourceType {
	return r.desc.Type
}

// ReadHandler returns the read handler, or nil if reading is
// unsupported.
func (r *Resource) ReadHandler() ReadHandler {
	return r.desc.Read
}

// WriteHandler returns the write handler, or nil if writing is
// unsupported.
func (r *Resource) WriteHandler() WriteHandler {
	return r.desc.Write
}

// ExecuteHandler returns the execute handler, or nil if execution is
// unsupported.
func (r *Resource) ExecuteHandler() ExecuteHandler {
	return r.desc.Execute
}
