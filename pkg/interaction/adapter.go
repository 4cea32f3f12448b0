package interaction

import (
	"errors"
	"time"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/log"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/wire"
)

// Adapter fans generic protocol calls out to per-resource handlers.
//
// The adapter is part of the single-threaded client core: the protocol
// engine invokes it from one flow of control and never concurrently.
type Adapter struct {
	registry *model.Registry
	events   log.Logger
}

// NewAdapter creates an adapter over the given registry.
func NewAdapter(registry *model.Registry) *Adapter {
	return &Adapter{
		registry: registry,
		events:   log.NoopLogger{},
	}
}

// SetEventLogger routes one operation event per adapter call to
// logger. Pass nil to disable.
func (a *Adapter) SetEventLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	a.events = logger
}

func (a *Adapter) logOperation(op string, objectID, instanceID, resourceID uint16, status wire.Status) {
	a.events.Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryOperation,
		Operation: &log.OperationEvent{
			Operation:  op,
			ObjectID:   objectID,
			InstanceID: instanceID,
			ResourceID: resourceID,
			Status:     status.String(),
		},
	})
}

// soleID returns the resource id of a single-resource call, 0 for
// whole-object or multi-resource calls.
func soleID(ids []uint16) uint16 {
	if len(ids) == 1 {
		return ids[0]
	}
	return 0
}

func soleValueID(values []ResourceValue) uint16 {
	if len(values) == 1 {
		return values[0].ID
	}
	return 0
}

// noNotify is the change-notification callback passed to read
// handlers during a plain read; nothing observes the result.
func noNotify(*wire.Target) {}

// resolve verifies the target object instance is registered.
func (a *Adapter) resolve(objectID, instanceID uint16) (*model.Object, wire.Status) {
	obj, err := a.registry.FindObject(objectID)
	if err != nil {
		return nil, wire.StatusNotFound
	}
	if !obj.HasInstance(instanceID) {
		return nil, wire.StatusNotFound
	}
	return obj, wire.StatusContent
}

// resourceIDsFor synthesizes the full resource-id set for a
// whole-object call, in registry order.
func resourceIDsFor(obj *model.Object, requested []uint16) []uint16 {
	if len(requested) > 0 {
		return requested
	}
	resources := obj.Resources()
	ids := make([]uint16, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID())
	}
	return ids
}

// Read reads the requested resources of an object instance. An empty
// id set reads every registered resource in registry order. Values
// produced before a failing resource are returned alongside the
// failure status. A handler that answers asynchronously yields a
// ResourceValue marked Pending instead of a decoded value.
func (a *Adapter) Read(objectID, instanceID uint16, resourceIDs []uint16) ([]ResourceValue, wire.Status) {
	values, status := a.read(objectID, instanceID, resourceIDs)
	a.logOperation("Read", objectID, instanceID, soleID(resourceIDs), status)
	return values, status
}

func (a *Adapter) read(objectID, instanceID uint16, resourceIDs []uint16) ([]ResourceValue, wire.Status) {
	obj, status := a.resolve(objectID, instanceID)
	if status.IsError() {
		return nil, status
	}

	ids := resourceIDsFor(obj, resourceIDs)
	values := make([]ResourceValue, 0, len(ids))

	for _, id := range ids {
		res, err := obj.FindResource(id)
		if err != nil {
			return values, wire.StatusNotFound
		}
		handler := res.ReadHandler()
		if handler == nil {
			return values, wire.StatusNotFound
		}

		target := wire.NewTarget(wire.OpRead, objectID, instanceID, id)
		buf, kind := handler(target, noNotify)
		if !kind.IsSuccess() {
			return values, kind.Status(wire.OpRead)
		}
		if kind == wire.ResultAsync {
			// The handler produces the value later; there is nothing
			// to decode yet. The engine polls for the result.
			values = append(values, ResourceValue{ID: id, Pending: true})
			continue
		}

		value, decodeKind := decodeValue(res.Type(), buf)
		if decodeKind != wire.ResultCompleted {
			return values, decodeKind.Status(wire.OpRead)
		}
		values = append(values, ResourceValue{ID: id, Value: value})
	}

	return values, wire.ResultCompleted.Status(wire.OpRead)
}

// Write writes the supplied resource values to an object instance,
// stopping at the first resource that does not succeed.
func (a *Adapter) Write(objectID, instanceID uint16, values []ResourceValue) wire.Status {
	status := a.write(objectID, instanceID, values)
	a.logOperation("Write", objectID, instanceID, soleValueID(values), status)
	return status
}

func (a *Adapter) write(objectID, instanceID uint16, values []ResourceValue) wire.Status {
	obj, status := a.resolve(objectID, instanceID)
	if status.IsError() {
		return status
	}
	return a.writeResolved(obj, objectID, instanceID, values)
}

// writeResolved runs the write fan-out against an already resolved
// object; Create reuses it for the initial resource set.
func (a *Adapter) writeResolved(obj *model.Object, objectID, instanceID uint16, values []ResourceValue) wire.Status {
	if len(values) == 0 {
		// A write carries its payloads with the id set; there is
		// nothing to synthesize for a whole-object write.
		return wire.ResultInvalidArgument.Status(wire.OpWrite)
	}

	for _, rv := range values {
		res, err := obj.FindResource(rv.ID)
		if err != nil {
			return wire.StatusNotFound
		}
		handler := res.WriteHandler()
		if handler == nil {
			return wire.StatusNotFound
		}

		payload, kind := encodeValue(rv.Value)
		if kind != wire.ResultCompleted {
			return kind.Status(wire.OpWrite)
		}

		target := wire.NewTarget(wire.OpWrite, objectID, instanceID, rv.ID)
		if kind := handler(target, payload); !kind.IsSuccess() {
			return kind.Status(wire.OpWrite)
		}
	}

	return wire.ResultCompleted.Status(wire.OpWrite)
}

// Execute triggers the requested resource actions in order, stopping
// at the first one that does not succeed.
func (a *Adapter) Execute(objectID, instanceID uint16, resourceIDs []uint16, args []byte) wire.Status {
	status := a.execute(objectID, instanceID, resourceIDs, args)
	a.logOperation("Execute", objectID, instanceID, soleID(resourceIDs), status)
	return status
}

func (a *Adapter) execute(objectID, instanceID uint16, resourceIDs []uint16, args []byte) wire.Status {
	obj, status := a.resolve(objectID, instanceID)
	if status.IsError() {
		return status
	}
	if len(resourceIDs) == 0 {
		return wire.ResultInvalidArgument.Status(wire.OpExecute)
	}

	for _, id := range resourceIDs {
		res, err := obj.FindResource(id)
		if err != nil {
			return wire.StatusNotFound
		}
		handler := res.ExecuteHandler()
		if handler == nil {
			return wire.StatusNotFound
		}

		target := wire.NewTarget(wire.OpExecute, objectID, instanceID, id)
		if kind := handler(target, args); !kind.IsSuccess() {
			return kind.Status(wire.OpExecute)
		}
	}

	return wire.ResultCompleted.Status(wire.OpExecute)
}

// Create allocates a new object instance and writes the supplied
// resource set into it. On any write failure the instance is rolled
// back and the call fails with an internal error.
func (a *Adapter) Create(objectID, instanceID uint16, values []ResourceValue) wire.Status {
	status := a.create(objectID, instanceID, values)
	a.logOperation("Create", objectID, instanceID, soleValueID(values), status)
	return status
}

func (a *Adapter) create(objectID, instanceID uint16, values []ResourceValue) wire.Status {
	obj, err := a.registry.FindObject(objectID)
	if err != nil {
		return wire.StatusNotFound
	}

	if err := obj.AddInstance(instanceID); err != nil {
		if errors.Is(err, model.ErrInstanceExists) || errors.Is(err, model.ErrInstanceLimit) {
			return wire.StatusBadRequest
		}
		return wire.StatusInternalServerError
	}

	if len(values) > 0 {
		if status := a.writeResolved(obj, objectID, instanceID, values); status.IsError() {
			// Roll back the half-created instance.
			_ = obj.RemoveInstance(instanceID)
			return wire.StatusInternalServerError
		}
	}

	return wire.StatusCreated
}

// Delete removes an object instance by id.
func (a *Adapter) Delete(objectID, instanceID uint16) wire.Status {
	status := a.delete(objectID, instanceID)
	a.logOperation("Delete", objectID, instanceID, 0, status)
	return status
}

func (a *Adapter) delete(objectID, instanceID uint16) wire.Status {
	obj, err := a.registry.FindObject(objectID)
	if err != nil {
		return wire.StatusNotFound
	}
	if err := obj.RemoveInstance(instanceID); err != nil {
		return wire.StatusNotFound
	}
	return wire.StatusDeleted
}

// Discover reports the discoverable links of an object instance. The
// current contract is a pass-through: the target is resolved like any
// other verb, then the call succeeds with no data because the link
// rendering lives in the protocol engine.
func (a *Adapter) Discover(objectID, instanceID uint16, resourceIDs []uint16) ([]byte, wire.Status) {
	links, status := a.discover(objectID, instanceID, resourceIDs)
	a.logOperation("Discover", objectID, instanceID, soleID(resourceIDs), status)
	return links, status
}

func (a *Adapter) discover(objectID, instanceID uint16, resourceIDs []uint16) ([]byte, wire.Status) {
	if _, status := a.resolve(objectID, instanceID); status.IsError() {
		return nil, status
	}
	return nil, wire.ResultCompleted.Status(wire.OpDiscover)
}
