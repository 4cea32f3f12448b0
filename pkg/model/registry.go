package model

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrResourceNotFound  = errors.New("resource not found")
	ErrDuplicateObject   = errors.New("duplicate object id")
	ErrDuplicateResource = errors.New("duplicate resource id")
)

// RegisterOptions controls the conditional instancing policy applied
// while building the runtime list.
type RegisterOptions struct {
	// DeviceManagementProvisioned is true when a device-management
	// server is already configured. Without it the server object gets
	// no instances (forcing a bootstrap-only session) and the security
	// object gets only the bootstrap instance.
	DeviceManagementProvisioned bool
}

// Registry holds the runtime object list built from the static
// catalogue. It exclusively owns all runtime nodes.
//
// The registry is part of the single-threaded client core; callers
// must serialize access to it.
type Registry struct {
	objects []*Object
	index   map[uint16]*Object
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[uint16]*Object),
	}
}

// Register merges the built-in object table with an optional
// caller-supplied table into the runtime list. Object ids must be
// unique across both tables and resource ids unique within an object;
// a violation leaves the registry in its prior state and reports an
// error, so the engine is never configured with a partial table.
func (r *Registry) Register(builtin, caller []ObjectDescriptor, opts RegisterOptions) error {
	merged := make([]ObjectDescriptor, 0, len(builtin)+len(caller))
	merged = append(merged, builtin...)
	merged = append(merged, caller...)

	objects := make([]*Object, 0, len(merged))
	index := make(map[uint16]*Object, len(merged))

	for i := range merged {
		desc := &merged[i]
		if _, exists := index[desc.ID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicateObject, desc.ID)
		}
		// Ids must also be unique against objects registered by an
		// earlier call.
		if _, exists := r.index[desc.ID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicateObject, desc.ID)
		}

		obj, err := buildObject(desc, opts)
		if err != nil {
			return err
		}
		objects = append(objects, obj)
		index[desc.ID] = obj
	}

	// Swap in the fully built list only after every object validated.
	r.objects = append(r.objects, objects...)
	for id, obj := range index {
		r.index[id] = obj
	}
	return nil
}

// buildObject creates the runtime node for one descriptor and applies
// the instancing policy.
func buildObject(desc *ObjectDescriptor, opts RegisterOptions) (*Object, error) {
	obj := &Object{
		id:           desc.ID,
		maxInstances: desc.MaxInstances,
		resources:    make([]*Resource, 0, len(desc.Resources)),
		instances:    make(map[uint16]struct{}),
	}

	seen := make(map[uint16]struct{}, len(desc.Resources))
	for _, rd := range desc.Resources {
		if _, dup := seen[rd.ID]; dup {
			return nil, fmt.Errorf("%w: object %d resource %d", ErrDuplicateResource, desc.ID, rd.ID)
		}
		seen[rd.ID] = struct{}{}
		obj.resources = append(obj.resources, &Resource{desc: rd})
	}

	switch {
	case desc.ID == ObjectIDSecurity:
		// The bootstrap instance always exists; the device-management
		// instance only once a server is provisioned.
		obj.instances[InstanceBootstrap] = struct{}{}
		if opts.DeviceManagementProvisioned {
			obj.instances[InstanceDeviceManagement] = struct{}{}
		}
	case desc.ID == ObjectIDServer && !opts.DeviceManagementProvisioned:
		// No device-management server yet: zero instances, forcing a
		// bootstrap-only session.
	case desc.MaxInstances == InstancesUnbounded:
		// Implicitly multi-instance; instances arrive via Create.
	default:
		obj.instances[0] = struct{}{}
	}

	return obj, nil
}

// FindObject returns the object with the given id.
func (r *Registry) FindObject(id uint16) (*Object, error) {
	obj, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrObjectNotFound, id)
	}
	return obj, nil
}

// Objects returns the runtime objects in registration order.
func (r *Registry) Objects() []*Object {
	return r.objects
}

// UnregisterAll releases every runtime node. It is idempotent and safe
// to call on a partially built registry.
func (r *Registry) UnregisterAll() {
	r.objects = nil
	r.index = make(map[uint16]*Object)
}
