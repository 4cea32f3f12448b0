package model

import (
	"errors"
	"sort"
)

// Well-known object identifiers.
const (
	// ObjectIDSecurity is the security object; instance 0 is reserved
	// for the bootstrap server, instance 1 for the device-management
	// server.
	ObjectIDSecurity uint16 = 0

	// ObjectIDServer is the device-management server object.
	ObjectIDServer uint16 = 1

	// ObjectIDAccessControl is the access control object.
	ObjectIDAccessControl uint16 = 2

	// ObjectIDDevice is the device information object.
	ObjectIDDevice uint16 = 3
)

// Security object instance roles. Load-bearing throughout the security
// resource handlers.
const (
	// InstanceBootstrap addresses the bootstrap server.
	InstanceBootstrap uint16 = 0

	// InstanceDeviceManagement addresses the device-management server.
	InstanceDeviceManagement uint16 = 1
)

// InstancesUnbounded marks an object with no declared instance limit.
const InstancesUnbounded uint16 = 0xFFFF

// Object errors.
var (
	ErrInstanceNotFound = errors.New("object instance not found")
	ErrInstanceExists   = errors.New("object instance already exists")
	ErrInstanceLimit    = errors.New("object instance limit reached")
)

// ObjectDescriptor statically describes one object and its resources.
type ObjectDescriptor struct {
	// ID is the object identifier.
	ID uint16

	// MaxInstances is the maximum instance count, or
	// InstancesUnbounded for implicitly multi-instance objects.
	MaxInstances uint16

	// Resources is the ordered resource table.
	Resources []ResourceDescriptor
}

// Object is the runtime node built from an ObjectDescriptor. The
// registry owns all object nodes and their resources.
type Object struct {
	id           uint16
	maxInstances uint16
	resources    []*Resource
	instances    map[uint16]struct{}
}

// ID returns the object identifier.
func (o *Object) ID() uint16 {
	return o.id
}

// MaxInstances returns the declared instance limit.
func (o *Object) MaxInstances() uint16 {
	return o.maxInstances
}

// Resources returns the resources in registry order. The slice is
// owned by the object and must not be modified.
func (o *Object) Resources() []*Resource {
	return o.resources
}

// FindResource returns the resource with the given id. Catalogue sizes
// are tens of entries, so a linear scan is fine.
func (o *Object) FindResource(id uint16) (*Resource, error) {
	for _, r := range o.resources {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, ErrResourceNotFound
}

// HasInstance returns true if the given instance exists.
func (o *Object) HasInstance(id uint16) bool {
	_, ok := o.instances[id]
	return ok
}

// InstanceCount returns the number of instances.
func (o *Object) InstanceCount() int {
	return len(o.instances)
}

// Instances returns the instance ids in ascending order.
func (o *Object) Instances() []uint16 {
	ids := make([]uint16, 0, len(o.instances))
	for id := range o.instances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AddInstance creates a new instance with the given id.
func (o *Object) AddInstance(id uint16) error {
	if _, ok := o.instances[id]; ok {
		return ErrInstanceExists
	}
	if o.maxInstances != InstancesUnbounded && len(o.instances) >= int(o.maxInstances) {
		return ErrInstanceLimit
	}
	o.instances[id] = struct{}{}
	return nil
}

// RemoveInstance deletes the instance with the given id.
func (o *Object) RemoveInstance(id uint16) error {
	if _, ok := o.instances[id]; !ok {
		return ErrInstanceNotFound
	}
	delete(o.instances, id)
	return nil
}
