package wire

import "strings"

// Operation is a bitmask of protocol verbs. A Target carries exactly
// one verb per call, but handlers may advertise combinations.
type Operation uint16

const (
	// OpRead retrieves resource values.
	OpRead Operation = 1 << iota

	// OpWrite replaces resource values.
	OpWrite

	// OpExecute triggers a resource action.
	OpExecute

	// OpCreate instantiates a new object instance.
	OpCreate

	// OpDelete removes an object instance.
	OpDelete

	// OpDiscover lists registered resources and their attributes.
	OpDiscover

	// OpObserve registers for change notifications.
	OpObserve

	// OpWriteAttributes sets observation attributes on a target.
	OpWriteAttributes

	// OpQueryInstanceCount asks for the number of object instances.
	OpQueryInstanceCount
)

// String returns the names of all verbs present in the mask.
func (o Operation) String() string {
	names := []struct {
		op   Operation
		name string
	}{
		{OpRead, "Read"},
		{OpWrite, "Write"},
		{OpExecute, "Execute"},
		{OpCreate, "Create"},
		{OpDelete, "Delete"},
		{OpDiscover, "Discover"},
		{OpObserve, "Observe"},
		{OpWriteAttributes, "WriteAttributes"},
		{OpQueryInstanceCount, "QueryInstanceCount"},
	}

	var parts []string
	for _, n := range names {
		if o&n.op != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// NoID marks an absent object, instance or resource identifier.
const NoID uint16 = 0xFFFF

// ContentType hints carried alongside a target.
type ContentType uint16

const (
	// ContentPlainText is decimal ASCII text.
	ContentPlainText ContentType = 0

	// ContentOpaque is a raw byte payload.
	ContentOpaque ContentType = 42

	// ContentTLV is the type-length-value binary format.
	ContentTLV ContentType = 11542
)

// Target addresses one protocol call. It is produced fresh for each
// call and never persisted.
type Target struct {
	// Operation is the verb being performed.
	Operation Operation

	// ContentType hints at the payload encoding.
	ContentType ContentType

	// ObjectID, InstanceID, ResourceID and ResourceInstanceID address
	// the call; NoID marks levels the call does not address.
	ObjectID           uint16
	InstanceID         uint16
	ResourceID         uint16
	ResourceInstanceID uint16

	// Block transfer fields for payloads split across messages.
	BlockNumber uint32
	BlockSize   uint16
	LastBlock   bool

	// AltPath names a non-default URI prefix when set.
	AltPath string
}

// NewTarget builds a target for a single-resource call.
func NewTarget(op Operation, objectID, instanceID, resourceID uint16) *Target {
	return &Target{
		Operation:          op,
		ObjectID:           objectID,
		InstanceID:         instanceID,
		ResourceID:         resourceID,
		ResourceInstanceID: NoID,
	}
}
