package wire

import "fmt"

// Status is a CoAP-like response code returned to the protocol engine.
// The numeric layout follows CoAP code points: class<<5 | detail.
type Status uint8

const (
	// StatusCreated (2.01) indicates a new object instance was created.
	StatusCreated Status = 0x41

	// StatusDeleted (2.02) indicates an object instance was removed.
	StatusDeleted Status = 0x42

	// StatusChanged (2.04) indicates a write or execute completed.
	StatusChanged Status = 0x44

	// StatusContent (2.05) indicates a read or discover produced data.
	StatusContent Status = 0x45

	// StatusBadRequest (4.00) indicates a malformed or invalid request.
	StatusBadRequest Status = 0x80

	// StatusNotFound (4.04) indicates the target object, instance or
	// resource is not registered, or the required handler is absent.
	StatusNotFound Status = 0x84

	// StatusMethodNotAllowed (4.05) indicates the operation is not
	// permitted on the target.
	StatusMethodNotAllowed Status = 0x85

	// StatusInternalServerError (5.00) indicates a handler failure.
	StatusInternalServerError Status = 0xA0

	// StatusNotImplemented (5.01) indicates the handler exists but the
	// behavior is not implemented yet.
	StatusNotImplemented Status = 0xA1

	// StatusServiceUnavailable (5.03) indicates the handler cannot run
	// in the current state; the peer may retry later.
	StatusServiceUnavailable Status = 0xA3
)

// String returns the dotted CoAP representation of the status.
func (s Status) String() string {
	var name string
	switch s {
	case StatusCreated:
		name = "Created"
	case StatusDeleted:
		name = "Deleted"
	case StatusChanged:
		name = "Changed"
	case StatusContent:
		name = "Content"
	case StatusBadRequest:
		name = "Bad Request"
	case StatusNotFound:
		name = "Not Found"
	case StatusMethodNotAllowed:
		name = "Method Not Allowed"
	case StatusInternalServerError:
		name = "Internal Server Error"
	case StatusNotImplemented:
		name = "Not Implemented"
	case StatusServiceUnavailable:
		name = "Service Unavailable"
	default:
		name = "Unknown"
	}
	return fmt.Sprintf("%d.%02d %s", s>>5, s&0x1F, name)
}

// IsSuccess returns true for 2.xx codes.
func (s Status) IsSuccess() bool {
	return s>>5 == 2
}

// IsError returns true for 4.xx and 5.xx codes.
func (s Status) IsError() bool {
	return !s.IsSuccess()
}
