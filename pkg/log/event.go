package log

import "time"

// Event is one structured client-core event. CBOR encoding uses
// integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the transport connection, if any.
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event.
	Category Category `cbor:"3,keyasint"`

	// EndpointName is the client endpoint name, if configured.
	EndpointName string `cbor:"4,keyasint,omitempty"`

	// ServerAddr is the peer address, if known.
	ServerAddr string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Operation   *OperationEvent   `cbor:"11,keyasint,omitempty"`
	Credential  *CredentialEvent  `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEvent       `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a session state transition.
	CategoryState Category = 0

	// CategoryOperation indicates a protocol operation outcome.
	CategoryOperation Category = 1

	// CategoryCredential indicates credential staging or commit.
	CategoryCredential Category = 2

	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryOperation:
		return "OPERATION"
	case CategoryCredential:
		return "CREDENTIAL"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a session state transition.
type StateChangeEvent struct {
	// OldState and NewState are the state names.
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`

	// Reason is an optional human-readable cause.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// OperationEvent captures the outcome of one protocol operation.
type OperationEvent struct {
	// Operation is the verb name.
	Operation string `cbor:"1,keyasint"`

	// ObjectID, InstanceID and ResourceID address the call.
	ObjectID   uint16 `cbor:"2,keyasint"`
	InstanceID uint16 `cbor:"3,keyasint"`
	ResourceID uint16 `cbor:"4,keyasint,omitempty"`

	// Status is the dotted CoAP-like status.
	Status string `cbor:"5,keyasint"`
}

// CredentialEvent captures a credential staging or commit outcome.
type CredentialEvent struct {
	// Action is "stage" or "commit".
	Action string `cbor:"1,keyasint"`

	// Role is the server role name.
	Role string `cbor:"2,keyasint,omitempty"`

	// Succeeded reports the outcome.
	Succeeded bool `cbor:"3,keyasint"`
}

// ErrorEvent captures an error at any layer.
type ErrorEvent struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context names where the error occurred.
	Context string `cbor:"2,keyasint,omitempty"`
}
