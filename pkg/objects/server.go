package objects

import (
	"strconv"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/wire"
)

// Server object resource ids.
const (
	// ServerResShortServerID links the instance to a security
	// instance.
	ServerResShortServerID uint16 = 0

	// ServerResLifetime is the registration lifetime in seconds.
	ServerResLifetime uint16 = 1

	// ServerResBinding is the transport binding ("U" for UDP).
	ServerResBinding uint16 = 7

	// ServerResUpdateTrigger forces a registration update.
	ServerResUpdateTrigger uint16 = 8
)

// DefaultLifetime is the registration lifetime used when none is
// configured, in seconds.
const DefaultLifetime int64 = 86400

// ServerSettings backs the server object resources.
//
// Owned by the single-threaded client core; handlers mutate it without
// locking.
type ServerSettings struct {
	// ShortServerID links this server to its security instance.
	ShortServerID int64

	// Lifetime is the registration lifetime in seconds.
	Lifetime int64

	// Binding is the transport binding string.
	Binding string

	// OnUpdateTrigger is called when the server forces a registration
	// update. Optional.
	OnUpdateTrigger func()
}

// NewServerSettings returns settings with protocol defaults.
func NewServerSettings(shortServerID int64) *ServerSettings {
	return &ServerSettings{
		ShortServerID: shortServerID,
		Lifetime:      DefaultLifetime,
		Binding:       "U",
	}
}

// NewServerObject builds the server object descriptor over the given
// settings.
func NewServerObject(settings *ServerSettings) model.ObjectDescriptor {
	return model.ObjectDescriptor{
		ID:           model.ObjectIDServer,
		MaxInstances: 1,
		Resources: []model.ResourceDescriptor{
			{
				ID:   ServerResShortServerID,
				Type: model.ResourceTypeInteger,
				Read: func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
					return wire.EncodeInt(settings.ShortServerID), wire.ResultCompleted
				},
			},
			{
				ID:   ServerResLifetime,
				Type: model.ResourceTypeInteger,
				Read: func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
					return wire.EncodeInt(settings.Lifetime), wire.ResultCompleted
				},
				Write: func(target *wire.Target, payload []byte) wire.ResultKind {
					// Lifetime arrives as decimal ASCII text.
					v, err := strconv.ParseInt(string(payload), 10, 64)
					if err != nil || v <= 0 {
						return wire.ResultIncorrectRange
					}
					settings.Lifetime = v
					return wire.ResultCompleted
				},
			},
			{
				ID:   ServerResBinding,
				Type: model.ResourceTypeString,
				Read: func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
					return []byte(settings.Binding), wire.ResultCompleted
				},
			},
			{
				ID:   ServerResUpdateTrigger,
				Type: model.ResourceTypeUnknown,
				Execute: func(target *wire.Target, args []byte) wire.ResultKind {
					if settings.OnUpdateTrigger == nil {
						return wire.ResultInvalidState
					}
					settings.OnUpdateTrigger()
					return wire.ResultCompleted
				},
			},
		},
	}
}
