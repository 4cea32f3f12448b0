package objects

import (
	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/security"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/wire"
)

// Security object resource ids.
const (
	// SecurityResServerURI is the server address.
	SecurityResServerURI uint16 = 0

	// SecurityResIsBootstrap flags the bootstrap-server instance.
	SecurityResIsBootstrap uint16 = 1

	// SecurityResSecurityMode is the transport security mode.
	SecurityResSecurityMode uint16 = 2

	// SecurityResIdentity is the PSK identity.
	SecurityResIdentity uint16 = 3

	// SecurityResServerPublicKey is the server public key or raw
	// public key, unused in PSK mode.
	SecurityResServerPublicKey uint16 = 4

	// SecurityResSecretKey is the PSK secret key.
	SecurityResSecretKey uint16 = 5
)

// SecurityModePSK is the only security mode this client supports.
const SecurityModePSK int64 = 0

// roleForInstance maps a security-object instance to its server role.
// Instance 0 is the bootstrap server, instance 1 the device-management
// server; anything else is out of range.
func roleForInstance(id uint16) (security.Role, bool) {
	switch id {
	case model.InstanceBootstrap:
		return security.RoleBootstrap, true
	case model.InstanceDeviceManagement:
		return security.RoleDeviceManagement, true
	default:
		return 0, false
	}
}

// NewSecurityObject builds the security object descriptor. Writes to
// the address, identity and secret resources stage credentials into
// the given store under the role selected by the target instance.
func NewSecurityObject(store *security.CredentialStore) model.ObjectDescriptor {
	readStaged := func(get func(security.Role) []byte) model.ReadHandler {
		return func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
			role, ok := roleForInstance(target.InstanceID)
			if !ok {
				return nil, wire.ResultIncorrectRange
			}
			return get(role), wire.ResultCompleted
		}
	}

	writeStaged := func(stage func(security.Role, []byte)) model.WriteHandler {
		return func(target *wire.Target, payload []byte) wire.ResultKind {
			role, ok := roleForInstance(target.InstanceID)
			if !ok {
				return wire.ResultIncorrectRange
			}
			if len(payload) == 0 {
				return wire.ResultInvalidArgument
			}
			stage(role, payload)
			return wire.ResultCompleted
		}
	}

	return model.ObjectDescriptor{
		ID:           model.ObjectIDSecurity,
		MaxInstances: 2,
		Resources: []model.ResourceDescriptor{
			{
				ID:    SecurityResServerURI,
				Type:  model.ResourceTypeString,
				Read:  readStaged(store.StagedServerURI),
				Write: writeStaged(store.StageServerURI),
			},
			{
				ID:   SecurityResIsBootstrap,
				Type: model.ResourceTypeBoolean,
				Read: func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
					if _, ok := roleForInstance(target.InstanceID); !ok {
						return nil, wire.ResultIncorrectRange
					}
					if target.InstanceID == model.InstanceBootstrap {
						return []byte{1}, wire.ResultCompleted
					}
					return []byte{0}, wire.ResultCompleted
				},
			},
			{
				ID:   SecurityResSecurityMode,
				Type: model.ResourceTypeInteger,
				Read: func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
					if _, ok := roleForInstance(target.InstanceID); !ok {
						return nil, wire.ResultIncorrectRange
					}
					return wire.EncodeInt(SecurityModePSK), wire.ResultCompleted
				},
			},
			{
				// PSK identity is write-only; the absent read handler
				// makes reads fail with "not found".
				ID:    SecurityResIdentity,
				Type:  model.ResourceTypeOpaque,
				Write: writeStaged(store.StageIdentity),
			},
			{
				ID:   SecurityResServerPublicKey,
				Type: model.ResourceTypeOpaque,
				Write: func(target *wire.Target, payload []byte) wire.ResultKind {
					// Raw public keys are not used in PSK mode.
					return wire.ResultNotImplemented
				},
			},
			{
				ID:    SecurityResSecretKey,
				Type:  model.ResourceTypeOpaque,
				Write: writeStaged(store.StageSecret),
			},
		},
	}
}
