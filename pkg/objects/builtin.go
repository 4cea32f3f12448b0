package objects

import (
	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/security"
)

// Builtin returns the static built-in object table: Security, Server
// and Device, in that order. Callers pass it to Registry.Register
// together with their own object table.
func Builtin(store *security.CredentialStore, server *ServerSettings, identity *DeviceIdentity) []model.ObjectDescriptor {
	return []model.ObjectDescriptor{
		NewSecurityObject(store),
		NewServerObject(server),
		NewDeviceObject(identity),
	}
}
