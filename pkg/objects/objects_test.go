package objects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/interaction"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/security"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/wire"
)

type catalogue struct {
	store    *security.CredentialStore
	settings *ServerSettings
	identity *DeviceIdentity
	registry *model.Registry
	adapter  *interaction.Adapter
}

func newCatalogue(t *testing.T, provisioned bool) *catalogue {
	t.Helper()

	c := &catalogue{
		store:    security.NewCredentialStore(security.NewMemoryProvider()),
		settings: NewServerSettings(123),
		identity: &DeviceIdentity{
			Manufacturer:    "Example Corp",
			ModelNumber:     "EX-100",
			SerialNumber:    "SN-0001",
			FirmwareVersion: "1.0.0",
		},
	}
	c.registry = model.NewRegistry()
	opts := model.RegisterOptions{DeviceManagementProvisioned: provisioned}
	err := c.registry.Register(Builtin(c.store, c.settings, c.identity), nil, opts)
	require.NoError(t, err)
	c.adapter = interaction.NewAdapter(c.registry)
	return c
}

func TestSecurityRoleConvention(t *testing.T) {
	c := newCatalogue(t, true)

	c.store.StageServerURI(security.RoleBootstrap, []byte("coaps://bootstrap.example:5684"))
	c.store.StageServerURI(security.RoleDeviceManagement, []byte("coaps://dm.example:5684"))

	t.Run("BootstrapInstance", func(t *testing.T) {
		values, status := c.adapter.Read(model.ObjectIDSecurity, model.InstanceBootstrap, []uint16{SecurityResServerURI})
		require.Equal(t, wire.StatusContent, status)
		assert.Equal(t, []byte("coaps://bootstrap.example:5684"), values[0].Value.Bytes)
	})

	t.Run("DeviceManagementInstance", func(t *testing.T) {
		values, status := c.adapter.Read(model.ObjectIDSecurity, model.InstanceDeviceManagement, []uint16{SecurityResServerURI})
		require.Equal(t, wire.StatusContent, status)
		assert.Equal(t, []byte("coaps://dm.example:5684"), values[0].Value.Bytes)
	})

	t.Run("OutOfRangeInstance", func(t *testing.T) {
		// The registry rejects unknown instances before the handler
		// runs; exercise the handler's own range check directly.
		desc := NewSecurityObject(c.store)
		target := wire.NewTarget(wire.OpRead, model.ObjectIDSecurity, 7, SecurityResServerURI)
		_, kind := desc.Resources[0].Read(target, func(*wire.Target) {})
		assert.Equal(t, wire.ResultIncorrectRange, kind)
	})
}

func TestSecurityWriteStagesCredentials(t *testing.T) {
	c := newCatalogue(t, false)

	status := c.adapter.Write(model.ObjectIDSecurity, model.InstanceBootstrap, []interaction.ResourceValue{
		{ID: SecurityResServerURI, Value: interaction.StringValue("coaps://bootstrap.example:5684")},
		{ID: SecurityResIdentity, Value: interaction.OpaqueValue([]byte("bs-identity"))},
		{ID: SecurityResSecretKey, Value: interaction.OpaqueValue([]byte("bs-secret"))},
	})
	require.Equal(t, wire.StatusChanged, status)

	assert.Equal(t, []byte("bs-identity"), c.store.StagedIdentity(security.RoleBootstrap))
	assert.Equal(t, []byte("bs-secret"), c.store.StagedSecret(security.RoleBootstrap))
	assert.Equal(t, []byte("coaps://bootstrap.example:5684"), c.store.StagedServerURI(security.RoleBootstrap))
	assert.Nil(t, c.store.StagedIdentity(security.RoleDeviceManagement))
}

func TestSecurityIdentityIsWriteOnly(t *testing.T) {
	c := newCatalogue(t, false)

	_, status := c.adapter.Read(model.ObjectIDSecurity, model.InstanceBootstrap, []uint16{SecurityResIdentity})
	assert.Equal(t, wire.StatusNotFound, status)
}

func TestSecurityFlagsAndMode(t *testing.T) {
	c := newCatalogue(t, true)

	values, status := c.adapter.Read(model.ObjectIDSecurity, model.InstanceBootstrap, []uint16{SecurityResIsBootstrap})
	require.Equal(t, wire.StatusContent, status)
	assert.True(t, values[0].Value.Bool)

	values, status = c.adapter.Read(model.ObjectIDSecurity, model.InstanceDeviceManagement, []uint16{SecurityResIsBootstrap})
	require.Equal(t, wire.StatusContent, status)
	assert.False(t, values[0].Value.Bool)

	values, status = c.adapter.Read(model.ObjectIDSecurity, model.InstanceBootstrap, []uint16{SecurityResSecurityMode})
	require.Equal(t, wire.StatusContent, status)
	assert.Equal(t, SecurityModePSK, values[0].Value.Int)
}

func TestServerLifetime(t *testing.T) {
	c := newCatalogue(t, true)

	t.Run("ReadDefault", func(t *testing.T) {
		values, status := c.adapter.Read(model.ObjectIDServer, 0, []uint16{ServerResLifetime})
		require.Equal(t, wire.StatusContent, status)
		assert.Equal(t, DefaultLifetime, values[0].Value.Int)
	})

	t.Run("WriteASCII", func(t *testing.T) {
		status := c.adapter.Write(model.ObjectIDServer, 0, []interaction.ResourceValue{
			{ID: ServerResLifetime, Value: interaction.IntValue(300)},
		})
		require.Equal(t, wire.StatusChanged, status)
		assert.Equal(t, int64(300), c.settings.Lifetime)
	})

	t.Run("WriteRejectsBadValue", func(t *testing.T) {
		desc := NewServerObject(c.settings)
		target := wire.NewTarget(wire.OpWrite, model.ObjectIDServer, 0, ServerResLifetime)
		assert.Equal(t, wire.ResultIncorrectRange, desc.Resources[1].Write(target, []byte("abc")))
		assert.Equal(t, wire.ResultIncorrectRange, desc.Resources[1].Write(target, []byte("-5")))
		assert.Equal(t, int64(300), c.settings.Lifetime)
	})
}

func TestServerUpdateTrigger(t *testing.T) {
	c := newCatalogue(t, true)

	t.Run("NoCallback", func(t *testing.T) {
		status := c.adapter.Execute(model.ObjectIDServer, 0, []uint16{ServerResUpdateTrigger}, nil)
		assert.Equal(t, wire.StatusServiceUnavailable, status)
	})

	t.Run("Triggered", func(t *testing.T) {
		triggered := false
		c.settings.OnUpdateTrigger = func() { triggered = true }
		status := c.adapter.Execute(model.ObjectIDServer, 0, []uint16{ServerResUpdateTrigger}, nil)
		assert.Equal(t, wire.StatusChanged, status)
		assert.True(t, triggered)
	})
}

func TestServerObjectUnprovisioned(t *testing.T) {
	c := newCatalogue(t, false)

	// Without a provisioned device-management server the server object
	// has no instances.
	_, status := c.adapter.Read(model.ObjectIDServer, 0, []uint16{ServerResLifetime})
	assert.Equal(t, wire.StatusNotFound, status)
}

func TestDeviceObject(t *testing.T) {
	c := newCatalogue(t, true)

	t.Run("Strings", func(t *testing.T) {
		values, status := c.adapter.Read(model.ObjectIDDevice, 0, []uint16{
			DeviceResManufacturer, DeviceResModelNumber, DeviceResSerialNumber, DeviceResFirmwareVersion,
		})
		require.Equal(t, wire.StatusContent, status)
		assert.Equal(t, "Example Corp", string(values[0].Value.Bytes))
		assert.Equal(t, "EX-100", string(values[1].Value.Bytes))
		assert.Equal(t, "SN-0001", string(values[2].Value.Bytes))
		assert.Equal(t, "1.0.0", string(values[3].Value.Bytes))
	})

	t.Run("CurrentTime", func(t *testing.T) {
		fixed := time.Unix(1700000000, 0)
		c.identity.Now = func() time.Time { return fixed }

		values, status := c.adapter.Read(model.ObjectIDDevice, 0, []uint16{DeviceResCurrentTime})
		require.Equal(t, wire.StatusContent, status)
		assert.Equal(t, model.ResourceTypeTime, values[0].Value.Type)
		assert.Equal(t, int64(1700000000), values[0].Value.Int)
	})

	t.Run("Reboot", func(t *testing.T) {
		status := c.adapter.Execute(model.ObjectIDDevice, 0, []uint16{DeviceResReboot}, nil)
		assert.Equal(t, wire.StatusNotImplemented, status)

		rebooted := false
		c.identity.Reboot = func() { rebooted = true }
		status = c.adapter.Execute(model.ObjectIDDevice, 0, []uint16{DeviceResReboot}, nil)
		assert.Equal(t, wire.StatusChanged, status)
		assert.True(t, rebooted)
	})
}
