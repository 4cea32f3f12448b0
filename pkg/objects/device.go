package objects

import (
	"time"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/wire"
)

// Device object resource ids.
const (
	// DeviceResManufacturer is the manufacturer name.
	DeviceResManufacturer uint16 = 0

	// DeviceResModelNumber is the model number.
	DeviceResModelNumber uint16 = 1

	// DeviceResSerialNumber is the device serial number.
	DeviceResSerialNumber uint16 = 2

	// DeviceResFirmwareVersion is the firmware version string.
	DeviceResFirmwareVersion uint16 = 3

	// DeviceResReboot triggers a device reboot.
	DeviceResReboot uint16 = 4

	// DeviceResCurrentTime is the current device time.
	DeviceResCurrentTime uint16 = 13
)

// DeviceIdentity backs the device object resources. The string fields
// usually come from the platform's identity stubs.
type DeviceIdentity struct {
	Manufacturer    string
	ModelNumber     string
	SerialNumber    string
	FirmwareVersion string

	// Now supplies the current time; defaults to time.Now.
	Now func() time.Time

	// Reboot performs the platform reboot. Optional.
	Reboot func()
}

// NewDeviceObject builds the device object descriptor over the given
// identity.
func NewDeviceObject(identity *DeviceIdentity) model.ObjectDescriptor {
	readString := func(get func() string) model.ReadHandler {
		return func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
			return []byte(get()), wire.ResultCompleted
		}
	}

	return model.ObjectDescriptor{
		ID:           model.ObjectIDDevice,
		MaxInstances: 1,
		Resources: []model.ResourceDescriptor{
			{
				ID:   DeviceResManufacturer,
				Type: model.ResourceTypeString,
				Read: readString(func() string { return identity.Manufacturer }),
			},
			{
				ID:   DeviceResModelNumber,
				Type: model.ResourceTypeString,
				Read: readString(func() string { return identity.ModelNumber }),
			},
			{
				ID:   DeviceResSerialNumber,
				Type: model.ResourceTypeString,
				Read: readString(func() string { return identity.SerialNumber }),
			},
			{
				ID:   DeviceResFirmwareVersion,
				Type: model.ResourceTypeString,
				Read: readString(func() string { return identity.FirmwareVersion }),
			},
			{
				ID:   DeviceResReboot,
				Type: model.ResourceTypeUnknown,
				Execute: func(target *wire.Target, args []byte) wire.ResultKind {
					if identity.Reboot == nil {
						return wire.ResultNotImplemented
					}
					identity.Reboot()
					return wire.ResultCompleted
				},
			},
			{
				ID:   DeviceResCurrentTime,
				Type: model.ResourceTypeTime,
				Read: func(target *wire.Target, notify model.ChangeFunc) ([]byte, wire.ResultKind) {
					now := identity.Now
					if now == nil {
						now = time.Now
					}
					return wire.EncodeInt(now().Unix()), wire.ResultCompleted
				},
			},
		},
	}
}
