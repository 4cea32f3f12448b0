package session

// State is the session lifecycle state. The ordering is significant:
// every state from StateRegisterRequired onward belongs to a
// device-management session, everything before it to bootstrap.
type State uint8

const (
	// StateInitial is the starting state before Connect and the state
	// re-entered after a hard failure.
	StateInitial State = iota

	// StateBootstrapRequired means no device-management server is
	// provisioned yet and a bootstrap exchange must run first.
	StateBootstrapRequired

	// StateBootstrapping means a bootstrap exchange is in progress.
	StateBootstrapping

	// StateRegisterRequired means credentials are provisioned and the
	// client must register with the device-management server.
	StateRegisterRequired

	// StateRegistering means a registration exchange is in progress.
	StateRegistering

	// StateReady means the client is registered and serving requests.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StateBootstrapRequired:
		return "BOOTSTRAP_REQUIRED"
	case StateBootstrapping:
		return "BOOTSTRAPPING"
	case StateRegisterRequired:
		return "REGISTER_REQUIRED"
	case StateRegistering:
		return "REGISTERING"
	case StateReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}

// ConnectionType classifies what kind of server the session is
// currently talking to. It is derived purely from the session state.
type ConnectionType uint8

const (
	// ConnectionBootstrap means the session targets the bootstrap
	// server.
	ConnectionBootstrap ConnectionType = iota

	// ConnectionDeviceManagement means the session targets the
	// device-management server.
	ConnectionDeviceManagement
)

// String returns the connection type name.
func (t ConnectionType) String() string {
	switch t {
	case ConnectionBootstrap:
		return "BOOTSTRAP"
	case ConnectionDeviceManagement:
		return "DEVICE_MANAGEMENT"
	default:
		return "UNKNOWN"
	}
}
