package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/log"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/security"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/transport"
)

const (
	// DefaultStepInterval is the step timer period used when the
	// protocol engine has no earlier deadline.
	DefaultStepInterval = 60 * time.Second

	// minStepInterval bounds how aggressively the engine may shorten
	// the step timer.
	minStepInterval = time.Second
)

// Session errors.
var (
	ErrAlreadyConnected = errors.New("session already connected")
	ErrNotConnected     = errors.New("session not connected")
)

// Engine is the protocol engine driven by the session step timer. Step
// performs one iteration of engine work and returns the recommended
// interval until the next step; zero means no preference.
type Engine interface {
	Step(now time.Time) (next time.Duration, err error)
}

// DatagramHandler is implemented by engines that consume raw inbound
// datagrams. The session forwards every received datagram to the
// engine when it implements this interface.
type DatagramHandler interface {
	HandleDatagram(data []byte, from net.Addr)
}

// Connection is one active transport connection.
type Connection struct {
	// ID uniquely identifies the connection for logging.
	ID string

	// Address is the server address the connection was dialed to.
	Address string

	// Conn is the underlying transport connection.
	Conn transport.Conn
}

// Config carries the session parameters.
type Config struct {
	// EndpointName identifies this client towards servers.
	EndpointName string

	// ServerAddress is the address Connect dials: the bootstrap server
	// when no device-management server is provisioned, otherwise the
	// device-management server.
	ServerAddress string

	// StepInterval is the default step timer period. Zero selects
	// DefaultStepInterval.
	StepInterval time.Duration

	// DeviceManagementProvisioned reports whether device-management
	// credentials already exist, selecting the initial state after
	// Connect.
	DeviceManagementProvisioned bool

	// Clock drives the step timer. Nil selects the wall clock. Tests
	// inject a mock.
	Clock clock.Clock

	// Logger receives debug logs. Nil discards them.
	Logger *slog.Logger

	// EventLogger receives structured session events. Nil discards
	// them.
	EventLogger log.Logger

	// Callback receives application status events. May be nil.
	Callback StatusCallback
}

// Manager owns the session lifecycle: the transport connections, the
// bootstrap/registration state machine, and the step timer.
//
// Manager has no internal locking. Connect, Disconnect, Notify, Send
// and the timer/receive callbacks are one logical flow of control and
// must be serialized by the caller.
type Manager struct {
	cfg      Config
	clk      clock.Clock
	logger   *slog.Logger
	events   log.Logger
	engine   Engine
	dialer   transport.Dialer
	store    *security.CredentialStore
	registry *model.Registry

	state       State
	connections []*Connection
	timer       *clock.Timer
	connected   bool
}

// NewManager creates a session manager. The engine, dialer, store and
// registry are required; cfg fields have usable defaults.
func NewManager(engine Engine, dialer transport.Dialer, store *security.CredentialStore, registry *model.Registry, cfg Config) *Manager {
	if cfg.StepInterval <= 0 {
		cfg.StepInterval = DefaultStepInterval
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var events log.Logger = log.NoopLogger{}
	if cfg.EventLogger != nil {
		events = cfg.EventLogger
	}

	return &Manager{
		cfg:      cfg,
		clk:      clk,
		logger:   logger,
		events:   events,
		engine:   engine,
		dialer:   dialer,
		store:    store,
		registry: registry,
		state:    StateInitial,
	}
}

// Connect opens the transport connection and arms the step timer. The
// initial state is RegisterRequired when a device-management server is
// provisioned, BootstrapRequired otherwise.
func (m *Manager) Connect() error {
	if m.connected {
		return ErrAlreadyConnected
	}

	conn, err := m.dialer.Dial(m.cfg.ServerAddress)
	if err != nil {
		return fmt.Errorf("dial %s: %w", m.cfg.ServerAddress, err)
	}
	if err := conn.Open(m.receive); err != nil {
		_ = conn.Close()
		return fmt.Errorf("open %s: %w", m.cfg.ServerAddress, err)
	}

	m.connections = append(m.connections, &Connection{
		ID:      uuid.NewString(),
		Address: m.cfg.ServerAddress,
		Conn:    conn,
	})
	m.connected = true

	if m.cfg.DeviceManagementProvisioned {
		m.setState(StateRegisterRequired, "device-management server provisioned")
	} else {
		m.setState(StateBootstrapRequired, "no device-management server provisioned")
	}

	m.timer = m.clk.AfterFunc(m.cfg.StepInterval, m.step)
	m.emit(AppEventInitialized)
	return nil
}

// Disconnect stops the step timer, closes all connections and zeroes
// any staged credentials. Disconnect is idempotent.
func (m *Manager) Disconnect() {
	if !m.connected {
		return
	}

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	for _, c := range m.connections {
		if err := c.Conn.Close(); err != nil {
			m.logError(err, "close connection")
		}
	}
	m.connections = nil
	m.store.Clear()
	m.connected = false
	m.setState(StateInitial, "disconnected")
}

// Close disconnects and releases the object registry. The manager must
// not be reused afterwards.
func (m *Manager) Close() {
	m.Disconnect()
	m.registry.UnregisterAll()
}

// Step runs one engine iteration and re-arms the step timer with the
// engine's recommended interval. It is normally invoked by the timer
// but may be called directly to force an immediate iteration. An
// engine error while bootstrapping forces a hard reset to Initial.
func (m *Manager) Step() {
	m.step()
}

func (m *Manager) step() {
	if !m.connected {
		return
	}

	next, err := m.engine.Step(m.clk.Now())
	if err != nil {
		m.logError(err, "engine step")
		if m.state == StateBootstrapping {
			m.resetToInitial("engine step failed while bootstrapping")
			m.emit(AppEventSessionFailed)
		}
	}

	if m.timer != nil {
		m.timer.Reset(m.clampInterval(next))
	}
}

func (m *Manager) clampInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return m.cfg.StepInterval
	case d < minStepInterval:
		return minStepInterval
	case d > m.cfg.StepInterval:
		return m.cfg.StepInterval
	default:
		return d
	}
}

// Notify delivers an engine lifecycle event to the session state
// machine.
func (m *Manager) Notify(kind EventKind, status EventStatus) {
	m.logger.Debug("session event", "kind", kind.String(), "status", status.String())

	switch status {
	case EventStarted:
		m.notifyStarted(kind)
	case EventSucceeded:
		m.notifySucceeded(kind)
	case EventFailed:
		m.notifyFailed(kind)
	}
}

func (m *Manager) notifyStarted(kind EventKind) {
	switch kind {
	case EventBootstrap:
		m.setState(StateBootstrapping, "bootstrap exchange started")
	case EventRegistration:
		m.setState(StateRegistering, "registration exchange started")
	case EventAuthentication, EventDTLSResume:
		m.emit(AppEventAuthenticationStarted)
	case EventSession:
		m.emit(AppEventSessionStarted)
	}
}

func (m *Manager) notifySucceeded(kind EventKind) {
	switch kind {
	case EventBootstrap:
		if err := m.store.Commit(); err != nil {
			m.logError(err, "credential commit")
			m.logCredential("commit", false)
			m.resetToInitial("credential commit failed")
			m.emit(AppEventSessionFailed)
			return
		}
		m.logCredential("commit", true)
		// The session-type event fires while the connection type still
		// reads as bootstrap; the transition follows immediately.
		m.emit(AppEventSessionTypeBootstrap)
		m.setState(StateRegisterRequired, "bootstrap exchange complete")
	case EventRegistration:
		m.setState(StateReady, "registration complete")
		m.emit(AppEventSessionTypeDeviceManagement)
	case EventRegistrationUpdate:
		m.setState(StateReady, "registration update complete")
	case EventDeregistration:
		m.setState(StateInitial, "deregistered")
		m.emit(AppEventSessionFinished)
	case EventSession:
		m.emit(AppEventSessionFinished)
	}
}

func (m *Manager) notifyFailed(kind EventKind) {
	switch kind {
	case EventBootstrap:
		// TODO: restore the security and server objects captured
		// before the bootstrap exchange instead of restarting
		// provisioning from scratch.
		m.resetToInitial("bootstrap exchange failed")
	case EventRegistration, EventRegistrationUpdate:
		m.setState(StateRegisterRequired, "registration exchange failed")
	case EventDeregistration:
		m.setState(StateInitial, "deregistration failed")
	case EventAuthentication, EventDTLSResume:
		m.emit(AppEventAuthenticationFailed)
		m.resetToInitial("authentication failed")
	}
	m.emit(AppEventSessionFailed)
}

// resetToInitial discards staged credentials and re-enters Initial.
func (m *Manager) resetToInitial(reason string) {
	m.store.Clear()
	m.setState(StateInitial, reason)
}

// Send transmits one datagram on the active connection.
func (m *Manager) Send(data []byte) error {
	if !m.connected || len(m.connections) == 0 {
		return ErrNotConnected
	}
	return m.connections[0].Conn.Send(data)
}

func (m *Manager) receive(data []byte, from net.Addr) {
	if h, ok := m.engine.(DatagramHandler); ok {
		h.HandleDatagram(data, from)
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	return m.state
}

// ConnectionType reports whether the session is currently a bootstrap
// or a device-management session, derived from the state alone.
func (m *Manager) ConnectionType() ConnectionType {
	if m.state >= StateRegisterRequired {
		return ConnectionDeviceManagement
	}
	return ConnectionBootstrap
}

// Connected reports whether Connect succeeded and Disconnect has not
// been called.
func (m *Manager) Connected() bool {
	return m.connected
}

// Connections returns the active connections.
func (m *Manager) Connections() []*Connection {
	out := make([]*Connection, len(m.connections))
	copy(out, m.connections)
	return out
}

func (m *Manager) setState(next State, reason string) {
	if next == m.state {
		return
	}
	old := m.state
	m.state = next

	m.logger.Debug("session state change",
		"old", old.String(), "new", next.String(), "reason", reason)
	m.events.Log(log.Event{
		Timestamp:    m.clk.Now(),
		ConnectionID: m.connectionID(),
		Category:     log.CategoryState,
		EndpointName: m.cfg.EndpointName,
		ServerAddr:   m.cfg.ServerAddress,
		StateChange: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func (m *Manager) emit(event AppEvent) {
	if m.cfg.Callback != nil {
		m.cfg.Callback(event)
	}
}

func (m *Manager) logError(err error, context string) {
	m.logger.Debug("session error", "context", context, "error", err)
	m.events.Log(log.Event{
		Timestamp:    m.clk.Now(),
		ConnectionID: m.connectionID(),
		Category:     log.CategoryError,
		EndpointName: m.cfg.EndpointName,
		ServerAddr:   m.cfg.ServerAddress,
		Error: &log.ErrorEvent{
			Message: err.Error(),
			Context: context,
		},
	})
}

func (m *Manager) logCredential(action string, succeeded bool) {
	m.events.Log(log.Event{
		Timestamp:    m.clk.Now(),
		ConnectionID: m.connectionID(),
		Category:     log.CategoryCredential,
		EndpointName: m.cfg.EndpointName,
		Credential: &log.CredentialEvent{
			Action:    action,
			Succeeded: succeeded,
		},
	})
}

func (m *Manager) connectionID() string {
	if len(m.connections) == 0 {
		return ""
	}
	return m.connections[0].ID
}
