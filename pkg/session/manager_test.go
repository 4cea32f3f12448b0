package session

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/security"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/transport"
)

type fakeConn struct {
	opened  bool
	closed  bool
	receive transport.ReceiveFunc
	sent    [][]byte
}

func (c *fakeConn) Open(receive transport.ReceiveFunc) error {
	c.opened = true
	c.receive = receive
	return nil
}

func (c *fakeConn) Send(data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	c.sent = append(c.sent, buf)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) RemoteAddr() net.Addr { return nil }

type fakeDialer struct {
	conn *fakeConn
	err  error
}

func (d *fakeDialer) Dial(string) (transport.Conn, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

type fakeEngine struct {
	steps     int
	next      time.Duration
	err       error
	datagrams [][]byte
}

func (e *fakeEngine) Step(time.Time) (time.Duration, error) {
	e.steps++
	return e.next, e.err
}

func (e *fakeEngine) HandleDatagram(data []byte, _ net.Addr) {
	buf := make([]byte, len(data))
	copy(buf, data)
	e.datagrams = append(e.datagrams, buf)
}

type harness struct {
	mgr      *Manager
	engine   *fakeEngine
	conn     *fakeConn
	clk      *clock.Mock
	provider *security.MemoryProvider
	store    *security.CredentialStore

	events []AppEvent
	// connection type observed at each session-type event
	typeAtEvent map[AppEvent]ConnectionType
}

func newHarness(t *testing.T, provisioned bool) *harness {
	t.Helper()

	h := &harness{
		engine:      &fakeEngine{},
		conn:        &fakeConn{},
		clk:         clock.NewMock(),
		provider:    security.NewMemoryProvider(),
		typeAtEvent: map[AppEvent]ConnectionType{},
	}
	h.store = security.NewCredentialStore(h.provider)

	h.mgr = NewManager(h.engine, &fakeDialer{conn: h.conn}, h.store, model.NewRegistry(), Config{
		EndpointName:                "urn:imei:000000000000000",
		ServerAddress:               "coap.example.net:5683",
		DeviceManagementProvisioned: provisioned,
		Clock:                       h.clk,
		Callback: func(event AppEvent) {
			h.events = append(h.events, event)
			if event == AppEventSessionTypeBootstrap || event == AppEventSessionTypeDeviceManagement {
				h.typeAtEvent[event] = h.mgr.ConnectionType()
			}
		},
	})
	return h
}

func (h *harness) stageBootstrapTriple() {
	h.store.StageIdentity(security.RoleBootstrap, []byte("bs-identity"))
	h.store.StageSecret(security.RoleBootstrap, []byte("bs-secret"))
	h.store.StageServerURI(security.RoleBootstrap, []byte("coaps://bs.example.net"))
	h.store.StageIdentity(security.RoleDeviceManagement, []byte("dm-identity"))
	h.store.StageSecret(security.RoleDeviceManagement, []byte("dm-secret"))
	h.store.StageServerURI(security.RoleDeviceManagement, []byte("coaps://dm.example.net"))
}

func TestConnect(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.mgr.Connect())
	assert.True(t, h.conn.opened)
	assert.True(t, h.mgr.Connected())
	assert.Equal(t, StateBootstrapRequired, h.mgr.State())
	assert.Equal(t, ConnectionBootstrap, h.mgr.ConnectionType())
	assert.Equal(t, []AppEvent{AppEventInitialized}, h.events)

	require.Len(t, h.mgr.Connections(), 1)
	assert.NotEmpty(t, h.mgr.Connections()[0].ID)

	assert.ErrorIs(t, h.mgr.Connect(), ErrAlreadyConnected)
}

func TestConnectProvisioned(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.mgr.Connect())
	assert.Equal(t, StateRegisterRequired, h.mgr.State())
	assert.Equal(t, ConnectionDeviceManagement, h.mgr.ConnectionType())
}

func TestConnectDialFailure(t *testing.T) {
	h := newHarness(t, false)
	mgr := NewManager(h.engine, &fakeDialer{err: errors.New("no route")}, h.store, model.NewRegistry(), Config{
		ServerAddress: "coap.example.net:5683",
		Clock:         h.clk,
	})

	require.Error(t, mgr.Connect())
	assert.False(t, mgr.Connected())
	assert.Equal(t, StateInitial, mgr.State())
}

func TestBootstrapToReady(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.mgr.Connect())

	h.mgr.Notify(EventBootstrap, EventStarted)
	assert.Equal(t, StateBootstrapping, h.mgr.State())
	assert.Equal(t, ConnectionBootstrap, h.mgr.ConnectionType())

	h.stageBootstrapTriple()
	h.mgr.Notify(EventBootstrap, EventSucceeded)

	// The session-type event must fire before the transition, while
	// the connection type still reads as bootstrap.
	assert.Contains(t, h.events, AppEventSessionTypeBootstrap)
	assert.Equal(t, ConnectionBootstrap, h.typeAtEvent[AppEventSessionTypeBootstrap])
	assert.Equal(t, StateRegisterRequired, h.mgr.State())

	// Staged credentials must be committed to the provider and the
	// staging buffers zeroed.
	assert.True(t, h.provider.HasCredential(security.KindIdentity, security.RoleBootstrap))
	assert.True(t, h.provider.HasCredential(security.KindSecret, security.RoleDeviceManagement))
	assert.Empty(t, h.store.StagedIdentity(security.RoleBootstrap))

	h.mgr.Notify(EventRegistration, EventStarted)
	assert.Equal(t, StateRegistering, h.mgr.State())

	h.mgr.Notify(EventRegistration, EventSucceeded)
	assert.Equal(t, StateReady, h.mgr.State())
	assert.Contains(t, h.events, AppEventSessionTypeDeviceManagement)
	assert.Equal(t, ConnectionDeviceManagement, h.typeAtEvent[AppEventSessionTypeDeviceManagement])
}

func TestBootstrapCommitFailureResets(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.mgr.Connect())

	h.mgr.Notify(EventBootstrap, EventStarted)
	// Nothing staged, so the commit must fail.
	h.mgr.Notify(EventBootstrap, EventSucceeded)

	assert.Equal(t, StateInitial, h.mgr.State())
	assert.Contains(t, h.events, AppEventSessionFailed)
	assert.NotContains(t, h.events, AppEventSessionTypeBootstrap)
}

func TestBootstrapFailureResets(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.mgr.Connect())

	h.mgr.Notify(EventBootstrap, EventStarted)
	h.store.StageIdentity(security.RoleBootstrap, []byte("partial"))
	h.mgr.Notify(EventBootstrap, EventFailed)

	assert.Equal(t, StateInitial, h.mgr.State())
	assert.Contains(t, h.events, AppEventSessionFailed)
	// In-progress security object changes are discarded.
	assert.Empty(t, h.store.StagedIdentity(security.RoleBootstrap))
}

func TestRegistrationFailureRetries(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.mgr.Connect())

	h.mgr.Notify(EventRegistration, EventStarted)
	h.mgr.Notify(EventRegistration, EventFailed)

	assert.Equal(t, StateRegisterRequired, h.mgr.State())
	assert.Contains(t, h.events, AppEventSessionFailed)
}

func TestAuthenticationEvents(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.mgr.Connect())

	h.mgr.Notify(EventAuthentication, EventStarted)
	assert.Contains(t, h.events, AppEventAuthenticationStarted)

	h.mgr.Notify(EventAuthentication, EventFailed)
	assert.Contains(t, h.events, AppEventAuthenticationFailed)
	assert.Contains(t, h.events, AppEventSessionFailed)
	assert.Equal(t, StateInitial, h.mgr.State())
}

func TestStepTimer(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.mgr.Connect())
	assert.Zero(t, h.engine.steps)

	// First step at the default interval.
	h.clk.Add(DefaultStepInterval)
	assert.Equal(t, 1, h.engine.steps)

	// The engine shortens the interval.
	h.engine.next = 5 * time.Second
	h.clk.Add(DefaultStepInterval)
	assert.Equal(t, 2, h.engine.steps)
	h.clk.Add(5 * time.Second)
	assert.Equal(t, 3, h.engine.steps)

	// Intervals below the minimum are clamped.
	h.engine.next = time.Millisecond
	h.clk.Add(5 * time.Second)
	assert.Equal(t, 4, h.engine.steps)
	h.clk.Add(time.Second)
	assert.Equal(t, 5, h.engine.steps)
}

func TestStepErrorWhileBootstrappingResets(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.mgr.Connect())
	h.mgr.Notify(EventBootstrap, EventStarted)

	h.engine.err = errors.New("retransmit limit reached")
	h.mgr.Step()

	assert.Equal(t, StateInitial, h.mgr.State())
	assert.Contains(t, h.events, AppEventSessionFailed)
}

func TestStepErrorOutsideBootstrappingKeepsState(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.mgr.Connect())
	h.mgr.Notify(EventRegistration, EventStarted)
	h.mgr.Notify(EventRegistration, EventSucceeded)

	h.engine.err = errors.New("transient")
	h.mgr.Step()

	assert.Equal(t, StateReady, h.mgr.State())
	assert.NotContains(t, h.events, AppEventSessionFailed)
}

func TestDisconnect(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.mgr.Connect())
	h.store.StageIdentity(security.RoleBootstrap, []byte("staged"))

	h.mgr.Disconnect()
	assert.True(t, h.conn.closed)
	assert.False(t, h.mgr.Connected())
	assert.Equal(t, StateInitial, h.mgr.State())
	assert.Empty(t, h.mgr.Connections())
	// Staging buffers are zeroed on teardown.
	assert.Empty(t, h.store.StagedIdentity(security.RoleBootstrap))

	// Idempotent, and the timer stays disarmed.
	h.mgr.Disconnect()
	h.clk.Add(10 * DefaultStepInterval)
	assert.Zero(t, h.engine.steps)
}

func TestSendAndReceive(t *testing.T) {
	h := newHarness(t, true)

	assert.ErrorIs(t, h.mgr.Send([]byte{0x01}), ErrNotConnected)

	require.NoError(t, h.mgr.Connect())
	require.NoError(t, h.mgr.Send([]byte{0x40, 0x01, 0x00, 0x01}))
	require.Len(t, h.conn.sent, 1)

	// Inbound datagrams are forwarded to the engine.
	h.conn.receive([]byte{0x60, 0x45, 0x00, 0x01}, nil)
	require.Len(t, h.engine.datagrams, 1)
	assert.Equal(t, []byte{0x60, 0x45, 0x00, 0x01}, h.engine.datagrams[0])
}

func TestDeregistration(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.mgr.Connect())
	h.mgr.Notify(EventRegistration, EventStarted)
	h.mgr.Notify(EventRegistration, EventSucceeded)

	h.mgr.Notify(EventDeregistration, EventSucceeded)
	assert.Equal(t, StateInitial, h.mgr.State())
	assert.Contains(t, h.events, AppEventSessionFinished)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "INITIAL", StateInitial.String())
	assert.Equal(t, "READY", StateReady.String())
	assert.Equal(t, "BOOTSTRAP", ConnectionBootstrap.String())
	assert.Equal(t, "DEVICE_MANAGEMENT", ConnectionDeviceManagement.String())
	assert.Equal(t, "REGISTRATION_UPDATE", EventRegistrationUpdate.String())
	assert.Equal(t, "SUCCEEDED", EventSucceeded.String())
	assert.Equal(t, "SESSION_TYPE_BOOTSTRAP", AppEventSessionTypeBootstrap.String())
}
