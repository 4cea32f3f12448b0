package security

import "fmt"

// staged holds the three credential values for one server role. A zero
// length means "not yet staged".
type staged struct {
	identity []byte
	secret   []byte
	uri      []byte
}

func (s *staged) complete() bool {
	return len(s.identity) > 0 && len(s.secret) > 0 && len(s.uri) > 0
}

func (s *staged) zero() {
	for _, b := range [][]byte{s.identity, s.secret, s.uri} {
		for i := range b {
			b[i] = 0
		}
	}
	s.identity = nil
	s.secret = nil
	s.uri = nil
}

// CredentialStore stages credentials acquired during a bootstrap
// exchange in RAM until they are committed to the provider.
//
// The store belongs to the single-threaded client core: it is mutated
// only by the security-object write handlers and the session manager,
// which never run concurrently.
type CredentialStore struct {
	provider Provider
	roles    [2]staged
}

// NewCredentialStore creates an empty staging store backed by the
// given provider.
func NewCredentialStore(provider Provider) *CredentialStore {
	return &CredentialStore{provider: provider}
}

// StageIdentity stages the PSK identity for a role.
func (c *CredentialStore) StageIdentity(role Role, data []byte) {
	c.roles[role].identity = clone(data)
}

// StageSecret stages the PSK secret for a role.
func (c *CredentialStore) StageSecret(role Role, data []byte) {
	c.roles[role].secret = clone(data)
}

// StageServerURI stages the server address for a role.
func (c *CredentialStore) StageServerURI(role Role, data []byte) {
	c.roles[role].uri = clone(data)
}

// StagedIdentity returns the staged PSK identity for a role, or nil.
func (c *CredentialStore) StagedIdentity(role Role) []byte {
	return c.roles[role].identity
}

// StagedSecret returns the staged PSK secret for a role, or nil.
func (c *CredentialStore) StagedSecret(role Role) []byte {
	return c.roles[role].secret
}

// StagedServerURI returns the staged server address for a role, or nil.
func (c *CredentialStore) StagedServerURI(role Role) []byte {
	return c.roles[role].uri
}

// Commit persists the staged credentials through the provider.
//
// The bootstrap triple must be fully staged or the commit fails with
// no side effects. The device-management triple is persisted only when
// the bootstrap persist succeeded and the triple is itself fully
// staged. On any persistence failure the staging buffers are left
// untouched so the exchange can be retried; on full success all
// staging buffers are zeroed.
func (c *CredentialStore) Commit() error {
	if !c.roles[RoleBootstrap].complete() {
		return fmt.Errorf("bootstrap credentials incomplete: %w", ErrCredentialEmpty)
	}

	if err := c.persist(RoleBootstrap); err != nil {
		return fmt.Errorf("persist bootstrap credentials: %w", err)
	}

	if c.roles[RoleDeviceManagement].complete() {
		if err := c.persist(RoleDeviceManagement); err != nil {
			return fmt.Errorf("persist device-management credentials: %w", err)
		}
	}

	c.Clear()
	return nil
}

func (c *CredentialStore) persist(role Role) error {
	s := &c.roles[role]
	if err := c.provider.SetCredential(KindIdentity, role, s.identity); err != nil {
		return err
	}
	if err := c.provider.SetCredential(KindSecret, role, s.secret); err != nil {
		return err
	}
	return c.provider.SetCredential(KindServerURI, role, s.uri)
}

// Clear zeroes all staging buffers. Called after a successful commit
// and on session teardown.
func (c *CredentialStore) Clear() {
	for i := range c.roles {
		c.roles[i].zero()
	}
}

func clone(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
