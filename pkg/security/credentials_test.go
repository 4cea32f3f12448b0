package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitRequiresFullBootstrapTriple(t *testing.T) {
	provider := NewMemoryProvider()
	store := NewCredentialStore(provider)

	// Address still empty: commit must fail and leave staging intact.
	store.StageIdentity(RoleBootstrap, []byte("bs-identity"))
	store.StageSecret(RoleBootstrap, []byte("bs-secret"))

	err := store.Commit()
	require.Error(t, err)

	assert.Equal(t, []byte("bs-identity"), store.StagedIdentity(RoleBootstrap))
	assert.Equal(t, []byte("bs-secret"), store.StagedSecret(RoleBootstrap))
	assert.Nil(t, store.StagedServerURI(RoleBootstrap))
	assert.False(t, provider.HasCredential(KindIdentity, RoleBootstrap))
}

func TestCommitBothRoles(t *testing.T) {
	provider := NewMemoryProvider()
	store := NewCredentialStore(provider)

	store.StageIdentity(RoleBootstrap, []byte("bs-identity"))
	store.StageSecret(RoleBootstrap, []byte("bs-secret"))
	store.StageServerURI(RoleBootstrap, []byte("coaps://bootstrap.example:5684"))
	store.StageIdentity(RoleDeviceManagement, []byte("dm-identity"))
	store.StageSecret(RoleDeviceManagement, []byte("dm-secret"))
	store.StageServerURI(RoleDeviceManagement, []byte("coaps://dm.example:5684"))

	require.NoError(t, store.Commit())

	// All six buffers are zeroed on success.
	for _, role := range []Role{RoleBootstrap, RoleDeviceManagement} {
		assert.Nil(t, store.StagedIdentity(role))
		assert.Nil(t, store.StagedSecret(role))
		assert.Nil(t, store.StagedServerURI(role))
	}

	identity, err := provider.GetCredential(KindIdentity, RoleDeviceManagement)
	require.NoError(t, err)
	assert.Equal(t, []byte("dm-identity"), identity)

	uri, err := provider.GetCredential(KindServerURI, RoleBootstrap)
	require.NoError(t, err)
	assert.Equal(t, []byte("coaps://bootstrap.example:5684"), uri)
}

func TestCommitBootstrapOnly(t *testing.T) {
	provider := NewMemoryProvider()
	store := NewCredentialStore(provider)

	store.StageIdentity(RoleBootstrap, []byte("bs-identity"))
	store.StageSecret(RoleBootstrap, []byte("bs-secret"))
	store.StageServerURI(RoleBootstrap, []byte("coaps://bootstrap.example:5684"))
	// Device-management triple only partially staged: it is skipped.
	store.StageIdentity(RoleDeviceManagement, []byte("dm-identity"))

	require.NoError(t, store.Commit())

	assert.True(t, provider.HasCredential(KindSecret, RoleBootstrap))
	assert.False(t, provider.HasCredential(KindIdentity, RoleDeviceManagement))
	assert.Nil(t, store.StagedIdentity(RoleDeviceManagement))
}

// failingProvider wraps MemoryProvider and fails writes after a set
// number of calls.
type failingProvider struct {
	*MemoryProvider
	failAfter int
	calls     int
}

var errPersist = errors.New("persist failed")

func (p *failingProvider) SetCredential(kind CredentialKind, role Role, data []byte) error {
	p.calls++
	if p.calls > p.failAfter {
		return errPersist
	}
	return p.MemoryProvider.SetCredential(kind, role, data)
}

func TestCommitPersistFailureKeepsStaging(t *testing.T) {
	provider := &failingProvider{MemoryProvider: NewMemoryProvider(), failAfter: 2}
	store := NewCredentialStore(provider)

	store.StageIdentity(RoleBootstrap, []byte("bs-identity"))
	store.StageSecret(RoleBootstrap, []byte("bs-secret"))
	store.StageServerURI(RoleBootstrap, []byte("coaps://bootstrap.example:5684"))

	err := store.Commit()
	require.ErrorIs(t, err, errPersist)

	// Staging is untouched so the exchange can be retried.
	assert.Equal(t, []byte("bs-identity"), store.StagedIdentity(RoleBootstrap))
	assert.Equal(t, []byte("bs-secret"), store.StagedSecret(RoleBootstrap))
	assert.Equal(t, []byte("coaps://bootstrap.example:5684"), store.StagedServerURI(RoleBootstrap))
}

func TestClearZeroesBuffers(t *testing.T) {
	store := NewCredentialStore(NewMemoryProvider())
	secret := []byte("dm-secret")
	store.StageSecret(RoleDeviceManagement, secret)

	stagedBytes := store.StagedSecret(RoleDeviceManagement)
	store.Clear()

	assert.Nil(t, store.StagedSecret(RoleDeviceManagement))
	for _, b := range stagedBytes {
		assert.Zero(t, b)
	}
	// The caller's copy is never touched.
	assert.Equal(t, []byte("dm-secret"), secret)
}

func TestMemoryProvider(t *testing.T) {
	provider := NewMemoryProvider()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := provider.GetCredential(KindIdentity, RoleBootstrap)
		assert.ErrorIs(t, err, ErrCredentialNotFound)
	})

	t.Run("SetEmpty", func(t *testing.T) {
		err := provider.SetCredential(KindIdentity, RoleBootstrap, nil)
		assert.ErrorIs(t, err, ErrCredentialEmpty)
	})

	t.Run("SetGetDelete", func(t *testing.T) {
		require.NoError(t, provider.SetCredential(KindSecret, RoleDeviceManagement, []byte{1, 2, 3}))
		assert.True(t, provider.HasCredential(KindSecret, RoleDeviceManagement))

		data, err := provider.GetCredential(KindSecret, RoleDeviceManagement)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, data)

		assert.True(t, provider.DeleteCredential(KindSecret, RoleDeviceManagement))
		assert.False(t, provider.DeleteCredential(KindSecret, RoleDeviceManagement))
	})

	t.Run("HashPrimitives", func(t *testing.T) {
		assert.EqualValues(t, 0xCBF43926, provider.CRC32([]byte("123456789")))
		assert.Equal(t, 20, provider.NewSHA1().Size())
		assert.Equal(t, 32, provider.NewSHA256().Size())
	})
}
