package security

import (
	"errors"
	"hash"
)

// Provider errors.
var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrCredentialEmpty    = errors.New("credential is empty")
)

// Role identifies which server a credential belongs to. The values
// match the reserved security-object instances.
type Role uint8

const (
	// RoleBootstrap is the bootstrap server (security instance 0).
	RoleBootstrap Role = 0

	// RoleDeviceManagement is the device-management server (security
	// instance 1).
	RoleDeviceManagement Role = 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleBootstrap:
		return "BOOTSTRAP"
	case RoleDeviceManagement:
		return "DEVICE_MANAGEMENT"
	default:
		return "UNKNOWN"
	}
}

// CredentialKind identifies one of the values persisted per role.
type CredentialKind uint8

const (
	// KindIdentity is the PSK identity.
	KindIdentity CredentialKind = iota

	// KindSecret is the PSK secret key.
	KindSecret

	// KindServerURI is the server address.
	KindServerURI
)

// String returns the credential kind name.
func (k CredentialKind) String() string {
	switch k {
	case KindIdentity:
		return "IDENTITY"
	case KindSecret:
		return "SECRET"
	case KindServerURI:
		return "SERVER_URI"
	default:
		return "UNKNOWN"
	}
}

// Provider is the external security collaborator. Implementations own
// persistent credential storage and the hash primitives used during
// package verification.
type Provider interface {
	// GetCredential returns the stored credential bytes, or
	// ErrCredentialNotFound.
	GetCredential(kind CredentialKind, role Role) ([]byte, error)

	// SetCredential persists the credential bytes.
	SetCredential(kind CredentialKind, role Role, data []byte) error

	// HasCredential reports whether the credential is present.
	HasCredential(kind CredentialKind, role Role) bool

	// DeleteCredential removes the credential; it returns false if the
	// credential was not present.
	DeleteCredential(kind CredentialKind, role Role) bool

	// CRC32 computes the IEEE CRC-32 checksum of data.
	CRC32(data []byte) uint32

	// NewSHA1 returns a streaming SHA-1 hash.
	NewSHA1() hash.Hash

	// NewSHA256 returns a streaming SHA-256 hash.
	NewSHA256() hash.Hash
}
