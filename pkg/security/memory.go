package security

import (
	"crypto/sha1"
	"crypto/sha256"
	"hash"
	"hash/crc32"
	"sync"
)

type credentialKey struct {
	kind CredentialKind
	role Role
}

// MemoryProvider is an in-memory implementation of the Provider
// interface. This is primarily useful for testing and devices that
// don't need persistence.
type MemoryProvider struct {
	mu sync.RWMutex

	credentials map[credentialKey][]byte
}

// NewMemoryProvider creates a new in-memory security provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		credentials: make(map[credentialKey][]byte),
	}
}

// GetCredential returns the stored credential bytes.
func (p *MemoryProvider) GetCredential(kind CredentialKind, role Role) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, exists := p.credentials[credentialKey{kind, role}]
	if !exists {
		return nil, ErrCredentialNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// SetCredential persists the credential bytes.
func (p *MemoryProvider) SetCredential(kind CredentialKind, role Role, data []byte) error {
	if len(data) == 0 {
		return ErrCredentialEmpty
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	p.credentials[credentialKey{kind, role}] = stored
	return nil
}

// HasCredential reports whether the credential is present.
func (p *MemoryProvider) HasCredential(kind CredentialKind, role Role) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, exists := p.credentials[credentialKey{kind, role}]
	return exists
}

// DeleteCredential removes the credential.
func (p *MemoryProvider) DeleteCredential(kind CredentialKind, role Role) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := credentialKey{kind, role}
	if _, exists := p.credentials[key]; !exists {
		return false
	}
	delete(p.credentials, key)
	return true
}

// CRC32 computes the IEEE CRC-32 checksum of data.
func (p *MemoryProvider) CRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// NewSHA1 returns a streaming SHA-1 hash.
func (p *MemoryProvider) NewSHA1() hash.Hash {
	return sha1.New()
}

// NewSHA256 returns a streaming SHA-256 hash.
func (p *MemoryProvider) NewSHA256() hash.Hash {
	return sha256.New()
}

// Verify MemoryProvider implements Provider.
var _ Provider = (*MemoryProvider)(nil)
