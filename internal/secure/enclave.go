// Package secure wraps memguard for holding a resolved credential in
// protected memory between resolution and use (for example, across the
// window where exec builds a child environment).
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Buffer provides memory-safe storage for a sensitive value. It wraps
// memguard.Enclave to keep the secret encrypted at rest in memory and
// mlocked against swapping.
type Buffer struct {
	enclave   *memguard.Enclave
	mu        sync.RWMutex
	destroyed bool
}

// NewBuffer creates a protected buffer from secret bytes. The input is
// copied into the protected region; the caller should zero its copy.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		enclave: memguard.NewEnclave(data),
	}
}

// NewBufferFromString creates a protected buffer from a secret string
func NewBufferFromString(secret string) *Buffer {
	return NewBuffer([]byte(secret))
}

// Open decrypts and returns the protected data in a locked buffer.
// The caller MUST call Destroy() on the returned LockedBuffer when done
// to wipe the plaintext from memory.
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed {
		return memguard.NewBufferFromBytes([]byte{}), nil
	}

	return b.enclave.Open()
}

// Destroy marks the buffer as destroyed and prevents further use.
// Idempotent. After Destroy, Open returns an empty buffer. For complete
// cleanup of all memguard state at exit, call memguard.Purge in main.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}

	b.enclave = nil
	b.destroyed = true
}
