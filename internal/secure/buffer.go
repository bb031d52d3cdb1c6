// Package secure keeps the Connect bearer token out of plain process
// memory. The token is encrypted at rest in a memguard enclave and
// only decrypted for the duration of a single request.
package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned when opening a buffer after Destroy.
var ErrDestroyed = errors.New("secure buffer destroyed")

// Buffer holds one sensitive value in an encrypted, mlock-backed
// memory region.
type Buffer struct {
	enclave *memguard.Enclave

	mu        sync.RWMutex
	destroyed bool
}

// NewBuffer copies data into a protected region. The caller should
// zero its own copy afterwards.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// NewBufferFromString copies a string value into a protected region.
func NewBufferFromString(value string) *Buffer {
	return NewBuffer([]byte(value))
}

// Open decrypts the buffer into a locked region. The caller must call
// Destroy on the returned LockedBuffer when done.
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed {
		return nil, ErrDestroyed
	}
	return b.enclave.Open()
}

// Destroy marks the buffer unusable. Safe to call more than once.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
}
