// Package kxtest provides fixtures shared by the key-exchange tests:
// a deterministic entropy source, and a secret consumer that records what it
// is handed.
package kxtest

import (
	"encoding/binary"
	"io"
	"sync"
	"testing"

	"golang.org/x/crypto/sha3"
)

// NewTestRand returns a deterministic entropy stream for seed i.
// Depending on testing.T is to prevent misuse.
func NewTestRand(t testing.TB, i int) io.Reader {
	seed := make([]byte, 32)
	binary.BigEndian.PutUint64(seed[24:], uint64(i))
	x := sha3.NewShake256()
	x.Write(seed)
	return x
}

// CaptureConsumer records every secret handed to it.
type CaptureConsumer struct {
	mu      sync.Mutex
	Secrets [][]byte
	Bits    []int
}

func (c *CaptureConsumer) ConsumeSecret(secret []byte, modulusBits int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]byte, len(secret))
	copy(cp, secret)
	c.Secrets = append(c.Secrets, cp)
	c.Bits = append(c.Bits, modulusBits)
	return nil
}

// Secret returns the only captured secret, failing the test if the count is
// not exactly one.
func (c *CaptureConsumer) Secret(t testing.TB) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Secrets) != 1 {
		t.Fatalf("captured %d secrets, want 1", len(c.Secrets))
	}
	return c.Secrets[0]
}
