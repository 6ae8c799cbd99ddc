// Package modp implements ephemeral Diffie-Hellman over a multiplicative
// group mod p: key-pair generation and shared-secret derivation.
//
// It does not hold state between calls; callers own every value passed in or
// returned, and release them when consumed.
package modp

import (
	"fmt"
	"io"

	"github.com/brendoncarroll/go-kx/crypto/mpint"
)

// ErrKeyGeneration is returned when a fresh key pair cannot be produced.
type ErrKeyGeneration struct {
	Cause error
}

func (e ErrKeyGeneration) Error() string {
	return fmt.Sprintf("modp: key generation failed: %v", e.Cause)
}

func (e ErrKeyGeneration) Unwrap() error { return e.Cause }

// ErrKeyAgreement is returned when a shared secret cannot be derived.
type ErrKeyAgreement struct {
	Reason string
	Cause  error
}

func (e ErrKeyAgreement) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("modp: key agreement failed: %s", e.Reason)
	}
	return fmt.Sprintf("modp: key agreement failed: %s: %v", e.Reason, e.Cause)
}

func (e ErrKeyAgreement) Unwrap() error { return e.Cause }

// KeyPair is an ephemeral private exponent and its public value
// g^Private mod p. Private must never leave the process; Public is what
// goes on the wire.
type KeyPair struct {
	Private *mpint.Value
	Public  *mpint.Value
}

// Release releases both halves of the pair.
func (kp *KeyPair) Release() {
	if kp == nil {
		return
	}
	mpint.ReleaseAll(kp.Private, kp.Public)
}

// Generate produces a fresh key pair for the group (p, g) using entropy from
// rng. The private exponent is uniform in (0, p). Either both fields of the
// returned pair are set, or an error is returned and nothing is.
func Generate(rng io.Reader, p, g *mpint.Value) (*KeyPair, error) {
	x, err := mpint.Rand(rng, p)
	if err != nil {
		return nil, ErrKeyGeneration{Cause: err}
	}
	y, err := mpint.Exp(g, x, p)
	if err != nil {
		x.Release()
		return nil, ErrKeyGeneration{Cause: err}
	}
	return &KeyPair{Private: x, Public: y}, nil
}

// DeriveShared computes peer^priv mod p and returns its minimal big-endian
// bytes as the raw shared secret. Peer values outside (0, p) are rejected.
// The caller releases priv and peer promptly after the call, whether or not
// it succeeded.
func DeriveShared(peer, priv, p *mpint.Value) ([]byte, error) {
	if peer.Sign() <= 0 || peer.Cmp(p) >= 0 {
		return nil, ErrKeyAgreement{Reason: "peer public value out of range"}
	}
	k, err := mpint.Exp(peer, priv, p)
	if err != nil {
		return nil, ErrKeyAgreement{Reason: "modular exponentiation", Cause: err}
	}
	// Bytes copies out of k's backing words, so k can be zeroed here.
	secret := k.Bytes()
	k.Release()
	return secret, nil
}
