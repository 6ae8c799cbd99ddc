// Package kschedule expands the raw secret agreed by a key exchange into
// fixed-size record key material.
package kschedule

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"

	"github.com/brendoncarroll/go-kx"
)

const (
	// DefaultSize is the amount of record key material produced.
	DefaultSize = 64

	domainLabel = "go-kx key schedule v1"
)

// ErrWeakSecret is returned when the negotiated modulus is below the
// scheduler's configured minimum strength.
type ErrWeakSecret struct {
	Bits, MinBits int
}

func (e ErrWeakSecret) Error() string {
	return fmt.Sprintf("kschedule: negotiated %d-bit modulus below minimum %d", e.Bits, e.MinBits)
}

// Params configures a Scheduler.
type Params struct {
	// MinBits rejects secrets negotiated over a modulus weaker than this.
	// Zero disables the check.
	MinBits int
	// Size is the amount of key material to produce. Zero means DefaultSize.
	Size   int
	Logger *logrus.Logger
}

// Scheduler derives record key material from an agreed secret by expanding
// it through SHAKE256. It implements kx.SecretConsumer, accepts exactly one
// secret per instance, and copies nothing of the input.
type Scheduler struct {
	minBits int
	size    int
	log     *logrus.Logger

	mu       sync.Mutex
	material []byte
	bits     int
}

var _ kx.SecretConsumer = &Scheduler{}

func New(params Params) *Scheduler {
	if params.Size == 0 {
		params.Size = DefaultSize
	}
	if params.Logger == nil {
		params.Logger = logrus.StandardLogger()
	}
	return &Scheduler{
		minBits: params.MinBits,
		size:    params.Size,
		log:     params.Logger,
	}
}

// ConsumeSecret expands secret into record key material.
// The secret is not retained; the caller zeroes it after the call.
func (s *Scheduler) ConsumeSecret(secret []byte, modulusBits int) error {
	if s.minBits > 0 && modulusBits < s.minBits {
		return ErrWeakSecret{Bits: modulusBits, MinBits: s.minBits}
	}
	if len(secret) == 0 {
		return errors.New("kschedule: empty secret")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.material != nil {
		return errors.New("kschedule: secret already scheduled")
	}
	x := sha3.NewShake256()
	x.Write([]byte(domainLabel))
	x.Write(secret)
	material := make([]byte, s.size)
	if _, err := x.Read(material); err != nil {
		return errors.Wrap(err, "kschedule: expanding secret")
	}
	s.material = material
	s.bits = modulusBits
	s.log.WithFields(logrus.Fields{
		"modulus_bits": modulusBits,
		"material":     len(material),
	}).Debug("scheduled record keys")
	return nil
}

// KeyMaterial returns the derived record key material, or an error if no
// secret has been scheduled yet.
func (s *Scheduler) KeyMaterial() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.material == nil {
		return nil, errors.New("kschedule: no secret scheduled")
	}
	out := make([]byte, len(s.material))
	copy(out, s.material)
	return out, nil
}

// ModulusBits returns the strength recorded with the scheduled secret.
func (s *Scheduler) ModulusBits() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.material == nil {
		return 0, errors.New("kschedule: no secret scheduled")
	}
	return s.bits, nil
}
