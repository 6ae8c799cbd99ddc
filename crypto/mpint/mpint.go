// Package mpint implements the arbitrary-precision unsigned integers carried
// by key-exchange messages, and the length-prefixed wire encoding used to
// move them.
//
// A Value holding secret material is owned by whoever currently holds it and
// must be released with Release once consumed, on success and error paths
// alike.
package mpint

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// MaxValueLen is the largest value, in bytes, that this package will parse.
// The 16-bit wire length field admits up to 65535 bytes; anything over
// MaxValueLen is treated as malformed rather than allocated.
const MaxValueLen = 16384

// Value is a non-negative arbitrary-precision integer.
type Value struct {
	x big.Int
}

// New returns a Value holding x. x must be non-negative.
func New(x int64) *Value {
	if x < 0 {
		panic("mpint: negative value")
	}
	v := &Value{}
	v.x.SetInt64(x)
	return v
}

// FromBytes interprets b as a big-endian unsigned integer.
// An empty slice decodes to zero.
func FromBytes(b []byte) (*Value, error) {
	if len(b) > MaxValueLen {
		return nil, ErrMalformedInteger{Len: len(b)}
	}
	v := &Value{}
	v.x.SetBytes(b)
	return v, nil
}

// FromBig returns a Value holding a copy of x.
func FromBig(x *big.Int) *Value {
	if x.Sign() < 0 {
		panic("mpint: negative value")
	}
	v := &Value{}
	v.x.Set(x)
	return v
}

// Bytes returns the minimal big-endian representation of v.
// Zero serializes to an empty slice.
func (v *Value) Bytes() []byte {
	return v.x.Bytes()
}

// BitLen returns the length of v in bits. BitLen of zero is 0.
func (v *Value) BitLen() int {
	return v.x.BitLen()
}

// ByteLen returns the length of the minimal big-endian representation of v.
func (v *Value) ByteLen() int {
	return (v.x.BitLen() + 7) / 8
}

func (v *Value) Sign() int {
	return v.x.Sign()
}

func (v *Value) Cmp(o *Value) int {
	return v.x.Cmp(&o.x)
}

// Clone returns an independently owned copy of v.
func (v *Value) Clone() *Value {
	return FromBig(&v.x)
}

// Release zeroes v's backing storage and resets it to zero.
// A released Value must not be used again.
func (v *Value) Release() {
	if v == nil {
		return
	}
	words := v.x.Bits()
	for i := range words {
		words[i] = 0
	}
	v.x.SetInt64(0)
}

// ReleaseAll releases every non-nil value in vs.
func ReleaseAll(vs ...*Value) {
	for _, v := range vs {
		v.Release()
	}
}

// Exp computes base^exp mod mod. mod must be positive.
func Exp(base, exp, mod *Value) (*Value, error) {
	if mod == nil || mod.x.Sign() <= 0 {
		return nil, errors.New("mpint: modulus is not positive")
	}
	out := &Value{}
	out.x.Exp(&base.x, &exp.x, &mod.x)
	return out, nil
}

// Rand returns a uniformly random Value in (0, max) read from rng.
// max must be greater than 1.
func Rand(rng io.Reader, max *Value) (*Value, error) {
	if max == nil || max.x.Cmp(big.NewInt(1)) <= 0 {
		return nil, errors.New("mpint: random bound must exceed 1")
	}
	for {
		x, err := cryptoRandInt(rng, &max.x)
		if err != nil {
			return nil, errors.Wrap(err, "mpint: reading randomness")
		}
		if x.Sign() != 0 {
			return &Value{x: *x}, nil
		}
	}
}

// cryptoRandInt mirrors crypto/rand.Int but keeps the rng injectable for
// deterministic tests.
func cryptoRandInt(rng io.Reader, max *big.Int) (*big.Int, error) {
	k := (max.BitLen() + 7) / 8
	b := uint(max.BitLen() % 8)
	if b == 0 {
		b = 8
	}
	buf := make([]byte, k)
	defer func() {
		for i := range buf {
			buf[i] = 0
		}
	}()
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		// Mask off excess bits so the loop terminates quickly.
		buf[0] &= uint8(int(1<<b) - 1)
		n := new(big.Int).SetBytes(buf)
		if n.Cmp(max) < 0 {
			return n, nil
		}
	}
}
