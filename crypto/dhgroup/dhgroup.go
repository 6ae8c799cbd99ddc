// Package dhgroup supplies Diffie-Hellman modulus/generator pairs sized by a
// requested security strength.
//
// The well-known source hands out the MODP groups of RFC 2409 and RFC 3526.
// Determinism matters here: the server encodes the modulus in its first
// key-exchange message but does not carry it in session state, and re-obtains
// it from this package when the client's reply arrives. A Source must
// therefore return the same pair for the same bit count for the life of the
// process.
package dhgroup

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/brendoncarroll/go-kx/crypto/mpint"
)

// DefaultBits is the size class used when no strength is configured.
const DefaultBits = 2048

// ErrNoSuchGroup is returned when no group of at least the requested size exists.
var ErrNoSuchGroup = errors.New("dhgroup: no group of the requested size")

// Params is a modulus/generator pair.
// Both values are owned by the holder and safe to release; sources hand out
// independent copies.
type Params struct {
	P *mpint.Value
	G *mpint.Value
}

// Bits returns the modulus bit length, the security-strength parameter of
// the pair.
func (p Params) Bits() int {
	return p.P.BitLen()
}

// Release releases both values.
func (p Params) Release() {
	mpint.ReleaseAll(p.P, p.G)
}

// Source supplies parameters for a requested strength in bits.
// Implementations must be deterministic per bit count within one process and
// safe for concurrent use.
type Source interface {
	Params(bits int) (Params, error)
}

// WellKnown returns the Source backed by the RFC 2409 and RFC 3526 MODP
// groups. Requests are rounded up to the next available size class.
func WellKnown() Source {
	return wellKnown{}
}

type wellKnown struct{}

func (wellKnown) Params(bits int) (Params, error) {
	if bits <= 0 {
		bits = DefaultBits
	}
	i := sort.SearchInts(groupSizes, bits)
	if i == len(groupSizes) {
		return Params{}, errors.Wrapf(ErrNoSuchGroup, "%d bits", bits)
	}
	g := groups[groupSizes[i]]
	return Params{P: g.p.Clone(), G: g.g.Clone()}, nil
}

// Sizes returns the available size classes in ascending order.
func Sizes() []int {
	out := make([]int, len(groupSizes))
	copy(out, groupSizes)
	return out
}
