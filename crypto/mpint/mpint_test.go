package mpint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brendoncarroll/go-kx/kxtest"
)

func TestBytesMinimal(t *testing.T) {
	v, err := FromBytes([]byte{0x00, 0x00, 0x01, 0x02})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v.Bytes())
	require.Equal(t, 2, v.ByteLen())
	require.Equal(t, 9, v.BitLen())
}

func TestZero(t *testing.T) {
	v, err := FromBytes(nil)
	require.NoError(t, err)
	require.Equal(t, 0, v.Sign())
	require.Len(t, v.Bytes(), 0)
}

func TestFromBytesLimit(t *testing.T) {
	_, err := FromBytes(make([]byte, MaxValueLen+1))
	require.Error(t, err)
	var malformed ErrMalformedInteger
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, MaxValueLen+1, malformed.Len)
}

func TestRelease(t *testing.T) {
	v := New(0x1234)
	v.Release()
	require.Equal(t, 0, v.Sign())
	require.Len(t, v.Bytes(), 0)
}

func TestExp(t *testing.T) {
	// 5^6 mod 23 == 8
	got, err := Exp(New(5), New(6), New(23))
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(New(8)))

	_, err = Exp(New(5), New(6), New(0))
	require.Error(t, err)
}

func TestRand(t *testing.T) {
	rng := kxtest.NewTestRand(t, 0)
	max := FromBig(new(big.Int).Lsh(big.NewInt(1), 100))
	for i := 0; i < 100; i++ {
		x, err := Rand(rng, max)
		require.NoError(t, err)
		require.True(t, x.Sign() > 0)
		require.True(t, x.Cmp(max) < 0)
	}
}

func TestRandDeterministic(t *testing.T) {
	max := FromBig(new(big.Int).Lsh(big.NewInt(1), 256))
	a, err := Rand(kxtest.NewTestRand(t, 7), max)
	require.NoError(t, err)
	b, err := Rand(kxtest.NewTestRand(t, 7), max)
	require.NoError(t, err)
	require.Equal(t, 0, a.Cmp(b))
}
