package mpint

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorRoundTrip(t *testing.T) {
	orig := []*Value{New(0xDEAD), New(2), New(0x0102030405)}
	data, err := AppendVector(nil, orig...)
	require.NoError(t, err)

	got, err := ReadVector(data, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range orig {
		require.Zero(t, orig[i].Cmp(got[i]), "field %d", i)
	}
}

func TestVectorTruncation(t *testing.T) {
	data, err := AppendVector(nil, New(0xDEAD), New(2), New(0x0102030405))
	require.NoError(t, err)

	// Every prefix cut short of the full message must fail cleanly.
	for cut := 0; cut < len(data); cut++ {
		_, err := ReadVector(data[:cut], 3)
		require.Error(t, err, "cut=%d", cut)
		var truncated ErrTruncated
		require.ErrorAs(t, err, &truncated, "cut=%d", cut)
	}
}

func TestVectorZeroLengthField(t *testing.T) {
	data, err := AppendVector(nil, New(0), New(5))
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01, 0x05}, data)

	got, err := ReadVector(data, 2)
	require.NoError(t, err)
	require.Equal(t, 0, got[0].Sign())
	require.Zero(t, got[1].Cmp(New(5)))
}

func TestVectorOversizedDeclaredLength(t *testing.T) {
	// Declared length 65535 with almost no bytes behind it.
	data := []byte{0xFF, 0xFF, 0x01, 0x02}
	_, err := ReadVector(data, 1)
	var truncated ErrTruncated
	require.ErrorAs(t, err, &truncated)
	require.Equal(t, 65535, truncated.Need)
}

func TestVectorValueTooLarge(t *testing.T) {
	huge := FromBig(new(big.Int).Lsh(big.NewInt(1), 8*MaxFieldLen))
	_, err := AppendVector(nil, huge)
	var tooLarge ErrValueTooLarge
	require.ErrorAs(t, err, &tooLarge)
}

func TestVectorMalformedInteger(t *testing.T) {
	// Well-formed framing, but the field exceeds the integer parse limit.
	n := MaxValueLen + 1
	data := make([]byte, 2+n)
	binary.BigEndian.PutUint16(data, uint16(n))
	_, err := ReadVector(data, 1)
	var malformed ErrMalformedInteger
	require.ErrorAs(t, err, &malformed)
}

func TestCursor(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	b, err := c.Take(2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, b)
	require.Equal(t, 1, c.Remaining())
	_, err = c.Take(2)
	require.Error(t, err)
	// A failed Take consumes nothing.
	require.Equal(t, 1, c.Remaining())
}
