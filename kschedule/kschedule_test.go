package kschedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedule(t *testing.T) {
	s := New(Params{})
	require.NoError(t, s.ConsumeSecret([]byte("shared secret"), 2048))

	material, err := s.KeyMaterial()
	require.NoError(t, err)
	require.Len(t, material, DefaultSize)

	bits, err := s.ModulusBits()
	require.NoError(t, err)
	require.Equal(t, 2048, bits)
}

func TestDeterministicExpansion(t *testing.T) {
	a, b := New(Params{}), New(Params{})
	require.NoError(t, a.ConsumeSecret([]byte("shared secret"), 2048))
	require.NoError(t, b.ConsumeSecret([]byte("shared secret"), 2048))

	ma, err := a.KeyMaterial()
	require.NoError(t, err)
	mb, err := b.KeyMaterial()
	require.NoError(t, err)
	require.Equal(t, ma, mb)

	c := New(Params{})
	require.NoError(t, c.ConsumeSecret([]byte("other secret"), 2048))
	mc, err := c.KeyMaterial()
	require.NoError(t, err)
	require.NotEqual(t, ma, mc)
}

func TestMinBits(t *testing.T) {
	s := New(Params{MinBits: 1024})
	err := s.ConsumeSecret([]byte("shared secret"), 768)
	var weak ErrWeakSecret
	require.ErrorAs(t, err, &weak)
	require.Equal(t, 768, weak.Bits)

	_, err = s.KeyMaterial()
	require.Error(t, err)
}

func TestSingleUse(t *testing.T) {
	s := New(Params{})
	require.NoError(t, s.ConsumeSecret([]byte("one"), 2048))
	require.Error(t, s.ConsumeSecret([]byte("two"), 2048))
}

func TestEmptySecret(t *testing.T) {
	s := New(Params{})
	require.Error(t, s.ConsumeSecret(nil, 2048))
}

func TestSize(t *testing.T) {
	s := New(Params{Size: 96})
	require.NoError(t, s.ConsumeSecret([]byte("shared secret"), 2048))
	material, err := s.KeyMaterial()
	require.NoError(t, err)
	require.Len(t, material, 96)
}
