package modp

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/brendoncarroll/go-kx/crypto/dhgroup"
	"github.com/brendoncarroll/go-kx/crypto/mpint"
	"github.com/brendoncarroll/go-kx/kxtest"
)

func TestGenerate(t *testing.T) {
	gp, err := dhgroup.WellKnown().Params(768)
	require.NoError(t, err)
	kp, err := Generate(kxtest.NewTestRand(t, 0), gp.P, gp.G)
	require.NoError(t, err)
	require.NotNil(t, kp.Private)
	require.NotNil(t, kp.Public)
	require.True(t, kp.Private.Sign() > 0)
	require.True(t, kp.Private.Cmp(gp.P) < 0)

	// public value is g^x mod p
	want, err := mpint.Exp(gp.G, kp.Private, gp.P)
	require.NoError(t, err)
	require.Zero(t, kp.Public.Cmp(want))
}

func TestGenerateRNGFailure(t *testing.T) {
	gp, err := dhgroup.WellKnown().Params(768)
	require.NoError(t, err)
	_, err = Generate(brokenReader{}, gp.P, gp.G)
	var kgf ErrKeyGeneration
	require.ErrorAs(t, err, &kgf)
}

// Textbook group: p=23, g=5. 5^6 mod 23 = 8, 5^15 mod 23 = 19, and both
// sides of the exchange land on 19^6 mod 23 = 8^15 mod 23 = 2.
func TestDeriveTextbookVector(t *testing.T) {
	p := mpint.New(23)

	serverPriv, clientPriv := mpint.New(6), mpint.New(15)
	serverPub, clientPub := mpint.New(8), mpint.New(19)

	k1, err := DeriveShared(clientPub, serverPriv, p)
	require.NoError(t, err)
	k2, err := DeriveShared(serverPub, clientPriv, p)
	require.NoError(t, err)
	require.Equal(t, []byte{2}, k1)
	require.Equal(t, k1, k2)
}

func TestAgreement(t *testing.T) {
	gp, err := dhgroup.WellKnown().Params(768)
	require.NoError(t, err)
	a, err := Generate(kxtest.NewTestRand(t, 1), gp.P, gp.G)
	require.NoError(t, err)
	b, err := Generate(kxtest.NewTestRand(t, 2), gp.P, gp.G)
	require.NoError(t, err)

	k1, err := DeriveShared(b.Public, a.Private, gp.P)
	require.NoError(t, err)
	k2, err := DeriveShared(a.Public, b.Private, gp.P)
	require.NoError(t, err)
	require.Equal(t, k1, k2)
	require.NotEmpty(t, k1)
}

func TestDerivePeerOutOfRange(t *testing.T) {
	p := mpint.New(23)
	priv := mpint.New(6)
	for _, peer := range []*mpint.Value{
		mpint.New(0),
		mpint.New(23),
		mpint.New(24),
	} {
		_, err := DeriveShared(peer, priv, p)
		var kaf ErrKeyAgreement
		require.ErrorAs(t, err, &kaf)
	}
}

func TestDeriveBadModulus(t *testing.T) {
	_, err := DeriveShared(mpint.New(5), mpint.New(6), mpint.New(0))
	var kaf ErrKeyAgreement
	require.ErrorAs(t, err, &kaf)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}
