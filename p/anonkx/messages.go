package anonkx

import (
	"github.com/pkg/errors"

	"github.com/brendoncarroll/go-kx/crypto/mpint"
)

// ServerKeyExchange is the first handshake message: the group parameters and
// the server's ephemeral public value, each as a length-prefixed integer.
//
//	len(p) | p | len(g) | g | len(Y) | Y
type ServerKeyExchange struct {
	P, G, Y *mpint.Value
}

func (m *ServerKeyExchange) Encode() ([]byte, error) {
	return mpint.AppendVector(nil, m.P, m.G, m.Y)
}

// Release releases all three values.
func (m *ServerKeyExchange) Release() {
	if m == nil {
		return
	}
	mpint.ReleaseAll(m.P, m.G, m.Y)
}

// ParseServerKeyExchange decodes the three fields of message 1.
// Trailing bytes after the third field are ignored.
func ParseServerKeyExchange(data []byte) (*ServerKeyExchange, error) {
	vs, err := mpint.ReadVector(data, 3)
	if err != nil {
		return nil, mapWireError("processing server key exchange", err)
	}
	return &ServerKeyExchange{P: vs[0], G: vs[1], Y: vs[2]}, nil
}

// ClientKeyExchange is the second handshake message: the client's ephemeral
// public value as a single length-prefixed integer.
type ClientKeyExchange struct {
	Y *mpint.Value
}

func (m *ClientKeyExchange) Encode() ([]byte, error) {
	return mpint.AppendVector(nil, m.Y)
}

func (m *ClientKeyExchange) Release() {
	if m == nil {
		return
	}
	m.Y.Release()
}

// ParseClientKeyExchange decodes the single field of message 2.
func ParseClientKeyExchange(data []byte) (*ClientKeyExchange, error) {
	vs, err := mpint.ReadVector(data, 1)
	if err != nil {
		return nil, mapWireError("processing client key exchange", err)
	}
	return &ClientKeyExchange{Y: vs[0]}, nil
}

// mapWireError lifts codec errors to their protocol-level conditions.
func mapWireError(op string, err error) error {
	var truncated mpint.ErrTruncated
	if errors.As(err, &truncated) {
		return ErrUnexpectedPacketLength{Op: op, Cause: err}
	}
	var malformed mpint.ErrMalformedInteger
	if errors.As(err, &malformed) {
		return ErrIntegerParse{Op: op, Cause: err}
	}
	return err
}
