// Package anonkx implements the anonymous Diffie-Hellman key exchange of a
// secure channel: the two handshake messages that let a client and server
// agree on a shared secret without certificates.
//
// A Session is created per handshake and driven through exactly two
// messages:
//
//	Server: GenerateServerKX -> (awaiting peer) -> ProcessClientKX -> done
//	Client: ProcessServerKX  -> (have params)   -> GenerateClientKX -> done
//
// The agreed secret is handed to the session's kx.SecretConsumer; the
// exchanged values are released as soon as each operation is finished with
// them. Nothing here authenticates the peer, by definition of the exchange.
package anonkx

import "time"

// MaxSessionDuration is how long a session may sit in-flight before its
// operations are refused. The enclosing handshake discards expired sessions.
const MaxSessionDuration = 1 * time.Minute

// Role says which side of the exchange a session drives.
type Role uint8

const (
	Server = Role(1 + iota)
	Client
)

func (r Role) String() string {
	switch r {
	case Server:
		return "SERVER"
	case Client:
		return "CLIENT"
	default:
		return "UNKNOWN"
	}
}

type step uint8

const (
	stepStart = step(iota)
	stepAwaitingPeer
	stepHaveParams
	stepDone
	stepFailed
)

func (s step) String() string {
	switch s {
	case stepStart:
		return "START"
	case stepAwaitingPeer:
		return "AWAITING_PEER"
	case stepHaveParams:
		return "HAVE_PARAMS"
	case stepDone:
		return "DONE"
	case stepFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
