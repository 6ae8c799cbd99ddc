package anonkx

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/brendoncarroll/go-kx"
	"github.com/brendoncarroll/go-kx/crypto/dhgroup"
	"github.com/brendoncarroll/go-kx/crypto/modp"
	"github.com/brendoncarroll/go-kx/crypto/mpint"
)

// SessionParams configures a Session.
type SessionParams struct {
	Role Role
	// Bits requests a modulus size class. Zero means dhgroup.DefaultBits.
	// Only the server side uses it; the client takes the parameters it is sent.
	Bits int
	// Source supplies group parameters. Nil means dhgroup.WellKnown().
	// It must be deterministic per bit count: the server re-obtains the
	// modulus from it when the client's reply arrives.
	Source dhgroup.Source
	// Consumer receives the agreed secret. Required.
	Consumer kx.SecretConsumer
	// Negotiated carries an exchange record already present on the enclosing
	// session, if any. A record of another kind makes every operation fail.
	Negotiated *NegotiatedInfo
	// Rand is the entropy source for ephemeral exponents. Nil means
	// crypto/rand.Reader.
	Rand   io.Reader
	Logger *logrus.Logger
	Clock  clockwork.Clock
}

// Session is the per-handshake state of one anonymous DH exchange.
// It is exclusively owned by its handshake and not safe for concurrent use.
type Session struct {
	role      Role
	bits      int
	source    dhgroup.Source
	consumer  kx.SecretConsumer
	rng       io.Reader
	log       *logrus.Logger
	clock     clockwork.Clock
	createdAt time.Time

	step       step
	negotiated *NegotiatedInfo

	// server: ephemeral exponent held between the two messages
	priv *mpint.Value
	// client: parameters and peer public value from message 1
	params *ServerKeyExchange
}

func NewSession(params SessionParams) (*Session, error) {
	if params.Role != Server && params.Role != Client {
		return nil, errors.Errorf("anonkx: unknown role %d", params.Role)
	}
	if params.Consumer == nil {
		return nil, errors.New("anonkx: SessionParams.Consumer is required")
	}
	if params.Source == nil {
		params.Source = dhgroup.WellKnown()
	}
	if params.Rand == nil {
		params.Rand = rand.Reader
	}
	if params.Logger == nil {
		params.Logger = logrus.StandardLogger()
	}
	if params.Clock == nil {
		params.Clock = clockwork.NewRealClock()
	}
	return &Session{
		role:       params.Role,
		bits:       params.Bits,
		source:     params.Source,
		consumer:   params.Consumer,
		rng:        params.Rand,
		log:        params.Logger,
		clock:      params.Clock,
		createdAt:  params.Clock.Now(),
		negotiated: params.Negotiated,
	}, nil
}

// GenerateServerKX produces message 1: the group parameters and the server's
// ephemeral public value. The session keeps only the private exponent,
// pending the client's reply.
func (s *Session) GenerateServerKX() ([]byte, error) {
	const op = "generating server key exchange"
	if err := s.require(op, Server, stepStart); err != nil {
		return nil, err
	}
	gp, err := s.source.Params(s.bits)
	if err != nil {
		return nil, errors.Wrap(err, "anonkx: obtaining group parameters")
	}
	if err := s.recordNegotiated(op, gp.Bits()); err != nil {
		gp.Release()
		return nil, err
	}
	kp, err := modp.Generate(s.rng, gp.P, gp.G)
	if err != nil {
		gp.Release()
		s.fail()
		return nil, err
	}
	msg := &ServerKeyExchange{P: gp.P, G: gp.G, Y: kp.Public}
	out, err := msg.Encode()
	// The structured forms went onto the wire; only the exponent stays.
	msg.Release()
	if err != nil {
		kp.Private.Release()
		s.fail()
		return nil, err
	}
	s.priv = kp.Private
	s.step = stepAwaitingPeer
	s.log.WithFields(logrus.Fields{
		"role": s.role,
		"bits": s.negotiated.ModulusBits,
	}).Debug("generated server key exchange")
	return out, nil
}

// ProcessServerKX consumes message 1 on the client side, storing the
// parameters and the server's public value for GenerateClientKX.
func (s *Session) ProcessServerKX(data []byte) error {
	const op = "processing server key exchange"
	if err := s.require(op, Client, stepStart); err != nil {
		return err
	}
	msg, err := ParseServerKeyExchange(data)
	if err != nil {
		return err
	}
	if err := s.recordNegotiated(op, msg.P.BitLen()); err != nil {
		msg.Release()
		return err
	}
	s.params = msg
	s.step = stepHaveParams
	s.log.WithFields(logrus.Fields{
		"role": s.role,
		"bits": s.negotiated.ModulusBits,
	}).Debug("processed server key exchange")
	return nil
}

// GenerateClientKX produces message 2 and completes the client side:
// it generates the client's key pair over the stored parameters, derives the
// shared secret from the server's public value, hands the secret to the
// consumer, and releases everything it held.
func (s *Session) GenerateClientKX() ([]byte, error) {
	const op = "generating client key exchange"
	if err := s.require(op, Client, stepHaveParams); err != nil {
		return nil, err
	}
	m := s.params
	kp, err := modp.Generate(s.rng, m.P, m.G)
	if err != nil {
		s.fail()
		return nil, err
	}
	secret, err := modp.DeriveShared(m.Y, kp.Private, m.P)
	if err != nil {
		kp.Release()
		s.fail()
		return nil, err
	}
	out, encErr := (&ClientKeyExchange{Y: kp.Public}).Encode()
	bits := s.negotiated.ModulusBits
	// None of the exchanged values may outlive this point.
	kp.Release()
	s.params = nil
	m.Release()
	if encErr != nil {
		zeroBytes(secret)
		s.step = stepFailed
		return nil, encErr
	}
	s.step = stepDone
	err = s.consumer.ConsumeSecret(secret, bits)
	zeroBytes(secret)
	if err != nil {
		return nil, errors.Wrap(err, "anonkx: scheduling secret")
	}
	s.log.WithFields(logrus.Fields{
		"role": s.role,
		"bits": bits,
	}).Debug("generated client key exchange")
	return out, nil
}

// ProcessClientKX consumes message 2 and completes the server side: it
// re-obtains the group parameters from the source, derives the shared secret
// from the client's public value and the stored exponent, hands the secret to
// the consumer, and releases everything it held.
func (s *Session) ProcessClientKX(data []byte) error {
	const op = "processing client key exchange"
	if err := s.require(op, Server, stepAwaitingPeer); err != nil {
		return err
	}
	msg, err := ParseClientKeyExchange(data)
	if err != nil {
		s.fail()
		return err
	}
	// The modulus is not carried in session state between the two messages;
	// the source must reproduce it for the configured bit count.
	gp, err := s.source.Params(s.bits)
	if err != nil {
		msg.Release()
		s.fail()
		return errors.Wrap(err, "anonkx: re-obtaining group parameters")
	}
	priv := s.priv
	s.priv = nil
	secret, err := modp.DeriveShared(msg.Y, priv, gp.P)
	msg.Release()
	gp.Release()
	priv.Release()
	if err != nil {
		s.step = stepFailed
		return err
	}
	bits := s.negotiated.ModulusBits
	s.step = stepDone
	err = s.consumer.ConsumeSecret(secret, bits)
	zeroBytes(secret)
	if err != nil {
		return errors.Wrap(err, "anonkx: scheduling secret")
	}
	s.log.WithFields(logrus.Fields{
		"role": s.role,
		"bits": bits,
	}).Debug("processed client key exchange")
	return nil
}

// Negotiated returns the exchange record, failing if none exists yet or if
// the session is bound to a record of another kind.
func (s *Session) Negotiated() (NegotiatedInfo, error) {
	const op = "reading negotiated info"
	if s.negotiated == nil {
		return NegotiatedInfo{}, ErrInvalidRequest{Op: op, Reason: "no exchange recorded"}
	}
	if s.negotiated.Kind != KindAnonDH {
		return NegotiatedInfo{}, ErrInvalidRequest{
			Op:     op,
			Reason: fmt.Sprintf("session is bound to a %v exchange", s.negotiated.Kind),
		}
	}
	return *s.negotiated, nil
}

// Expired reports whether the session has outlived MaxSessionDuration.
func (s *Session) Expired() bool {
	return s.clock.Now().Sub(s.createdAt) > MaxSessionDuration
}

// Abort releases everything the session holds and makes it unusable.
// The enclosing handshake calls it when discarding an in-flight session.
func (s *Session) Abort() {
	s.fail()
}

func (s *Session) require(op string, role Role, st step) error {
	if s.Expired() {
		return ErrSessionExpired{ExpiredAt: s.createdAt.Add(MaxSessionDuration)}
	}
	if s.role != role {
		return ErrInvalidRequest{
			Op:     op,
			Reason: fmt.Sprintf("%v operation on a %v session", role, s.role),
		}
	}
	if s.step != st {
		return ErrInvalidRequest{
			Op:     op,
			Reason: fmt.Sprintf("session is in state %v, not %v", s.step, st),
		}
	}
	return nil
}

// recordNegotiated sets the session's exchange record, rejecting a session
// already bound to a different exchange kind.
func (s *Session) recordNegotiated(op string, bits int) error {
	if s.negotiated != nil && s.negotiated.Kind != KindAnonDH {
		return ErrInvalidRequest{
			Op:     op,
			Reason: fmt.Sprintf("session is already bound to a %v exchange", s.negotiated.Kind),
		}
	}
	s.negotiated = &NegotiatedInfo{Kind: KindAnonDH, ModulusBits: bits}
	return nil
}

// fail releases all held values and puts the session in its terminal failed
// state.
func (s *Session) fail() {
	s.priv.Release()
	s.priv = nil
	s.params.Release()
	s.params = nil
	s.step = stepFailed
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
