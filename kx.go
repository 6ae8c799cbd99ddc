// Package kx contains the shared surface of the key-exchange engine:
// the collaborator interface through which agreed secrets leave the
// engine, and the package logger.
//
// The engine itself lives in p/anonkx, built on the codec and
// arithmetic packages under crypto/.
package kx

// SecretConsumer receives the raw secret produced by a completed key
// exchange, together with the negotiated modulus bit length for policy
// decisions such as minimum-strength enforcement.
//
// Implementations must copy the secret if they need it after returning;
// the caller zeroes its buffer once ConsumeSecret returns.
type SecretConsumer interface {
	ConsumeSecret(secret []byte, modulusBits int) error
}

// SecretConsumerFunc adapts a function to the SecretConsumer interface.
type SecretConsumerFunc func(secret []byte, modulusBits int) error

func (f SecretConsumerFunc) ConsumeSecret(secret []byte, modulusBits int) error {
	return f(secret, modulusBits)
}
