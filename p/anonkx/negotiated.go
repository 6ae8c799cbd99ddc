package anonkx

// Kind tags which exchange type produced a session's negotiated info.
// Anonymous DH is the only kind implemented here; the tag exists so that a
// session already bound to another exchange type is rejected instead of
// silently reinterpreted.
type Kind uint8

const (
	KindNone = Kind(iota)
	KindAnonDH
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindAnonDH:
		return "ANON-DH"
	default:
		return "UNKNOWN"
	}
}

// NegotiatedInfo is the read-only record an exchange leaves behind for the
// enclosing session: which exchange kind ran and the modulus bit length it
// negotiated, for policy decisions such as minimum-strength enforcement.
type NegotiatedInfo struct {
	Kind        Kind
	ModulusBits int
}
