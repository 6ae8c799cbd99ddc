package mpint

import (
	"encoding/binary"
	"fmt"
)

// MaxFieldLen is the largest value the 16-bit wire length prefix can declare.
const MaxFieldLen = 1<<16 - 1

// ErrTruncated is returned when a buffer ends before a declared field does.
type ErrTruncated struct {
	Need      int
	Remaining int
}

func (e ErrTruncated) Error() string {
	return fmt.Sprintf("mpint: truncated input: need %d bytes, %d remain", e.Need, e.Remaining)
}

// ErrValueTooLarge is returned when a value cannot fit a 16-bit length prefix.
type ErrValueTooLarge struct {
	Len int
}

func (e ErrValueTooLarge) Error() string {
	return fmt.Sprintf("mpint: value is %d bytes, wire limit is %d", e.Len, MaxFieldLen)
}

// ErrMalformedInteger is returned when a byte run cannot be interpreted as a value.
type ErrMalformedInteger struct {
	Len int
}

func (e ErrMalformedInteger) Error() string {
	return fmt.Sprintf("mpint: %d byte integer exceeds the %d byte parse limit", e.Len, MaxValueLen)
}

// AppendVector appends each value to out as a 2-byte big-endian length
// followed by the value's minimal big-endian bytes, and returns the
// extended buffer.
func AppendVector(out []byte, vs ...*Value) ([]byte, error) {
	for _, v := range vs {
		b := v.Bytes()
		if len(b) > MaxFieldLen {
			return nil, ErrValueTooLarge{Len: len(b)}
		}
		var lp [2]byte
		binary.BigEndian.PutUint16(lp[:], uint16(len(b)))
		out = append(out, lp[:]...)
		out = append(out, b...)
	}
	return out, nil
}

// Cursor reads length-prefixed fields from a buffer left to right,
// checking the remaining length before every read.
type Cursor struct {
	buf []byte
	off int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining reports how many unread bytes are left.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Take consumes exactly n bytes. The returned slice aliases the buffer.
func (c *Cursor) Take(n int) ([]byte, error) {
	if rem := c.Remaining(); rem < n {
		return nil, ErrTruncated{Need: n, Remaining: rem}
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Field consumes one length-prefixed field and returns its contents,
// which may be empty.
func (c *Cursor) Field() ([]byte, error) {
	lp, err := c.Take(2)
	if err != nil {
		return nil, err
	}
	n := int(binary.BigEndian.Uint16(lp))
	return c.Take(n)
}

// ReadVector decodes exactly count length-prefixed fields from data.
// On any failure no values are returned and everything decoded so far is
// released; on success the caller owns all returned values.
func ReadVector(data []byte, count int) ([]*Value, error) {
	c := NewCursor(data)
	vs := make([]*Value, 0, count)
	for i := 0; i < count; i++ {
		b, err := c.Field()
		if err != nil {
			ReleaseAll(vs...)
			return nil, err
		}
		v, err := FromBytes(b)
		if err != nil {
			ReleaseAll(vs...)
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}
