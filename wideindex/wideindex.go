// Package wideindex provides Index, the exact unsigned 256 bit integer used
// for playlist lengths and song positions.
//
// Repeated concatenation doubles a playlist's length with every version, so
// after a few hundred versions the length no longer fits in 128 bits. Index
// carries two 128 bit limbs (low, high) with carry and borrow propagated
// between them. The limbs are held as a holiman/uint256 word array, whose
// wrap around behaviour is bit exact with the two limb formulation.
package wideindex

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	ErrNotDecimal = errors.New("not a decimal digit string")
	ErrOverflow   = errors.New("value exceeds 256 bits")
	ErrUnderflow  = errors.New("subtraction would underflow")
	ErrBadLength  = errors.New("binary index must be exactly 32 bytes")
)

// Index is an unsigned integer in [0, 2^256). The zero value is 0. Index is
// comparable with == and is safe to copy.
type Index struct {
	v uint256.Int
}

// Limb is one 128 bit half of an Index.
type Limb struct {
	Hi, Lo uint64
}

func Zero() Index { return Index{} }

func One() Index { return FromUint64(1) }

func FromUint64(u uint64) Index {
	var x Index
	x.v.SetUint64(u)
	return x
}

// FromLimbs assembles an Index from its low and high 128 bit halves.
func FromLimbs(low, high Limb) Index {
	var x Index
	x.v[0], x.v[1] = low.Lo, low.Hi
	x.v[2], x.v[3] = high.Lo, high.Hi
	return x
}

// Limbs returns the low and high 128 bit halves of x.
func (x Index) Limbs() (low, high Limb) {
	return Limb{Hi: x.v[1], Lo: x.v[0]}, Limb{Hi: x.v[3], Lo: x.v[2]}
}

// Add returns x + y. Lengths and positions are assumed to stay within 256
// bits, Add panics if they do not. Use AddOverflow where the operands come
// from unvalidated input.
func (x Index) Add(y Index) Index {
	z, overflow := x.AddOverflow(y)
	if overflow {
		panic(ErrOverflow)
	}
	return z
}

// AddOverflow returns x + y mod 2^256 and reports whether the carry left the
// high limb.
func (x Index) AddOverflow(y Index) (Index, bool) {
	var z Index
	_, overflow := z.v.AddOverflow(&x.v, &y.v)
	return z, overflow
}

// Sub returns x - y. The caller must guarantee x >= y, typically because y is
// a prefix length already known to be <= x. Sub panics otherwise.
func (x Index) Sub(y Index) Index {
	z, underflow := x.SubOverflow(y)
	if underflow {
		panic(ErrUnderflow)
	}
	return z
}

// SubOverflow returns x - y mod 2^256 and reports whether a borrow left the
// high limb.
func (x Index) SubOverflow(y Index) (Index, bool) {
	var z Index
	_, underflow := z.v.SubOverflow(&x.v, &y.v)
	return z, underflow
}

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y. The
// order is that of (high, low).
func (x Index) Cmp(y Index) int {
	return x.v.Cmp(&y.v)
}

func (x Index) Less(y Index) bool { return x.v.Lt(&y.v) }

func (x Index) Equal(y Index) bool { return x.v.Eq(&y.v) }

func (x Index) IsZero() bool { return x.v.IsZero() }

// IsUint64 reports whether x fits in a uint64, in which case Uint64 is exact.
func (x Index) IsUint64() bool { return x.v.IsUint64() }

// Uint64 returns the low 64 bits of x.
func (x Index) Uint64() uint64 { return x.v.Uint64() }

func Min(x, y Index) Index {
	if y.Less(x) {
		return y
	}
	return x
}

func Max(x, y Index) Index {
	if x.Less(y) {
		return y
	}
	return x
}

// String formats x in decimal.
func (x Index) String() string {
	return x.v.Dec()
}

// MarshalBinary encodes x as 32 big endian bytes.
func (x Index) MarshalBinary() ([]byte, error) {
	b := x.v.Bytes32()
	return b[:], nil
}

// UnmarshalBinary is the inverse of MarshalBinary.
func (x *Index) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return ErrBadLength
	}
	x.v.SetBytes32(data)
	return nil
}
