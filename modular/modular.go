// Package modular implements Value, an integer held in canonical form modulo
// the prime P. Song durations and playlist totals are Values.
package modular

import "strconv"

// P is the modulus. 2P fits in a uint32, so a single addition of two
// canonical values never wraps.
const P uint32 = 1_000_000_007

// Value is an integer in [0, P). The zero value is 0.
type Value struct {
	v uint32
}

func Zero() Value { return Value{} }

// FromUint32 reduces i into [0, P).
func FromUint32(i uint32) Value {
	return Value{v: i % P}
}

func (a Value) Add(b Value) Value {
	return Value{v: (a.v + b.v) % P}
}

// Sub returns a - b mod P. The difference is taken in wrapping uint32
// arithmetic and lifted by P before reduction so the result stays canonical.
func (a Value) Sub(b Value) Value {
	return Value{v: (a.v - b.v + P) % P}
}

// Uint32 returns the canonical representative.
func (a Value) Uint32() uint32 { return a.v }

func (a Value) String() string {
	return strconv.FormatUint(uint64(a.v), 10)
}
