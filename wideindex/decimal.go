package wideindex

import "fmt"

// FromDecimal parses an ASCII decimal digit string of any length. Digits are
// accumulated left to right as acc = acc*10 + digit, with the multiply done
// as 8*acc + 2*acc by repeated doubling so the result is exact.
//
// An empty string or a non digit byte returns ErrNotDecimal. A value that
// does not fit in 256 bits returns ErrOverflow.
func FromDecimal(digits string) (Index, error) {
	if len(digits) == 0 {
		return Index{}, fmt.Errorf("%w: empty string", ErrNotDecimal)
	}

	var acc Index
	var overflow bool
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return Index{}, fmt.Errorf("%w: byte %q at offset %d", ErrNotDecimal, c, i)
		}
		if acc, overflow = acc.mul10(); overflow {
			return Index{}, fmt.Errorf("%w: %.32s...", ErrOverflow, digits)
		}
		if acc, overflow = acc.AddOverflow(FromUint64(uint64(c - '0'))); overflow {
			return Index{}, fmt.Errorf("%w: %.32s...", ErrOverflow, digits)
		}
	}
	return acc, nil
}

// MustFromDecimal is FromDecimal for literals known to be valid.
func MustFromDecimal(digits string) Index {
	x, err := FromDecimal(digits)
	if err != nil {
		panic(err)
	}
	return x
}

// mul10 returns 10x, as 8x + 2x, and reports whether any doubling carried out
// of the high limb.
func (x Index) mul10() (Index, bool) {
	double, o1 := x.AddOverflow(x)
	quad, o2 := double.AddOverflow(double)
	eight, o3 := quad.AddOverflow(quad)
	ten, o4 := eight.AddOverflow(double)
	return ten, o1 || o2 || o3 || o4
}
