package script

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// Codec encodes scripts as CBOR. Encoding is core deterministic, so equal
// scripts always produce identical bytes. Positions are carried as 32 byte
// big endian byte strings.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return Codec{}, fmt.Errorf("%w: %w", ErrCBORCodec, err)
	}
	dec, err := cbor.DecOptions{
		// scripts routinely carry more operations than the library default
		MaxArrayElements: math.MaxInt32,
	}.DecMode()
	if err != nil {
		return Codec{}, fmt.Errorf("%w: %w", ErrCBORCodec, err)
	}
	return Codec{enc: enc, dec: dec}, nil
}

func (c Codec) MarshalScript(s *Script) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return c.enc.Marshal(s)
}

func (c Codec) UnmarshalScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := c.dec.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) check() error {
	for i, op := range s.Ops {
		if op.Kind != OpCopy && op.Kind != OpReplace {
			return fmt.Errorf("operation %d: %w: %d", i, ErrUnknownOp, op.Kind)
		}
	}
	return nil
}
