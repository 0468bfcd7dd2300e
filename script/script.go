// Package script reads, writes and runs playlist scripts.
//
// A script creates version 0 from an initial song, applies a list of
// construction operations each of which adds the next version, and then
// answers a list of range sum queries. The text form is a whitespace
// separated token stream:
//
//	N Q initial
//	copy L R        (N construction lines, any of these forms)
//	set I D M
//	I D M
//	I F T           (Q query lines)
//
// copy L R concatenates versions L and R. set I D M replaces the song at
// position D of version I with M. The keyword may be any word other than
// copy, or left out. A query I F T totals the songs of version
// I from position F through T inclusive. Positions are decimal strings of
// any length.
package script

import (
	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/wideindex"
)

type OpKind uint8

const (
	OpCopy OpKind = iota + 1
	OpReplace
)

func (k OpKind) String() string {
	switch k {
	case OpCopy:
		return "copy"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Op is one construction operation.
//
//	OpCopy:    Left, Right
//	OpReplace: Base, Position, Song
type Op struct {
	Kind     OpKind          `cbor:"1,keyasint"`
	Left     uint64          `cbor:"2,keyasint,omitempty"`
	Right    uint64          `cbor:"3,keyasint,omitempty"`
	Base     uint64          `cbor:"4,keyasint,omitempty"`
	Position wideindex.Index `cbor:"5,keyasint"`
	Song     uint32          `cbor:"6,keyasint,omitempty"`
}

func Copy(left, right uint64) Op {
	return Op{Kind: OpCopy, Left: left, Right: right}
}

func Replace(base uint64, position wideindex.Index, song uint32) Op {
	return Op{Kind: OpReplace, Base: base, Position: position, Song: song}
}

// Query totals version Version over [From, To].
type Query struct {
	Version uint64          `cbor:"1,keyasint"`
	From    wideindex.Index `cbor:"2,keyasint"`
	To      wideindex.Index `cbor:"3,keyasint"`
}

// Script is a complete run. Songs are kept as read, reduction mod P happens
// when they are applied.
type Script struct {
	Initial uint32  `cbor:"1,keyasint"`
	Ops     []Op    `cbor:"2,keyasint"`
	Queries []Query `cbor:"3,keyasint"`
}

// InitialSong returns the reduced initial song.
func (s *Script) InitialSong() modular.Value {
	return modular.FromUint32(s.Initial)
}
