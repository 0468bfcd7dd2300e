package playlist

import (
	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/wideindex"
)

// Handle identifies a version. Handles are issued densely from zero in
// creation order and are never reused.
type Handle uint64

type Kind uint8

const (
	KindSingle Kind = iota
	KindConcat
	KindReplace
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindConcat:
		return "concat"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Node is one immutable version. Which fields are meaningful depends on
// Kind:
//
//	KindSingle:  Value
//	KindConcat:  Left, Right, LeftLength
//	KindReplace: Inner, Position, Value (the new song), Delta
//
// Length, Aggregate and Depth are set for every kind.
type Node struct {
	Kind Kind

	Value modular.Value

	Left       Handle
	Right      Handle
	LeftLength wideindex.Index

	Inner    Handle
	Position wideindex.Index
	Delta    modular.Value

	// Length is the number of songs in the version.
	Length wideindex.Index
	// Aggregate is the sum mod P of every song in the version.
	Aggregate modular.Value
	// Depth is the longest chain of nodes below this one. A Single has
	// depth 0. Queries against a handle visit at most Depth+1 nodes per
	// path.
	Depth uint64
}

func newSingle(v modular.Value) Node {
	return Node{
		Kind:      KindSingle,
		Value:     v,
		Length:    wideindex.One(),
		Aggregate: v,
	}
}

func newConcat(left, right Handle, l, r *Node, length wideindex.Index) Node {
	return Node{
		Kind:       KindConcat,
		Left:       left,
		Right:      right,
		LeftLength: l.Length,
		Length:     length,
		Aggregate:  l.Aggregate.Add(r.Aggregate),
		Depth:      1 + max(l.Depth, r.Depth),
	}
}

func newReplace(inner Handle, in *Node, position wideindex.Index, v, old modular.Value) Node {
	delta := v.Sub(old)
	return Node{
		Kind:      KindReplace,
		Inner:     inner,
		Position:  position,
		Value:     v,
		Delta:     delta,
		Length:    in.Length,
		Aggregate: in.Aggregate.Add(delta),
		Depth:     1 + in.Depth,
	}
}
