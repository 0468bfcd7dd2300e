package playlist

import (
	"fmt"

	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/wideindex"
)

// Value returns the song at position in version h.
func (s *Store) Value(h Handle, position wideindex.Index) (modular.Value, error) {
	n, err := s.get(h)
	if err != nil {
		return modular.Value{}, s.reject(err)
	}
	if !position.Less(n.Length) {
		return modular.Value{}, s.reject(
			fmt.Errorf("%w: %s, version %d has length %s", ErrPositionRange, position, h, n.Length))
	}

	v, stats := s.value(h, position)
	s.observer.QueryAnswered(QueryValue, stats)
	return v, nil
}

// Sum returns the total mod P of the songs at positions from through to,
// inclusive, in version h.
func (s *Store) Sum(h Handle, from, to wideindex.Index) (modular.Value, error) {
	n, err := s.get(h)
	if err != nil {
		return modular.Value{}, s.reject(err)
	}
	if to.Less(from) {
		return modular.Value{}, s.reject(fmt.Errorf("%w: [%s, %s]", ErrInvalidRange, from, to))
	}
	if !to.Less(n.Length) {
		return modular.Value{}, s.reject(
			fmt.Errorf("%w: %s, version %d has length %s", ErrPositionRange, to, h, n.Length))
	}

	v, stats := s.sum(h, from, to)
	s.observer.QueryAnswered(QuerySum, stats)
	return v, nil
}

// value walks from h to the song at position. position must be below the
// length of h.
func (s *Store) value(h Handle, position wideindex.Index) (modular.Value, QueryStats) {
	var stats QueryStats
	for {
		n := s.node(h)
		stats.Frames++

		switch n.Kind {
		case KindConcat:
			if position.Less(n.LeftLength) {
				h = n.Left
				continue
			}
			position = position.Sub(n.LeftLength)
			h = n.Right
		case KindReplace:
			if position == n.Position {
				return n.Value, stats
			}
			h = n.Inner
		default:
			// A Single has length one so position is zero.
			return n.Value, stats
		}
	}
}

// span is a pending inclusive range query against one node.
type span struct {
	h        Handle
	from, to wideindex.Index
}

// sum totals the range [from, to] of h. The range must lie within h.
//
// Contributions are added to a single accumulator as spans are popped from
// the work stack. Addition mod P is commutative, so the order in which the
// left and right halves of a Concat are visited does not matter.
func (s *Store) sum(h Handle, from, to wideindex.Index) (modular.Value, QueryStats) {
	var stats QueryStats
	total := modular.Zero()
	one := wideindex.One()

	stack := []span{{h: h, from: from, to: to}}
	for len(stack) > 0 {
		sp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := s.node(sp.h)
		stats.Frames++

		if sp.from.IsZero() && sp.to == n.Length.Sub(one) {
			total = total.Add(n.Aggregate)
			stats.FastPaths++
			continue
		}

		switch n.Kind {
		case KindConcat:
			if sp.from.Less(n.LeftLength) {
				stack = append(stack, span{
					h:    n.Left,
					from: sp.from,
					to:   wideindex.Min(sp.to, n.LeftLength.Sub(one)),
				})
			}
			if !sp.to.Less(n.LeftLength) {
				stack = append(stack, span{
					h:    n.Right,
					from: wideindex.Max(sp.from, n.LeftLength).Sub(n.LeftLength),
					to:   sp.to.Sub(n.LeftLength),
				})
			}
		case KindReplace:
			if !n.Position.Less(sp.from) && !sp.to.Less(n.Position) {
				total = total.Add(n.Delta)
			}
			stack = append(stack, span{h: n.Inner, from: sp.from, to: sp.to})
		default:
			// The only range within a Single is [0, 0], which the whole
			// range check above has already answered.
			total = total.Add(n.Value)
		}
	}
	return total, stats
}
