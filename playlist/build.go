package playlist

import (
	"fmt"

	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/wideindex"
)

// CreateSingle adds a playlist holding the single song v.
func (s *Store) CreateSingle(v modular.Value) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(newSingle(v))
}

// Concat adds the playlist formed by left followed by right. It costs one
// node whatever the size of the operands. left and right may be the same
// handle.
func (s *Store) Concat(left, right Handle) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.get(left)
	if err != nil {
		return 0, s.reject(err)
	}
	r, err := s.get(right)
	if err != nil {
		return 0, s.reject(err)
	}
	length, overflow := l.Length.AddOverflow(r.Length)
	if overflow {
		return 0, s.reject(fmt.Errorf("%w: concat %d %d", ErrLengthOverflow, left, right))
	}
	return s.appendLocked(newConcat(left, right, l, r, length)), nil
}

// Replace adds a playlist identical to base except that the song at
// position is v. The difference from the song being replaced is found with
// one point lookup against base, so Replace costs O(depth of base).
func (s *Store) Replace(base Handle, position wideindex.Index, v modular.Value) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.get(base)
	if err != nil {
		return 0, s.reject(err)
	}
	if !position.Less(in.Length) {
		return 0, s.reject(fmt.Errorf("%w: %s, version %d has length %s", ErrPositionRange, position, base, in.Length))
	}

	old, stats := s.value(base, position)
	s.observer.QueryAnswered(QueryValue, stats)

	return s.appendLocked(newReplace(base, in, position, v, old)), nil
}
