package playlist

import (
	"testing"

	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/wideindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkedExample follows a single song through a self concat, a replace
// and queries on both sides of the replaced position.
func TestWorkedExample(t *testing.T) {
	s := newTestStore(t)

	v0 := s.CreateSingle(val(5))
	require.Equal(t, Handle(0), v0)
	n0, err := s.Node(v0)
	require.NoError(t, err)
	assert.Equal(t, KindSingle, n0.Kind)
	assert.Equal(t, idx(1), n0.Length)
	assert.Equal(t, val(5), n0.Aggregate)
	assert.Equal(t, val(5), mustSum(t, s, v0, idx(0), idx(0)))

	v1 := mustConcat(t, s, v0, v0)
	require.Equal(t, Handle(1), v1)
	n1, err := s.Node(v1)
	require.NoError(t, err)
	assert.Equal(t, idx(2), n1.Length)
	assert.Equal(t, val(10), n1.Aggregate)
	assert.Equal(t, idx(1), n1.LeftLength)
	assert.Equal(t, val(5), mustValue(t, s, v1, idx(0)))
	assert.Equal(t, val(5), mustValue(t, s, v1, idx(1)))
	assert.Equal(t, val(10), mustSum(t, s, v1, idx(0), idx(1)))

	v2 := mustReplace(t, s, v1, idx(0), val(7))
	require.Equal(t, Handle(2), v2)
	n2, err := s.Node(v2)
	require.NoError(t, err)
	assert.Equal(t, KindReplace, n2.Kind)
	assert.Equal(t, val(2), n2.Delta)
	assert.Equal(t, val(12), n2.Aggregate)
	assert.Equal(t, val(7), mustValue(t, s, v2, idx(0)))
	assert.Equal(t, val(5), mustValue(t, s, v2, idx(1)))
	assert.Equal(t, val(12), mustSum(t, s, v2, idx(0), idx(1)))

	// the position is outside the replaced one, so the replace passes through
	assert.Equal(t, val(5), mustSum(t, s, v2, idx(1), idx(1)))

	// earlier versions are untouched
	assert.Equal(t, val(5), mustValue(t, s, v1, idx(0)))
	assert.Equal(t, val(10), mustSum(t, s, v1, idx(0), idx(1)))
	assert.Equal(t, uint64(3), s.Len())
}

func TestReplaceNegativeDelta(t *testing.T) {
	s := newTestStore(t)
	v0 := s.CreateSingle(val(9))
	v1 := mustReplace(t, s, v0, idx(0), val(4))

	n, err := s.Node(v1)
	require.NoError(t, err)
	assert.Equal(t, modular.FromUint32(4).Sub(modular.FromUint32(9)), n.Delta)
	assert.Equal(t, val(4), n.Aggregate)
	assert.Equal(t, val(4), mustSum(t, s, v1, idx(0), idx(0)))
}

func TestDepth(t *testing.T) {
	s := newTestStore(t)
	v0 := s.CreateSingle(val(1))
	v1 := mustConcat(t, s, v0, v0)
	v2 := mustConcat(t, s, v1, v0)
	v3 := mustReplace(t, s, v2, idx(2), val(3))
	v4 := mustConcat(t, s, v0, v3)

	for h, want := range map[Handle]uint64{v0: 0, v1: 1, v2: 2, v3: 3, v4: 4} {
		got, err := s.Depth(h)
		require.NoError(t, err)
		assert.Equal(t, want, got, "depth of %d", h)
	}
}

func TestErrors(t *testing.T) {
	obs := newRecordingObserver()
	s := newTestStore(t, WithObserver(obs))
	v0 := s.CreateSingle(val(1))
	v1 := mustConcat(t, s, v0, v0)

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{"concat unknown left", func() error { _, err := s.Concat(7, v0); return err }, ErrHandleRange},
		{"concat unknown right", func() error { _, err := s.Concat(v0, 2); return err }, ErrHandleRange},
		{"replace unknown base", func() error { _, err := s.Replace(9, idx(0), val(1)); return err }, ErrHandleRange},
		{"replace at length", func() error { _, err := s.Replace(v1, idx(2), val(1)); return err }, ErrPositionRange},
		{"value unknown", func() error { _, err := s.Value(5, idx(0)); return err }, ErrHandleRange},
		{"value at length", func() error { _, err := s.Value(v1, idx(2)); return err }, ErrPositionRange},
		{"sum reversed", func() error { _, err := s.Sum(v1, idx(1), idx(0)); return err }, ErrInvalidRange},
		{"sum past end", func() error { _, err := s.Sum(v1, idx(0), idx(2)); return err }, ErrPositionRange},
		{"sum unknown", func() error { _, err := s.Sum(3, idx(0), idx(0)); return err }, ErrHandleRange},
		{"node unknown", func() error { _, err := s.Node(3); return err }, ErrHandleRange},
		{"length unknown", func() error { _, err := s.Length(3); return err }, ErrHandleRange},
		{"aggregate unknown", func() error { _, err := s.Aggregate(3); return err }, ErrHandleRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(), tt.wantErr)
		})
	}

	// failed construction appends nothing
	assert.Equal(t, uint64(2), s.Len())
	assert.Len(t, obs.rejected, len(tests))
}

func TestSegments(t *testing.T) {
	s := newTestStore(t, WithSegmentHeight(2))
	assert.Equal(t, uint8(2), s.SegmentHeight())
	assert.Equal(t, 0, s.Segments())

	h := s.CreateSingle(val(1))
	for i := 0; i < 8; i++ {
		h = mustConcat(t, s, h, 0)
	}
	// 9 versions in segments of 4
	assert.Equal(t, uint64(9), s.Len())
	assert.Equal(t, 3, s.Segments())

	for i := uint64(0); i < s.Len(); i++ {
		length, err := s.Length(Handle(i))
		require.NoError(t, err)
		assert.Equal(t, idx(i+1), length)
		assert.Equal(t, val(uint32(i+1)), mustSum(t, s, Handle(i), idx(0), length.Sub(idx(1))))
	}
}

func TestSegmentHeightOne(t *testing.T) {
	s := newTestStore(t, WithSegmentHeight(0))
	v0 := s.CreateSingle(val(3))
	v1 := mustConcat(t, s, v0, v0)
	v2 := mustReplace(t, s, v1, idx(1), val(4))
	assert.Equal(t, 3, s.Segments())
	assert.Equal(t, val(7), mustSum(t, s, v2, idx(0), idx(1)))
}

func TestSegmentHeightRange(t *testing.T) {
	_, err := NewStore(WithSegmentHeight(MaxSegmentHeight + 1))
	require.ErrorIs(t, err, ErrSegmentHeight)
	_, err = NewStore(WithSegmentHeight(24))
	require.ErrorIs(t, err, ErrSegmentHeight)

	s := newTestStore(t, WithSegmentHeight(MaxSegmentHeight))
	assert.Equal(t, 0, s.Segments(), "no segment before the first version")
	v0 := s.CreateSingle(val(1))
	mustConcat(t, s, v0, v0)
	assert.Equal(t, 1, s.Segments())
}

func TestObserverCounts(t *testing.T) {
	obs := newRecordingObserver()
	s := newTestStore(t, WithObserver(obs))

	v0 := s.CreateSingle(val(2))
	v1 := mustConcat(t, s, v0, v0)
	mustReplace(t, s, v1, idx(1), val(6))

	assert.Equal(t, 1, obs.created[KindSingle])
	assert.Equal(t, 1, obs.created[KindConcat])
	assert.Equal(t, 1, obs.created[KindReplace])
	// the replace looked up the song it displaced
	require.Len(t, obs.queries[QueryValue], 1)
	assert.Equal(t, QueryStats{Frames: 2}, obs.last(QueryValue))

	mustSum(t, s, v1, idx(0), idx(1))
	assert.Equal(t, QueryStats{Frames: 1, FastPaths: 1}, obs.last(QuerySum))

	mustSum(t, s, v1, idx(1), idx(1))
	assert.Equal(t, QueryStats{Frames: 2, FastPaths: 1}, obs.last(QuerySum))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "single", KindSingle.String())
	assert.Equal(t, "concat", KindConcat.String())
	assert.Equal(t, "replace", KindReplace.String())
	assert.Equal(t, "unknown", Kind(9).String())
	assert.Equal(t, "value", QueryValue.String())
	assert.Equal(t, "sum", QuerySum.String())
}

func TestNodeLengthMatchesLimbs(t *testing.T) {
	s := newTestStore(t)
	h := s.CreateSingle(val(1))
	for i := 0; i < 129; i++ {
		h = mustConcat(t, s, h, h)
	}
	length, err := s.Length(h)
	require.NoError(t, err)
	low, high := length.Limbs()
	assert.Equal(t, wideindex.Limb{}, low)
	assert.Equal(t, wideindex.Limb{Lo: 2}, high)
}
