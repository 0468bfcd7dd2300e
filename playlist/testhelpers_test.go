package playlist

import (
	"sync"
	"testing"

	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/wideindex"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	s, err := NewStore(opts...)
	require.NoError(t, err)
	return s
}

func idx(u uint64) wideindex.Index { return wideindex.FromUint64(u) }

func val(u uint32) modular.Value { return modular.FromUint32(u) }

// pow2 returns 2^k by doubling.
func pow2(k int) wideindex.Index {
	x := wideindex.One()
	for i := 0; i < k; i++ {
		x = x.Add(x)
	}
	return x
}

func mustConcat(t *testing.T, s *Store, left, right Handle) Handle {
	h, err := s.Concat(left, right)
	require.NoError(t, err)
	return h
}

func mustReplace(t *testing.T, s *Store, base Handle, position wideindex.Index, v modular.Value) Handle {
	h, err := s.Replace(base, position, v)
	require.NoError(t, err)
	return h
}

func mustValue(t *testing.T, s *Store, h Handle, position wideindex.Index) modular.Value {
	v, err := s.Value(h, position)
	require.NoError(t, err)
	return v
}

func mustSum(t *testing.T, s *Store, h Handle, from, to wideindex.Index) modular.Value {
	v, err := s.Sum(h, from, to)
	require.NoError(t, err)
	return v
}

// materializer expands versions into plain slices by walking the node
// structure directly. It is only usable for small playlists.
type materializer struct {
	s     *Store
	cache map[Handle][]modular.Value
}

func newMaterializer(s *Store) *materializer {
	return &materializer{s: s, cache: map[Handle][]modular.Value{}}
}

func (m *materializer) songs(h Handle) []modular.Value {
	if songs, ok := m.cache[h]; ok {
		return songs
	}
	n := m.s.node(h)
	var songs []modular.Value
	switch n.Kind {
	case KindSingle:
		songs = []modular.Value{n.Value}
	case KindConcat:
		songs = append(songs, m.songs(n.Left)...)
		songs = append(songs, m.songs(n.Right)...)
	case KindReplace:
		songs = append(songs, m.songs(n.Inner)...)
		songs[n.Position.Uint64()] = n.Value
	}
	m.cache[h] = songs
	return songs
}

type recordingObserver struct {
	mu       sync.Mutex
	created  map[Kind]int
	queries  map[QueryKind][]QueryStats
	rejected []error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		created: map[Kind]int{},
		queries: map[QueryKind][]QueryStats{},
	}
}

func (o *recordingObserver) VersionCreated(kind Kind, depth uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.created[kind]++
}

func (o *recordingObserver) QueryAnswered(kind QueryKind, stats QueryStats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queries[kind] = append(o.queries[kind], stats)
}

func (o *recordingObserver) Rejected(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected = append(o.rejected, err)
}

func (o *recordingObserver) last(kind QueryKind) QueryStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	q := o.queries[kind]
	return q[len(q)-1]
}
