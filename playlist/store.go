package playlist

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/wideindex"
)

// segment is a fixed capacity run of arena slots. Its backing array is
// allocated once and never reallocated.
type segment []Node

// Store is the append only arena of playlist versions.
//
// Construction methods are serialized by an internal mutex. Queries and
// accessors take no lock and may run concurrently with each other and with
// construction.
type Store struct {
	mu sync.Mutex

	height uint8
	mask   uint64

	dir   atomic.Pointer[[]segment]
	count atomic.Uint64

	observer Observer
	log      logger.Logger
}

func NewStore(opts ...Option) (*Store, error) {
	o := StoreOptions{SegmentHeight: DefaultSegmentHeight}
	for _, opt := range opts {
		opt(&o)
	}
	if o.SegmentHeight > MaxSegmentHeight {
		return nil, fmt.Errorf("%w: %d > %d", ErrSegmentHeight, o.SegmentHeight, MaxSegmentHeight)
	}

	s := &Store{
		height:   o.SegmentHeight,
		mask:     uint64(1)<<o.SegmentHeight - 1,
		observer: o.Observer,
		log:      o.Log,
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	dir := []segment{}
	s.dir.Store(&dir)
	return s, nil
}

// Len returns the number of versions. Handles 0 through Len()-1 are valid.
func (s *Store) Len() uint64 {
	return s.count.Load()
}

// SegmentHeight returns the log base 2 of the arena segment size.
func (s *Store) SegmentHeight() uint8 {
	return s.height
}

// Segments returns the number of allocated arena segments.
func (s *Store) Segments() int {
	return len(*s.dir.Load())
}

// Node returns a copy of the node for h.
func (s *Store) Node(h Handle) (Node, error) {
	n, err := s.get(h)
	if err != nil {
		return Node{}, s.reject(err)
	}
	return *n, nil
}

// Length returns the number of songs in version h.
func (s *Store) Length(h Handle) (wideindex.Index, error) {
	n, err := s.get(h)
	if err != nil {
		return wideindex.Index{}, s.reject(err)
	}
	return n.Length, nil
}

// Aggregate returns the total of every song in version h.
func (s *Store) Aggregate(h Handle) (modular.Value, error) {
	n, err := s.get(h)
	if err != nil {
		return modular.Value{}, s.reject(err)
	}
	return n.Aggregate, nil
}

// Depth returns the depth of the node chain below h.
func (s *Store) Depth(h Handle) (uint64, error) {
	n, err := s.get(h)
	if err != nil {
		return 0, s.reject(err)
	}
	return n.Depth, nil
}

func (s *Store) get(h Handle) (*Node, error) {
	if count := s.count.Load(); uint64(h) >= count {
		return nil, fmt.Errorf("%w: %d, the store has %d versions", ErrHandleRange, h, count)
	}
	return s.node(h), nil
}

// node returns the published node for h. h must be < Len().
func (s *Store) node(h Handle) *Node {
	dir := *s.dir.Load()
	return &dir[uint64(h)>>s.height][uint64(h)&s.mask]
}

// appendLocked publishes n as the next version. s.mu must be held.
func (s *Store) appendLocked(n Node) Handle {
	i := s.count.Load()
	iSeg := i >> s.height

	dir := *s.dir.Load()
	if iSeg == uint64(len(dir)) {
		grown := make([]segment, len(dir)+1)
		copy(grown, dir)
		grown[iSeg] = make(segment, 1<<s.height)
		s.dir.Store(&grown)
		dir = grown
		if s.log != nil {
			s.log.Infof("playlist arena: allocated segment %d (%d slots) at version %d", iSeg, 1<<s.height, i)
		}
	}

	dir[iSeg][i&s.mask] = n
	// the slot must be written before the count that makes it visible
	s.count.Store(i + 1)

	s.observer.VersionCreated(n.Kind, n.Depth)
	return Handle(i)
}

func (s *Store) reject(err error) error {
	s.observer.Rejected(err)
	return err
}
