package playlist

import "github.com/datatrails/go-datatrails-common/logger"

const (
	// DefaultSegmentHeight gives segments of 4096 nodes.
	DefaultSegmentHeight = 12
	// MaxSegmentHeight bounds a segment at 2^16 nodes, about 10 MB.
	MaxSegmentHeight = 16
)

type StoreOptions struct {
	// SegmentHeight is the log base 2 of the number of nodes per segment.
	SegmentHeight uint8
	Observer      Observer
	Log           logger.Logger
}

type Option func(*StoreOptions)

// WithSegmentHeight sets the arena segment size to 2^height nodes. Each
// segment is allocated in full when the first version that lands in it is
// created, so the store's memory grows in steps of 2^height nodes. Small
// heights are useful in tests that want to cross segment boundaries.
func WithSegmentHeight(height uint8) Option {
	return func(o *StoreOptions) {
		o.SegmentHeight = height
	}
}

// WithObserver receives a notification for every version created, every
// query answered and every rejected call.
func WithObserver(observer Observer) Option {
	return func(o *StoreOptions) {
		o.Observer = observer
	}
}

// WithLogger enables Infof logging of arena growth.
func WithLogger(log logger.Logger) Option {
	return func(o *StoreOptions) {
		o.Log = log
	}
}
