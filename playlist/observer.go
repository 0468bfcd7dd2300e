package playlist

type QueryKind uint8

const (
	QueryValue QueryKind = iota
	QuerySum
)

func (k QueryKind) String() string {
	if k == QuerySum {
		return "sum"
	}
	return "value"
}

// QueryStats describes the work done by one query.
type QueryStats struct {
	// Frames is the number of nodes visited.
	Frames uint64
	// FastPaths is the number of visited nodes answered from their cached
	// aggregate.
	FastPaths uint64
}

// Observer is notified synchronously by the Store. Implementations must be
// safe for concurrent use, as queries may run on many goroutines.
type Observer interface {
	VersionCreated(kind Kind, depth uint64)
	QueryAnswered(kind QueryKind, stats QueryStats)
	Rejected(err error)
}

type nopObserver struct{}

func (nopObserver) VersionCreated(Kind, uint64)         {}
func (nopObserver) QueryAnswered(QueryKind, QueryStats) {}
func (nopObserver) Rejected(error)                      {}
