package script

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/playlist"
	"github.com/google/uuid"
)

// checkEvery is how many operations or queries run between context checks.
const checkEvery = 1024

// Runner applies scripts to a store and writes one answer line per query.
type Runner struct {
	log   logger.Logger
	store *playlist.Store
	out   io.Writer
	id    uuid.UUID
}

func NewRunner(log logger.Logger, store *playlist.Store, out io.Writer) *Runner {
	return &Runner{
		log:   log,
		store: store,
		out:   out,
		id:    uuid.New(),
	}
}

// ID identifies the runner in log lines.
func (r *Runner) ID() uuid.UUID { return r.id }

// Run builds every version the script declares and then answers its
// queries. The store must be empty so that version numbers match handles.
//
// The first failing operation or query ends the run. Answers produced
// before a failing query are still written.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	if n := r.store.Len(); n != 0 {
		return fmt.Errorf("%w: it has %d versions", ErrStoreNotEmpty, n)
	}
	r.log.Infof("run %s: %d operations, %d queries", r.id, len(s.Ops), len(s.Queries))

	r.store.CreateSingle(s.InitialSong())
	for i, op := range s.Ops {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := r.apply(op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Kind, err)
		}
	}

	w := bufio.NewWriter(r.out)
	for i, q := range s.Queries {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return flushThen(w, err)
			}
		}
		v, err := r.store.Sum(playlist.Handle(q.Version), q.From, q.To)
		if err != nil {
			return flushThen(w, fmt.Errorf("query %d: %w", i, err))
		}
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	r.log.Infof("run %s: %d versions, %d answers", r.id, r.store.Len(), len(s.Queries))
	return nil
}

func (r *Runner) apply(op Op) error {
	switch op.Kind {
	case OpCopy:
		_, err := r.store.Concat(playlist.Handle(op.Left), playlist.Handle(op.Right))
		return err
	case OpReplace:
		_, err := r.store.Replace(playlist.Handle(op.Base), op.Position, modular.FromUint32(op.Song))
		return err
	default:
		return fmt.Errorf("%w: %d", ErrUnknownOp, op.Kind)
	}
}

func flushThen(w *bufio.Writer, err error) error {
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}
