package playlisttesting

import (
	"errors"
	"fmt"

	"github.com/forestrie/go-playlist/modular"
	"github.com/forestrie/go-playlist/script"
	"github.com/forestrie/go-playlist/wideindex"
)

var ErrReferenceRange = errors.New("reference model index out of range")

// Reference is a materialized model of a playlist store. Every version is a
// plain slice, so it is only suitable for short playlists, but it shares no
// code with the playlist package and so makes a good oracle.
type Reference struct {
	versions [][]modular.Value
}

func NewReference(initial modular.Value) *Reference {
	return &Reference{versions: [][]modular.Value{{initial}}}
}

func (r *Reference) Len() int { return len(r.versions) }

func (r *Reference) Songs(version uint64) []modular.Value {
	return r.versions[version]
}

func (r *Reference) Copy(left, right uint64) error {
	if left >= uint64(len(r.versions)) || right >= uint64(len(r.versions)) {
		return fmt.Errorf("%w: copy %d %d", ErrReferenceRange, left, right)
	}
	songs := make([]modular.Value, 0, len(r.versions[left])+len(r.versions[right]))
	songs = append(songs, r.versions[left]...)
	songs = append(songs, r.versions[right]...)
	r.versions = append(r.versions, songs)
	return nil
}

func (r *Reference) Replace(base uint64, position wideindex.Index, song modular.Value) error {
	if base >= uint64(len(r.versions)) {
		return fmt.Errorf("%w: replace version %d", ErrReferenceRange, base)
	}
	p, err := r.position(base, position)
	if err != nil {
		return err
	}
	songs := append([]modular.Value(nil), r.versions[base]...)
	songs[p] = song
	r.versions = append(r.versions, songs)
	return nil
}

func (r *Reference) Sum(version uint64, from, to wideindex.Index) (modular.Value, error) {
	if version >= uint64(len(r.versions)) {
		return modular.Value{}, fmt.Errorf("%w: query version %d", ErrReferenceRange, version)
	}
	f, err := r.position(version, from)
	if err != nil {
		return modular.Value{}, err
	}
	t, err := r.position(version, to)
	if err != nil {
		return modular.Value{}, err
	}
	total := modular.Zero()
	for _, v := range r.versions[version][f : t+1] {
		total = total.Add(v)
	}
	return total, nil
}

func (r *Reference) position(version uint64, x wideindex.Index) (uint64, error) {
	if !x.IsUint64() || x.Uint64() >= uint64(len(r.versions[version])) {
		return 0, fmt.Errorf("%w: position %s in version %d", ErrReferenceRange, x, version)
	}
	return x.Uint64(), nil
}

// Answers runs s against a fresh reference and returns the decimal answer
// for each query.
func Answers(s *script.Script) ([]string, error) {
	r := NewReference(s.InitialSong())
	for i, op := range s.Ops {
		var err error
		switch op.Kind {
		case script.OpCopy:
			err = r.Copy(op.Left, op.Right)
		case script.OpReplace:
			err = r.Replace(op.Base, op.Position, modular.FromUint32(op.Song))
		default:
			err = fmt.Errorf("%w: %d", script.ErrUnknownOp, op.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
	}

	answers := make([]string, 0, len(s.Queries))
	for i, q := range s.Queries {
		v, err := r.Sum(q.Version, q.From, q.To)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		answers = append(answers, v.String())
	}
	return answers, nil
}
