package playlisttesting

import (
	"math/rand"

	"github.com/forestrie/go-playlist/script"
	"github.com/forestrie/go-playlist/wideindex"
	fuzz "github.com/google/gofuzz"
)

type GeneratorConfig struct {
	// Seed fixes the generated script so runs are repeatable.
	Seed    int64
	Ops     int
	Queries int
	// MaxLength caps every version's length so the Reference can
	// materialize it. Zero means 512.
	MaxLength uint64
}

// GenerateScript returns a random, valid script. Copies that would exceed
// MaxLength are replaced by replaces.
func GenerateScript(cfg GeneratorConfig) *script.Script {
	if cfg.MaxLength == 0 {
		cfg.MaxLength = 512
	}
	f := fuzz.NewWithSeed(cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := &script.Script{}
	f.Fuzz(&s.Initial)
	lengths := []uint64{1}

	for len(s.Ops) < cfg.Ops {
		n := int64(len(lengths))
		left, right := uint64(rng.Int63n(n)), uint64(rng.Int63n(n))
		if rng.Intn(2) == 0 && lengths[left]+lengths[right] <= cfg.MaxLength {
			s.Ops = append(s.Ops, script.Copy(left, right))
			lengths = append(lengths, lengths[left]+lengths[right])
			continue
		}
		var song uint32
		f.Fuzz(&song)
		position := uint64(rng.Int63n(int64(lengths[left])))
		s.Ops = append(s.Ops, script.Replace(left, wideindex.FromUint64(position), song))
		lengths = append(lengths, lengths[left])
	}

	for len(s.Queries) < cfg.Queries {
		version := uint64(rng.Int63n(int64(len(lengths))))
		length := int64(lengths[version])
		from := rng.Int63n(length)
		to := from + rng.Int63n(length-from)
		s.Queries = append(s.Queries, script.Query{
			Version: version,
			From:    wideindex.FromUint64(uint64(from)),
			To:      wideindex.FromUint64(uint64(to)),
		})
	}
	return s
}
