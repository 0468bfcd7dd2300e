package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/forestrie/go-playlist/wideindex"
)

const (
	// MaxTokenBytes bounds a single token, and so the longest decimal
	// position the reader accepts.
	MaxTokenBytes = 1 << 20

	// preallocLimit caps the capacity reserved from the declared counts so a
	// corrupt header can not force a huge allocation up front.
	preallocLimit = 1 << 16

	copyToken = "copy"
	// replaceToken leads the replace form that WriteText emits. On input any
	// non numeric word other than copy introduces a replace.
	replaceToken = "set"
)

type tokenizer struct {
	sc *bufio.Scanner
	n  int
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxTokenBytes)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next(what string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", fmt.Errorf("%w: reading %s at token %d: %w", ErrMalformedToken, what, t.n+1, err)
		}
		return "", fmt.Errorf("%w: expected %s at token %d", ErrUnexpectedEOF, what, t.n+1)
	}
	t.n++
	return t.sc.Text(), nil
}

func (t *tokenizer) uint64(what string) (uint64, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	return t.parseUint64(what, tok)
}

func (t *tokenizer) parseUint64(what, tok string) (uint64, error) {
	u, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q at token %d", ErrMalformedToken, what, tok, t.n)
	}
	return u, nil
}

func (t *tokenizer) uint32(what string) (uint32, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q at token %d", ErrMalformedToken, what, tok, t.n)
	}
	return uint32(u), nil
}

func (t *tokenizer) index(what string) (wideindex.Index, error) {
	tok, err := t.next(what)
	if err != nil {
		return wideindex.Index{}, err
	}
	x, err := wideindex.FromDecimal(tok)
	if err != nil {
		return wideindex.Index{}, fmt.Errorf("%w: %s at token %d: %w", ErrMalformedToken, what, t.n, err)
	}
	return x, nil
}

func (t *tokenizer) op() (Op, error) {
	tok, err := t.next("operation")
	if err != nil {
		return Op{}, err
	}
	if tok == copyToken {
		left, err := t.uint64("copy left version")
		if err != nil {
			return Op{}, err
		}
		right, err := t.uint64("copy right version")
		if err != nil {
			return Op{}, err
		}
		return Copy(left, right), nil
	}

	if !isDecimal(tok) {
		// keyword form: "set I D M"
		if tok, err = t.next("replace version"); err != nil {
			return Op{}, err
		}
	}
	base, err := t.parseUint64("replace version", tok)
	if err != nil {
		return Op{}, err
	}
	position, err := t.index("replace position")
	if err != nil {
		return Op{}, err
	}
	song, err := t.uint32("replace song")
	if err != nil {
		return Op{}, err
	}
	return Replace(base, position, song), nil
}

func isDecimal(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

func (t *tokenizer) query() (Query, error) {
	version, err := t.uint64("query version")
	if err != nil {
		return Query{}, err
	}
	from, err := t.index("query from")
	if err != nil {
		return Query{}, err
	}
	to, err := t.index("query to")
	if err != nil {
		return Query{}, err
	}
	return Query{Version: version, From: from, To: to}, nil
}

// ReadText parses the text form of a script. Tokens after the last declared
// query are ignored.
func ReadText(r io.Reader) (*Script, error) {
	t := newTokenizer(r)

	nOps, err := t.uint64("operation count")
	if err != nil {
		return nil, err
	}
	nQueries, err := t.uint64("query count")
	if err != nil {
		return nil, err
	}
	initial, err := t.uint32("initial song")
	if err != nil {
		return nil, err
	}

	s := &Script{
		Initial: initial,
		Ops:     make([]Op, 0, min(nOps, preallocLimit)),
		Queries: make([]Query, 0, min(nQueries, preallocLimit)),
	}
	for i := uint64(0); i < nOps; i++ {
		op, err := t.op()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		s.Ops = append(s.Ops, op)
	}
	for i := uint64(0); i < nQueries; i++ {
		q, err := t.query()
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		s.Queries = append(s.Queries, q)
	}
	return s, nil
}

// WriteText writes s in the form ReadText accepts, one operation or query
// per line. Replaces are written with their leading keyword.
func WriteText(w io.Writer, s *Script) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", len(s.Ops), len(s.Queries), s.Initial)
	for i, op := range s.Ops {
		switch op.Kind {
		case OpCopy:
			fmt.Fprintf(bw, "%s %d %d\n", copyToken, op.Left, op.Right)
		case OpReplace:
			fmt.Fprintf(bw, "%s %d %s %d\n", replaceToken, op.Base, op.Position, op.Song)
		default:
			return fmt.Errorf("operation %d: %w: %d", i, ErrUnknownOp, op.Kind)
		}
	}
	for _, q := range s.Queries {
		fmt.Fprintf(bw, "%d %s %s\n", q.Version, q.From, q.To)
	}
	return bw.Flush()
}
