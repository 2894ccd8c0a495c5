package svgdraw

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// IDGenerator provides the unique identifiers used to scope
// the element ids of a drawing.
type IDGenerator interface {
	NextID() string
}

// IDFunc adapts a function to the IDGenerator interface.
type IDFunc func() string

func (f IDFunc) NextID() string { return f() }

const (
	poolSize    = 1000
	tokenLength = 7
)

// HashPool hands out random base36 tokens, generated by batches.
// It is safe for concurrent use.
type HashPool struct {
	mu   sync.Mutex
	pool []string
	rnd  *rand.Rand // nil means the global source
}

// NewHashPool returns a pool using a deterministic source,
// mainly useful for reproducible output.
func NewHashPool(seed uint64) *HashPool {
	return &HashPool{rnd: rand.New(rand.NewPCG(seed, seed))}
}

// DefaultIDs is the process wide pool used when
// no generator is provided.
var DefaultIDs = &HashPool{}

func (hp *HashPool) token() string {
	var n uint64
	if hp.rnd != nil {
		n = hp.rnd.Uint64()
	} else {
		n = rand.Uint64()
	}
	s := strconv.FormatUint(n, 36)
	if len(s) >= tokenLength {
		return s[len(s)-tokenLength:]
	}
	return strings.Repeat("0", tokenLength-len(s)) + s
}

// NextID pops a token from the pool, refilling it when empty.
func (hp *HashPool) NextID() string {
	hp.mu.Lock()
	defer hp.mu.Unlock()
	if len(hp.pool) == 0 {
		for i := 0; i < poolSize; i++ {
			hp.pool = append(hp.pool, hp.token())
		}
	}
	out := hp.pool[len(hp.pool)-1]
	hp.pool = hp.pool[:len(hp.pool)-1]
	return out
}

// Sequence is a deterministic IDGenerator returning
// Prefix followed by 1, 2, 3...
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (s *Sequence) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.Prefix + strconv.Itoa(s.n)
}

// elementID formats the id of the element `name` in the drawing `drawingID`.
func elementID(name, drawingID string) string { return name + "-" + drawingID }
