package dice

import (
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunk is the number of faces filled per generator. Chunk
// boundaries are fixed so seeded output does not depend on worker count.
const DefaultChunk = 1 << 16

// Bulk draws every face of a request into one contiguous buffer, filling
// fixed-size chunks in parallel.
type Bulk struct {
	master  *rand.Rand
	workers int
	chunk   int
}

func NewBulk(seed *int64, workers int) *Bulk {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Bulk{
		master:  newRand(seed),
		workers: workers,
		chunk:   DefaultChunk,
	}
}

func (b *Bulk) Name() string { return "bulk" }

func (b *Bulk) Reseed(seed *int64) { b.master = newRand(seed) }

func (b *Bulk) Roll(throws int, count Count) ([]Throw, error) {
	if err := validate(throws, count); err != nil {
		return nil, err
	}

	k := int(count)
	n := throws * k
	faces := make([]int, n)
	base := b.master.Uint64()

	chunks := (n + b.chunk - 1) / b.chunk
	var g errgroup.Group
	g.SetLimit(b.workers)
	for c := 0; c < chunks; c++ {
		start := c * b.chunk
		end := min(start+b.chunk, n)
		g.Go(func() error {
			r := rand.New(rand.NewPCG(base, uint64(c)))
			for i := start; i < end; i++ {
				faces[i] = face(r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Throw, throws)
	for i := range out {
		lo := i * k
		out[i] = NewThrow(faces[lo : lo+k : lo+k])
	}
	return out, nil
}
