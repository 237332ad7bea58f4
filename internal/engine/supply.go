package engine

import (
	"math/rand"
	"time"
)

// DefaultBatchSize is the number of words shown per batch.
const DefaultBatchSize = 25

// Supplier feeds ordered word batches to a session. An empty batch signals
// exhaustion.
type Supplier interface {
	Next() []string
}

// SequentialSupplier consumes a finite pool in order and returns an empty
// batch once the pool runs out. Custom/sandbox mode uses it.
type SequentialSupplier struct {
	pool      []string
	batchSize int
	index     int
}

// NewSequentialSupplier builds a supplier over the given pool.
func NewSequentialSupplier(pool []string, batchSize int) *SequentialSupplier {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SequentialSupplier{pool: pool, batchSize: batchSize}
}

// Next returns the next slice of the pool, or nil when exhausted.
func (s *SequentialSupplier) Next() []string {
	if s.index >= len(s.pool) {
		return nil
	}
	end := s.index + s.batchSize
	if end > len(s.pool) {
		end = len(s.pool)
	}
	batch := make([]string, end-s.index)
	copy(batch, s.pool[s.index:end])
	s.index = end
	return batch
}

// ShuffleSupplier reshuffles the same pool on every call, supporting
// unbounded timed play.
type ShuffleSupplier struct {
	pool      []string
	batchSize int
	rnd       *rand.Rand
}

// NewShuffleSupplier builds an endless supplier seeded with the current time.
func NewShuffleSupplier(pool []string, batchSize int) *ShuffleSupplier {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ShuffleSupplier{
		pool:      append([]string(nil), pool...),
		batchSize: batchSize,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next reshuffles the pool and returns its first batchSize words.
func (s *ShuffleSupplier) Next() []string {
	if len(s.pool) == 0 {
		return nil
	}
	s.rnd.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})
	n := s.batchSize
	if n > len(s.pool) {
		n = len(s.pool)
	}
	batch := make([]string, n)
	copy(batch, s.pool[:n])
	return batch
}
