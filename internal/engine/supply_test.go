package engine

import "testing"

func TestSequentialSupplierExhaustion(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	sup := NewSequentialSupplier(pool, 2)

	batches := [][]string{sup.Next(), sup.Next(), sup.Next()}
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	for i, batch := range batches {
		if len(batch) != len(want[i]) {
			t.Fatalf("batch %d = %v, want %v", i, batch, want[i])
		}
		for j := range batch {
			if batch[j] != want[i][j] {
				t.Fatalf("batch %d = %v, want %v", i, batch, want[i])
			}
		}
	}
	if got := sup.Next(); got != nil {
		t.Fatalf("exhausted supplier returned %v, want nil", got)
	}
	if got := sup.Next(); got != nil {
		t.Fatalf("exhausted supplier must stay empty, got %v", got)
	}
}

func TestSequentialSupplierDefaultBatchSize(t *testing.T) {
	pool := make([]string, 30)
	for i := range pool {
		pool[i] = "w"
	}
	sup := NewSequentialSupplier(pool, 0)
	if got := len(sup.Next()); got != DefaultBatchSize {
		t.Fatalf("batch size = %d, want %d", got, DefaultBatchSize)
	}
}

func TestShuffleSupplierIsEndless(t *testing.T) {
	pool := []string{"a", "b", "c"}
	sup := NewShuffleSupplier(pool, 2)
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		batch := sup.Next()
		if len(batch) != 2 {
			t.Fatalf("batch %d has %d words, want 2", i, len(batch))
		}
		for _, w := range batch {
			seen[w] = struct{}{}
		}
	}
	if len(seen) != len(pool) {
		t.Fatalf("resampling never covered the pool: saw %v", seen)
	}
}

func TestShuffleSupplierSmallPool(t *testing.T) {
	sup := NewShuffleSupplier([]string{"solo"}, 25)
	if got := sup.Next(); len(got) != 1 || got[0] != "solo" {
		t.Fatalf("batch = %v, want [solo]", got)
	}
	if got := NewShuffleSupplier(nil, 25).Next(); got != nil {
		t.Fatalf("empty pool should yield nil, got %v", got)
	}
}
