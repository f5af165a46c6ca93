package rbindex

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestIndependentTreesRunConcurrentlyWithoutSharedState drives many
// goroutines, each owning its own Tree, through insert/delete/lookup
// workloads simultaneously. Tree carries no mutex (see DESIGN.md); this
// test documents, under -race, that nothing internal serializes unrelated
// trees — each goroutine's tree is untouched by any other.
func TestIndependentTreesRunConcurrentlyWithoutSharedState(t *testing.T) {
	var g errgroup.Group
	for worker := 0; worker < 16; worker++ {
		worker := worker
		g.Go(func() error {
			tr := New[uint32, int]()
			for i := 0; i < 200; i++ {
				k := worker*10_000 + i
				if err := tr.Insert(FromInt(k), k); err != nil {
					return err
				}
			}
			for i := 0; i < 100; i++ {
				k := worker*10_000 + i
				tr.Delete(FromInt(k))
			}
			if tr.Size() != 100 {
				return fmt.Errorf("worker %d: Size() = %d, want 100", worker, tr.Size())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent independent-tree workload failed: %v", err)
	}
}
