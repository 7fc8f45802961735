package ids

import (
	"sort"
	"sync"
	"testing"
)

func TestNewUniqueAndSortable(t *testing.T) {
	const n = 1000
	seen := make(map[string]struct{}, n)
	ordered := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := New()
		if len(id) != 26 {
			t.Fatalf("unexpected id length: %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id: %q", id)
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	if !sort.StringsAreSorted(ordered) {
		t.Fatal("ids generated in sequence are not sorted")
	}
}

func TestNewConcurrent(t *testing.T) {
	const workers, each = 8, 200
	var (
		mu  sync.Mutex
		all = make(map[string]struct{}, workers*each)
		wg  sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				id := New()
				mu.Lock()
				all[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(all) != workers*each {
		t.Fatalf("collisions: got %d unique ids, want %d", len(all), workers*each)
	}
}
