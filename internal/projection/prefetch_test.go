package projection

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestPrefetch(t *testing.T) {
	source := newCountingSource(map[int]map[int]int64{
		1: {3: 100, 4: 110, 5: 120},
		2: {4: 200},
	})

	table, err := Prefetch(context.Background(), source, []int{1, 2}, 3, 5, 2)
	if err != nil {
		t.Fatalf("Prefetch() error = %v", err)
	}

	if table.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", table.Len())
	}
	if price, ok := table.Project(1, 5); !ok || price != 120 {
		t.Errorf("Project(1, 5) = %d, %v", price, ok)
	}
	if _, ok := table.Project(2, 3); ok {
		t.Error("Project(2, 3) should be missing")
	}
	for _, id := range []int{1, 2} {
		for r := 3; r <= 5; r++ {
			if n := source.callCount(id, r); n != 1 {
				t.Errorf("pair %d/%d fetched %d times, expected 1", id, r, n)
			}
		}
	}
}

func TestPrefetchClampsToRoundOne(t *testing.T) {
	source := newCountingSource(map[int]map[int]int64{1: {1: 50, 2: 60}})

	table, err := Prefetch(context.Background(), source, []int{1}, -2, 2, 0)
	if err != nil {
		t.Fatalf("Prefetch() error = %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", table.Len())
	}
	if n := source.callCount(1, 0); n != 0 {
		t.Errorf("round 0 fetched %d times, expected 0", n)
	}
}

func TestPrefetchErrors(t *testing.T) {
	source := newCountingSource(nil)
	source.err = errors.New("timeout")

	if _, err := Prefetch(context.Background(), source, []int{1}, 1, 3, 4); err == nil {
		t.Error("Prefetch() expected error from source")
	}
	if _, err := Prefetch(context.Background(), newCountingSource(nil), []int{1}, 5, 4, 4); err == nil {
		t.Error("Prefetch() expected error for an inverted range")
	}

	unbounded := newCountingSource(nil)
	if _, err := Prefetch(context.Background(), unbounded, []int{1}, math.MaxInt-5, math.MaxInt, 4); err == nil {
		t.Error("Prefetch() expected error for rounds near int max")
	}
	if calls := len(unbounded.calls); calls != 0 {
		t.Errorf("Prefetch() made %d lookups for a rejected range, expected none", calls)
	}
}
