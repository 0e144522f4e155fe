package notify

import "github.com/sourcegraph/conc/pool"

// Fanout calls fn for every item with at most limit calls in flight and
// returns once all of them are done.
func Fanout[T any](limit int, items []T, fn func(T)) {
	if len(items) == 0 {
		return
	}
	if limit <= 0 {
		limit = 1
	}

	p := pool.New().WithMaxGoroutines(limit)
	for _, item := range items {
		item := item // per-iteration copy; module targets go 1.21 loop semantics
		p.Go(func() { fn(item) })
	}
	p.Wait()
}
