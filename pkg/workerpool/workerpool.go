// Package workerpool runs a function over a slice with bounded concurrency.
package workerpool

import (
	"context"
	"sync"
)

// Each calls process for every item using at most workerCount goroutines.
// Items never abort each other; process is expected to handle its own
// failures. When ctx is canceled, undispatched items are skipped and the
// context error is returned after running workers finish.
func Each[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T),
) error {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	tasks := make(chan T)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				process(ctx, item)
			}
		}()
	}

	var err error
dispatch:
	for _, item := range items {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	return err
}
