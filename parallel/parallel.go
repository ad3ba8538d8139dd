// Package parallel provides the worker-pool drivers used by the
// benchmark commands: a fixed task is mapped over a list of parameters
// and all results are collected before returning. There is no
// cancellation beyond the context and no partial-failure recovery; the
// first error wins and the remaining parameters are skipped.
package parallel

import (
	"context"
	"sync"
)

// Task computes the result for one parameter.
type Task[T any] func(param int) (T, error)

// Map runs the task once per parameter, each on its own goroutine, and
// returns the results in parameter order.
func Map[T any](ctx context.Context, params []int, task Task[T]) ([]T, error) {
	return run(ctx, len(params), params, task)
}

// Pool runs tasks on a fixed set of persistent workers fed from a
// shared channel.
type Pool[T any] struct {
	workers int
	task    Task[T]
}

// NewPool returns a pool of the given size. A size below 1 means one
// worker.
func NewPool[T any](workers int, task Task[T]) *Pool[T] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T]{workers: workers, task: task}
}

// Run maps the pool's task over the parameters and returns the results
// in parameter order.
func (p *Pool[T]) Run(ctx context.Context, params []int) ([]T, error) {
	return run(ctx, p.workers, params, p.task)
}

func run[T any](ctx context.Context, workers int, params []int, task Task[T]) ([]T, error) {
	if workers > len(params) {
		workers = len(params)
	}

	results := make([]T, len(params))
	indexes := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			// Keep draining after a failure so the feeder never blocks.
			for i := range indexes {
				if failed() {
					continue
				}

				out, err := task(params[i])
				if err != nil {
					fail(err)
					continue
				}
				results[i] = out
			}
		}()
	}

feed:
	for i := range params {
		select {
		case <-ctx.Done():
			fail(ctx.Err())
			break feed
		case indexes <- i:
		}
	}
	close(indexes)

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
