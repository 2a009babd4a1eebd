package utils

import (
	"context"
	"fmt"
	"sync"
)

// JoinAll runs every task concurrently, bounded by limit, and waits for
// all of them. Failed tasks are collected instead of aborting the batch:
// successes come back in task order, failures separately. A panicking
// task counts as a failure, never as a crash.
func JoinAll[T any](ctx context.Context, limit int, tasks []func(context.Context) (T, error)) ([]T, []error) {
	if limit <= 0 {
		limit = len(tasks)
	}
	type outcome struct {
		value T
		err   error
	}
	outcomes := make([]outcome, len(tasks))

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task func(context.Context) (T, error)) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].err = fmt.Errorf("task panic: %v", r)
				}
			}()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i].value, outcomes[i].err = task(ctx)
		}(i, task)
	}
	wg.Wait()

	results := make([]T, 0, len(tasks))
	var failures []error
	for _, o := range outcomes {
		if o.err != nil {
			failures = append(failures, o.err)
			continue
		}
		results = append(results, o.value)
	}
	return results, failures
}
