package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestJoinAllCollectsInTaskOrder(t *testing.T) {
	tasks := []func(context.Context) (int, error){
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (int, error) { return 2, nil },
		func(context.Context) (int, error) { return 3, nil },
	}
	results, failures := JoinAll(context.Background(), 2, tasks)
	if len(failures) != 0 {
		t.Fatalf("failures = %v", failures)
	}
	for i, v := range results {
		if v != i+1 {
			t.Errorf("results = %v, want [1 2 3]", results)
			break
		}
	}
}

func TestJoinAllSeparatesFailures(t *testing.T) {
	boom := errors.New("boom")
	tasks := []func(context.Context) (string, error){
		func(context.Context) (string, error) { return "a", nil },
		func(context.Context) (string, error) { return "", boom },
		func(context.Context) (string, error) { return "c", nil },
	}
	results, failures := JoinAll(context.Background(), 0, tasks)
	if len(results) != 2 || results[0] != "a" || results[1] != "c" {
		t.Errorf("results = %v", results)
	}
	if len(failures) != 1 || !errors.Is(failures[0], boom) {
		t.Errorf("failures = %v", failures)
	}
}

func TestJoinAllRecoversPanics(t *testing.T) {
	tasks := []func(context.Context) (int, error){
		func(context.Context) (int, error) { panic("bad task") },
		func(context.Context) (int, error) { return 7, nil },
	}
	results, failures := JoinAll(context.Background(), 4, tasks)
	if len(results) != 1 || results[0] != 7 {
		t.Errorf("results = %v", results)
	}
	if len(failures) != 1 {
		t.Fatalf("failures = %v", failures)
	}
}

func TestJoinAllRespectsLimit(t *testing.T) {
	var current, peak int64
	task := func(context.Context) (int, error) {
		n := atomic.AddInt64(&current, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		defer atomic.AddInt64(&current, -1)
		return 0, nil
	}
	tasks := make([]func(context.Context) (int, error), 32)
	for i := range tasks {
		tasks[i] = task
	}
	JoinAll(context.Background(), 4, tasks)
	if atomic.LoadInt64(&peak) > 4 {
		t.Errorf("peak concurrency = %d, limit 4", peak)
	}
}
