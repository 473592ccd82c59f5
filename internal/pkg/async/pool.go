// Package async runs independent named loads concurrently on a bounded set of workers.
package async

import (
	"context"
	"fmt"
	"sync"
)

// Task is one named unit of work.
type Task struct {
	Name    string
	Execute func(ctx context.Context) (interface{}, error)
}

// Result is the outcome of a Task.
type Result struct {
	Name string
	Data interface{}
	Err  error
}

// Pool bounds how many tasks run at once. A Pool may be reused.
type Pool struct {
	workerCount int
}

// NewPool creates a pool with workerCount workers, at least one.
func NewPool(workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool{workerCount: workerCount}
}

// Execute runs every task and returns the results keyed by task name.
// A task that panics yields a Result with an error. Tasks not finished when ctx
// is done are reported with ctx's error.
func (p *Pool) Execute(ctx context.Context, tasks []Task) map[string]Result {
	queue := make(chan Task)
	results := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	workers := p.workerCount
	if workers > len(tasks) {
		workers = len(tasks)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				results <- run(ctx, task)
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, task := range tasks {
			select {
			case queue <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make(map[string]Result, len(tasks))
	for {
		select {
		case result, ok := <-results:
			if !ok {
				fillMissing(collected, tasks, ctx.Err())
				return collected
			}
			collected[result.Name] = result
		case <-ctx.Done():
			fillMissing(collected, tasks, ctx.Err())
			return collected
		}
	}
}

func run(ctx context.Context, task Task) (result Result) {
	result.Name = task.Name
	defer func() {
		if r := recover(); r != nil {
			result.Data = nil
			result.Err = fmt.Errorf("task %s panicked: %v", task.Name, r)
		}
	}()
	result.Data, result.Err = task.Execute(ctx)
	return result
}

func fillMissing(collected map[string]Result, tasks []Task, err error) {
	if err == nil {
		err = context.Canceled
	}
	for _, task := range tasks {
		if _, ok := collected[task.Name]; !ok {
			collected[task.Name] = Result{Name: task.Name, Err: err}
		}
	}
}
