package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCollectsEveryResult(t *testing.T) {
	pool := NewPool(2)
	boom := errors.New("boom")

	results := pool.Execute(context.Background(), []Task{
		{Name: "a", Execute: func(context.Context) (interface{}, error) { return 1, nil }},
		{Name: "b", Execute: func(context.Context) (interface{}, error) { return nil, boom }},
		{Name: "c", Execute: func(context.Context) (interface{}, error) { panic("bad section") }},
	})

	require.Len(t, results, 3)
	assert.Equal(t, 1, results["a"].Data)
	assert.NoError(t, results["a"].Err)
	assert.ErrorIs(t, results["b"].Err, boom)
	assert.ErrorContains(t, results["c"].Err, "panicked")
}

func TestExecuteBoundsConcurrency(t *testing.T) {
	pool := NewPool(2)
	var running, peak int32

	var tasks []Task
	for _, name := range []string{"1", "2", "3", "4", "5", "6"} {
		tasks = append(tasks, Task{Name: name, Execute: func(context.Context) (interface{}, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil, nil
		}})
	}

	results := pool.Execute(context.Background(), tasks)
	assert.Len(t, results, 6)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestExecuteReportsUnfinishedTasksOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	defer close(release)

	results := NewPool(1).Execute(ctx, []Task{
		{Name: "slow", Execute: func(context.Context) (interface{}, error) {
			<-release
			return nil, nil
		}},
		{Name: "queued", Execute: func(context.Context) (interface{}, error) { return nil, nil }},
	})

	require.Len(t, results, 2)
	assert.ErrorIs(t, results["slow"].Err, context.DeadlineExceeded)
	assert.ErrorIs(t, results["queued"].Err, context.DeadlineExceeded)
}

func TestPoolIsReusable(t *testing.T) {
	pool := NewPool(3)
	task := []Task{{Name: "x", Execute: func(context.Context) (interface{}, error) { return "ok", nil }}}

	for i := 0; i < 3; i++ {
		results := pool.Execute(context.Background(), task)
		assert.Equal(t, "ok", results["x"].Data)
	}
}
