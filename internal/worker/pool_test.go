package worker

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	n    int
	fail bool
}

type stubResult struct {
	n   int
	err error
}

func (r *stubResult) GetError() error { return r.err }

func (j *stubJob) Execute(context.Context) Result {
	if j.fail {
		return &stubResult{n: j.n, err: errors.New("boom")}
	}
	return &stubResult{n: j.n * 2}
}

func TestPoolRunsEveryJob(t *testing.T) {
	pool := NewPool(3)
	pool.Start(context.Background())

	go func() {
		for i := 1; i <= 10; i++ {
			pool.Submit(&stubJob{n: i})
		}
		pool.Close()
	}()

	var got []int
	for res := range pool.Results() {
		got = append(got, res.(*stubResult).n)
	}
	sort.Ints(got)
	assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}, got)
}

func TestPoolReportsJobErrors(t *testing.T) {
	pool := NewPool(1)
	pool.Start(context.Background())

	go func() {
		pool.Submit(&stubJob{n: 1, fail: true})
		pool.Submit(&stubJob{n: 2})
		pool.Close()
	}()

	failed := 0
	total := 0
	for res := range pool.Results() {
		total++
		if res.GetError() != nil {
			failed++
		}
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, failed)
}

func TestPoolMinimumOneWorker(t *testing.T) {
	pool := NewPool(0)
	pool.Start(context.Background())

	go func() {
		pool.Submit(&stubJob{n: 5})
		pool.Close()
	}()

	res, ok := <-pool.Results()
	require.True(t, ok)
	assert.Equal(t, 10, res.(*stubResult).n)
	_, ok = <-pool.Results()
	assert.False(t, ok, "result channel closes after the last job")
}
