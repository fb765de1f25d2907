package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okonek/mathsprint/internal/worker"
)

type countingJob struct {
	runs *atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(2, 8)
	pool.Start(context.Background())

	var runs atomic.Int32
	for i := 0; i < 5; i++ {
		pool.Submit(&countingJob{runs: &runs})
	}
	pool.Stop()

	assert.Equal(t, int32(5), runs.Load())
}

func TestPool_FailedJobDoesNotStopWorkers(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())

	var runs atomic.Int32
	pool.Submit(&countingJob{runs: &runs, err: errors.New("boom")})
	pool.Submit(&countingJob{runs: &runs})
	pool.Stop()

	assert.Equal(t, int32(2), runs.Load())
}

func TestPool_StopDrainsQueue(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())

	var runs atomic.Int32
	pool.Submit(&countingJob{runs: &runs})
	pool.Stop()

	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, 0, pool.QueueSize())
}
