package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendralabs/vendra/pkg/queue"
)

var processed atomic.Int32

type receiptJob struct {
	SaleID uint `json:"saleId"`
}

func (j *receiptJob) Handle() error {
	processed.Add(1)
	return nil
}

type flakyJob struct{}

func (j *flakyJob) Handle() error {
	return errors.New("export endpoint unreachable")
}

func init() {
	queue.StartWorkers(context.Background(), 2)
	queue.Register("*queue_test.receiptJob", func() queue.Job { return &receiptJob{} })
	queue.Register("*queue_test.flakyJob", func() queue.Job { return &flakyJob{} })
}

func TestDispatchAndProcess(t *testing.T) {
	before := processed.Load()
	require.NoError(t, queue.Dispatch(&receiptJob{SaleID: 42}))

	deadline := time.After(2 * time.Second)
	for processed.Load() == before {
		select {
		case <-deadline:
			t.Fatal("job was never processed")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestFailedJobRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	require.NoError(t, queue.Dispatch(&flakyJob{}))

	// 1 attempt + 1s backoff + slack.
	time.Sleep(2500 * time.Millisecond)

	failed := queue.FailedJobs()
	require.NotEmpty(t, failed)
	assert.Equal(t, 1, failed[len(failed)-1].Attempts)
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&receiptJob{SaleID: 1}) //nolint:errcheck
		}()
	}
	wg.Wait()
}
