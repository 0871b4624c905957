package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubmitWaitsForResult(t *testing.T) {
	cfg := DefaultConfig()
	p := New(&cfg, zap.NewNop())
	defer p.Shutdown(context.Background())

	var ran atomic.Bool
	err := p.Submit(context.Background(), func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran.Load())
}

func TestSubmitAsyncRunsEventually(t *testing.T) {
	cfg := DefaultConfig()
	p := New(&cfg, zap.NewNop())

	done := make(chan struct{})
	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(done)
		return nil
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async task did not run")
	}

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestSubmitAfterShutdown(t *testing.T) {
	cfg := DefaultConfig()
	p := New(&cfg, zap.NewNop())
	require.NoError(t, p.Shutdown(context.Background()))

	err := p.Submit(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)
}

func TestSubmitDuringShutdownDoesNotPanic(t *testing.T) {
	for i := 0; i < 20; i++ {
		cfg := DefaultConfig()
		p := New(&cfg, zap.NewNop())

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
					if errors.Is(err, ErrWorkerPoolClosed) {
						return
					}
					if err != nil {
						assert.ErrorIs(t, err, ErrWorkerPoolFull)
					}
				}
			}()
		}

		require.NoError(t, p.Shutdown(context.Background()))
		wg.Wait()
	}
}
