// Package writequeue serializes relational writes through a single
// worker, which keeps SQLite from tripping over concurrent writers
// ("database is locked").
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull returned when the write queue is full
	ErrQueueFull = errors.New("write queue is full")
	// ErrQueueClosed returned when the manager is shut down
	ErrQueueClosed = errors.New("write queue is closed")
)

// Config write queue configuration
type Config struct {
	// QueueCapacity pending write capacity, default 128
	QueueCapacity int
	// WriteTimeout per-write timeout, default 30s
	WriteTimeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 128,
		WriteTimeout:  30 * time.Second,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

// Manager owns the single write worker.
type Manager struct {
	config Config
	logger *zap.Logger

	ch       chan writeOp
	workerWg sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func New(cfg *Config, logger *zap.Logger) *Manager {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 128
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		config: *cfg,
		logger: logger,
		ch:     make(chan writeOp, cfg.QueueCapacity),
	}

	m.workerWg.Add(1)
	go m.worker()

	return m
}

func (m *Manager) worker() {
	defer m.workerWg.Done()

	for op := range m.ch {
		select {
		case <-op.ctx.Done():
			op.result <- op.ctx.Err()
			continue
		default:
		}
		op.result <- op.fn()
	}
}

// Execute runs fn on the write worker and waits for it to finish.
func (m *Manager) Execute(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, m.config.WriteTimeout)
	defer cancel()

	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}

	// the send stays under the read lock, Shutdown holds the write
	// lock while closing the channel
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrQueueClosed
	}
	select {
	case m.ch <- op:
		m.mu.RUnlock()
	default:
		m.mu.RUnlock()
		m.logger.Warn("write queue full, rejecting write")
		return ErrQueueFull
	}

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown drains the queue, waiting for queued writes or ctx expiry.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.ch)
	m.mu.Unlock()

	waitDone := make(chan struct{})
	go func() {
		m.workerWg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
