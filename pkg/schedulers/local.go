// Package schedulers runs background jobs serialized per key
package schedulers

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
)

// Job is a unit of background work
type Job func(ctx context.Context) error

// SchedulerOptions tunes job execution
type SchedulerOptions struct {
	// QueueSize bounds pending jobs per key; Submit fails once full
	QueueSize int
	// RetryAttempts is the number of retries after the first failure
	RetryAttempts int
	// RetryDelay is the initial backoff interval between retries
	RetryDelay time.Duration
}

// DefaultSchedulerOptions returns sensible execution defaults
func DefaultSchedulerOptions() *SchedulerOptions {
	return &SchedulerOptions{
		QueueSize:     64,
		RetryAttempts: 3,
		RetryDelay:    2 * time.Second,
	}
}

// LocalScheduler executes jobs on per-key goroutines. Jobs submitted under
// the same key run strictly in order; different keys run concurrently.
type LocalScheduler struct {
	opts   *SchedulerOptions
	logger interfaces.Logger

	mu      sync.Mutex
	queues  map[string]chan Job
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewLocalScheduler creates a scheduler running jobs in-process
func NewLocalScheduler(opts *SchedulerOptions, logger interfaces.Logger) *LocalScheduler {
	if opts == nil {
		opts = DefaultSchedulerOptions()
	}
	return &LocalScheduler{
		opts:   opts,
		logger: logger,
		queues: make(map[string]chan Job),
	}
}

// Start starts the scheduler
func (s *LocalScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true
	s.logger.Info("scheduler started", map[string]interface{}{
		"queue_size":     s.opts.QueueSize,
		"retry_attempts": s.opts.RetryAttempts,
	})
	return nil
}

// Stop cancels running jobs and waits for workers to exit
func (s *LocalScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	for _, q := range s.queues {
		close(q)
	}
	s.queues = make(map[string]chan Job)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("scheduler stopped", nil)
		return nil
	case <-ctx.Done():
		return errors.NewTimeoutError("scheduler shutdown")
	}
}

// Submit enqueues a job. Jobs sharing a key never run concurrently.
func (s *LocalScheduler) Submit(key string, job func(ctx context.Context) error) error {
	if key == "" {
		return errors.NewMissingFieldError("key")
	}
	if job == nil {
		return errors.NewInvalidInputError("job cannot be nil")
	}

	// The enqueue stays under the lock: Stop closes queue channels while
	// holding it, so a send outside the critical section could hit a closed
	// channel. The send never blocks, it falls through to busy instead.
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.NewInternalError("scheduler is not running")
	}
	q, ok := s.queues[key]
	if !ok {
		q = make(chan Job, s.opts.QueueSize)
		s.queues[key] = q
		s.wg.Add(1)
		go s.worker(key, q)
	}

	select {
	case q <- job:
		return nil
	default:
		return errors.NewBusyError("job queue for " + key)
	}
}

// worker drains one key's queue, retrying failed jobs with backoff
func (s *LocalScheduler) worker(key string, q chan Job) {
	defer s.wg.Done()

	for job := range q {
		if s.ctx.Err() != nil {
			return
		}
		if err := s.runWithRetry(job); err != nil {
			s.logger.Error("background job failed", err, map[string]interface{}{
				"key": key,
			})
		}
	}
}

func (s *LocalScheduler) runWithRetry(job Job) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.opts.RetryDelay
	policy := backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(s.opts.RetryAttempts)),
		s.ctx,
	)
	return backoff.Retry(func() error {
		return job(s.ctx)
	}, policy)
}

var _ interfaces.Scheduler = (*LocalScheduler)(nil)
