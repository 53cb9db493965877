package schedulers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

const (
	jobStartedSubject   = "agriassist.jobs.started"
	jobCompletedSubject = "agriassist.jobs.completed"
	jobFailedSubject    = "agriassist.jobs.failed"
)

// jobEvent is the lifecycle record published for each job
type jobEvent struct {
	Key       string    `json:"key"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NATSScheduler executes jobs locally with per-key ordering and publishes
// job lifecycle events to NATS so other instances can observe background
// activity.
type NATSScheduler struct {
	local  *LocalScheduler
	conn   *nats.Conn
	url    string
	logger interfaces.Logger
}

// NewNATSScheduler creates a scheduler that reports over NATS at url
func NewNATSScheduler(url string, opts *SchedulerOptions, logger interfaces.Logger) *NATSScheduler {
	if url == "" {
		url = nats.DefaultURL
	}
	return &NATSScheduler{
		local:  NewLocalScheduler(opts, logger),
		url:    url,
		logger: logger,
	}
}

// Start connects to NATS and starts the underlying scheduler
func (s *NATSScheduler) Start(ctx context.Context) error {
	conn, err := nats.Connect(s.url,
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				s.logger.Warn("nats disconnected", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			s.logger.Info("nats reconnected", map[string]interface{}{
				"url": nc.ConnectedUrl(),
			})
		}),
	)
	if err != nil {
		return errors.NewWithCause(
			types.ErrorTypeExternal, errors.ErrCodeInternal,
			"failed to connect to NATS", err,
		)
	}
	s.conn = conn

	return s.local.Start(ctx)
}

// Stop stops the scheduler and drains the NATS connection
func (s *NATSScheduler) Stop(ctx context.Context) error {
	err := s.local.Stop(ctx)
	if s.conn != nil {
		if drainErr := s.conn.Drain(); drainErr != nil {
			s.logger.Warn("nats drain failed", map[string]interface{}{
				"error": drainErr.Error(),
			})
		}
		s.conn = nil
	}
	return err
}

// Submit enqueues a job, wrapping it so lifecycle events reach NATS
func (s *NATSScheduler) Submit(key string, job func(ctx context.Context) error) error {
	wrapped := func(ctx context.Context) error {
		s.publish(jobStartedSubject, jobEvent{Key: key, Status: "started", Timestamp: time.Now()})
		err := job(ctx)
		if err != nil {
			s.publish(jobFailedSubject, jobEvent{Key: key, Status: "failed", Error: err.Error(), Timestamp: time.Now()})
			return err
		}
		s.publish(jobCompletedSubject, jobEvent{Key: key, Status: "completed", Timestamp: time.Now()})
		return nil
	}
	return s.local.Submit(key, wrapped)
}

func (s *NATSScheduler) publish(subject string, event jobEvent) {
	if s.conn == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.conn.Publish(subject, data); err != nil {
		s.logger.Debug("job event publish failed", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	}
}

var _ interfaces.Scheduler = (*NATSScheduler)(nil)
