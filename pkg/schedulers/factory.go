package schedulers

import (
	"fmt"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/config"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// NewFromConfig builds a scheduler from configuration
func NewFromConfig(cfg *config.SchedulerConfig, logger interfaces.Logger) (interfaces.Scheduler, error) {
	if cfg == nil {
		cfg = config.NewSchedulerConfig()
	}

	opts := &SchedulerOptions{
		QueueSize:     cfg.QueueSize,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    cfg.RetryDelay,
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultSchedulerOptions().QueueSize
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultSchedulerOptions().RetryDelay
	}

	switch cfg.Backend {
	case types.BackendLocal, "":
		return NewLocalScheduler(opts, logger), nil
	case types.BackendNATS:
		return NewNATSScheduler(cfg.NATSUrl, opts, logger), nil
	default:
		return nil, fmt.Errorf("unsupported scheduler backend: %s", cfg.Backend)
	}
}
