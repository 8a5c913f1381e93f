package identity

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vaultx/internal/logger"
)

// DefaultCheckInterval is used when the job is started with a non-positive
// interval.
const DefaultCheckInterval = time.Minute

// Checker re-validates the current identity.
type Checker interface {
	Validate(ctx context.Context) error
}

// CheckJob periodically re-validates the current identity so that a token
// revoked on the server ends the local session.
type CheckJob struct {
	checker Checker
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCheckJob creates a CheckJob calling checker.Validate on a ticker. The job
// is idle until Start is called.
func NewCheckJob(checker Checker, log *logger.Logger) *CheckJob {
	return &CheckJob{checker: checker, logger: log}
}

// Start stops any previously running job, then launches a goroutine that
// calls Validate every interval until ctx is cancelled or Stop is called.
func (j *CheckJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.checker.Validate(jobCtx); err != nil {
					j.logger.Warn().
						Str("func", "CheckJob.Start").
						Err(err).
						Msg("identity check failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *CheckJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
