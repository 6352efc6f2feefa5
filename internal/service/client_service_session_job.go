package service

import (
	"context"
	"sync"
	"time"
)

type clientSessionJob struct {
	sessions ClientSessionService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSessionJob creates a clientSessionJob that resolves the session on
// a ticker, keeping the credential snapshot inside its staleness window while
// the client runs. The job is idle until Start is called.
func NewClientSessionJob(sessions ClientSessionService) ClientSessionJob {
	return &clientSessionJob{sessions: sessions}
}

// Start implements ClientSessionJob. It stops any previously running job,
// then launches a background goroutine that calls Session every interval.
// If interval is zero or negative it defaults to 5 minutes. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *clientSessionJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
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
				_, _, _ = j.sessions.Session(jobCtx)
			}
		}
	}()
}

// Stop implements ClientSessionJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *clientSessionJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
