package workers

import (
	"chat-poll/contract"
	"chat-poll/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const waitTimeBeforeRestart = 200 * time.Millisecond

// Supervisor runs each worker in its own goroutine, recovers panics,
// restarts crashed workers and stops them all when its context ends.
type Supervisor struct {
	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	log     *slog.Logger
	workers []contract.Worker
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{wg: &sync.WaitGroup{}, log: log}
}

// Run starts every added worker and blocks until all of them returned.
// Cancelling ctx or calling Stop ends the workers.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs a worker under supervision. A panic or an error restarts the
// worker after waitTimeBeforeRestart; a nil return ends it for good.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.supervise(ctx, worker)
	}()
}

func (s *Supervisor) supervise(ctx context.Context, worker contract.Worker) {
	log := s.log.With("worker", contract.GetWorkerName(worker))
	for restarts := 0; ; restarts++ {
		if ctx.Err() != nil {
			log.Info("Worker not started, supervisor stopping")
			return
		}

		err := runRecovered(ctx, worker)
		switch {
		case err == nil:
			log.Info("Worker finished", "restarts", restarts)
			return
		case ctx.Err() != nil:
			log.Info("Worker stopped", "restarts", restarts)
			return
		}

		log.Warn("Worker crashed, restarting", "restarts", restarts+1, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(waitTimeBeforeRestart):
		}
	}
}

func runRecovered(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}

// Stop cancels every worker. Run returns once they are all gone.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}
