package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/karloscodes/cartridge"
)

var _ cartridge.BackgroundWorker = (*Scheduler)(nil)

// Job is a unit of background work run on a fixed interval.
type Job interface {
	Name() string
	Interval() time.Duration
	Run() error
}

// Scheduler is responsible for running background jobs
type Scheduler struct {
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	jobs      []Job
	isRunning bool
	wg        sync.WaitGroup

	// Prevents overlapping executions of the same job
	processingMutex sync.Mutex
	processing      map[string]bool
}

// NewScheduler creates a scheduler for jobs. Nothing runs until Start.
func NewScheduler(logger *slog.Logger, jobs ...Job) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		jobs:       jobs,
		processing: make(map[string]bool),
	}
}

// executeJobSafely runs a job only if its previous execution has finished
func (s *Scheduler) executeJobSafely(job Job) {
	name := job.Name()

	s.processingMutex.Lock()
	if s.processing[name] {
		s.logger.Debug("Skipping job execution - previous run still in progress", slog.String("job", name))
		s.processingMutex.Unlock()
		return
	}
	s.processing[name] = true
	s.processingMutex.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in background job",
				slog.String("job", name),
				slog.Any("panic", r))
		}

		s.processingMutex.Lock()
		s.processing[name] = false
		s.processingMutex.Unlock()
	}()

	if err := job.Run(); err != nil {
		s.logger.Error("Error executing job", slog.String("job", name), slog.Any("error", err))
	}
}

// Start begins all background jobs. Each job runs once immediately and then
// on its interval.
func (s *Scheduler) Start() error {
	if s.isRunning {
		s.logger.Info("Background jobs already running.")
		return nil
	}

	s.logger.Info("Starting background jobs...", slog.Int("jobs", len(s.jobs)))
	s.isRunning = true

	for _, job := range s.jobs {
		s.startJob(job)
	}
	return nil
}

func (s *Scheduler) startJob(job Job) {
	interval := job.Interval()
	s.logger.Info("Starting job", slog.String("job", job.Name()), slog.Duration("interval", interval))
	ticker := time.NewTicker(interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		s.executeJobSafely(job)
		for {
			select {
			case <-ticker.C:
				s.executeJobSafely(job)
			case <-s.ctx.Done():
				s.logger.Info("Job stopped", slog.String("job", job.Name()))
				return
			}
		}
	}()
}

// Stop halts all background jobs and waits for running executions to finish.
func (s *Scheduler) Stop() {
	if !s.isRunning {
		return
	}
	s.logger.Info("Stopping background jobs...")
	s.cancel()
	s.wg.Wait()
	s.isRunning = false
	s.logger.Info("Background jobs stopped")
}

// IsRunning returns whether jobs are currently running
func (s *Scheduler) IsRunning() bool {
	return s.isRunning
}

// RunNow executes the named job once in the calling goroutine.
func (s *Scheduler) RunNow(name string) bool {
	for _, job := range s.jobs {
		if job.Name() == name {
			s.executeJobSafely(job)
			return true
		}
	}
	return false
}
