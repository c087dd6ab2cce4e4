package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rickgao/holiday-data/internal/updater"
)

// Runner performs one update run.
type Runner interface {
	Run(ctx context.Context, codes []string) (*updater.Report, error)
}

// RunnerFunc is a function adapter for Runner.
type RunnerFunc func(ctx context.Context, codes []string) (*updater.Report, error)

func (f RunnerFunc) Run(ctx context.Context, codes []string) (*updater.Report, error) {
	return f(ctx, codes)
}

// Config holds poller configuration.
type Config struct {
	Schedule   string        // cron spec
	RunTimeout time.Duration // per-run deadline, 0 for none
}

// Status is the poller's view of the last run.
type Status struct {
	Runs      int64
	Skipped   int64
	Running   bool
	LastStart time.Time
	Report    *updater.Report
	Err       error
}

// Poller periodically runs the updater.
type Poller struct {
	cfg      Config
	schedule cron.Schedule
	runner   Runner
	logger   *slog.Logger

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	runMu   sync.Mutex // held for the duration of a run
	running atomic.Bool
	runs    atomic.Int64
	skipped atomic.Int64

	mu        sync.RWMutex
	lastStart time.Time
	last      *updater.Report
	lastErr   error
}

// New creates a Poller. The schedule is parsed here so a bad spec fails
// before anything starts.
func New(cfg Config, runner Runner, logger *slog.Logger) (*Poller, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schedule, err := cron.ParseStandard(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", cfg.Schedule, err)
	}
	return &Poller{
		cfg:      cfg,
		schedule: schedule,
		runner:   runner,
		logger:   logger,
	}, nil
}

// Start runs once immediately, then on every schedule tick.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(p.logger.Handler(), slog.LevelDebug))
	p.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	p.cron.Schedule(p.schedule, cron.FuncJob(p.runOnce))

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.runOnce()
	}()

	p.cron.Start()

	p.logger.Info("update poller started",
		"schedule", p.cfg.Schedule,
		"next", p.schedule.Next(time.Now()),
	)
	return nil
}

// Stop cancels any in-flight run and waits for it to return.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	var cronDone <-chan struct{}
	if p.cron != nil {
		cronDone = p.cron.Stop().Done()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		if cronDone != nil {
			<-cronDone
		}
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("update poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns counters and the most recent report.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Status{
		Runs:      p.runs.Load(),
		Skipped:   p.skipped.Load(),
		Running:   p.running.Load(),
		LastStart: p.lastStart,
		Report:    p.last,
		Err:       p.lastErr,
	}
}

// LastReport returns the most recent completed report, or nil.
func (p *Poller) LastReport() *updater.Report {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// runOnce performs one update unless another is already in flight.
func (p *Poller) runOnce() {
	if !p.runMu.TryLock() {
		p.skipped.Add(1)
		p.logger.Warn("previous update still running, skipping tick")
		return
	}
	defer p.runMu.Unlock()

	if p.ctx.Err() != nil {
		return
	}

	p.running.Store(true)
	defer p.running.Store(false)

	start := time.Now()
	p.mu.Lock()
	p.lastStart = start
	p.mu.Unlock()

	ctx := p.ctx
	if p.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RunTimeout)
		defer cancel()
	}

	report, err := p.runner.Run(ctx, nil)
	p.runs.Add(1)

	p.mu.Lock()
	if report != nil {
		p.last = report
	}
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.logger.Error("update run failed to start", "error", err)
		return
	}
	report.LogSummary(p.logger)
}
