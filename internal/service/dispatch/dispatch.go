package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of background work spun off the request path.
// Failures are logged and never reach the caller.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type Pool struct {
	tasks   chan Task
	timeout time.Duration
	wg      sync.WaitGroup
	stop    sync.Once

	logger *slog.Logger
}

type PoolOption func(*Pool)

func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.logger = logger
	}
}

func New(workers int, queueSize int, taskTimeout time.Duration, opts ...PoolOption) *Pool {
	if workers <= 0 {
		workers = 4 /* default */
	}
	if queueSize <= 0 {
		queueSize = 64 /* default */
	}
	if taskTimeout <= 0 {
		taskTimeout = 5 * time.Second
	}

	p := &Pool{
		tasks:   make(chan Task, queueSize),
		timeout: taskTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for range workers {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues a task without blocking. A full queue drops the task,
// keeping the hot path unaffected.
func (p *Pool) Submit(task Task) bool {
	if task.Run == nil {
		return false
	}

	select {
	case p.tasks <- task:
		return true
	default:
		p.logger.Warn("dispatch queue full, task dropped", slog.String("task", task.Name))
		return false
	}
}

func (p *Pool) Stop() {
	p.stop.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		p.execute(task)
	}
}

func (p *Pool) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("dispatched task panicked",
				slog.String("task", task.Name),
				slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := task.Run(ctx); err != nil {
		p.logger.Error("dispatched task failed",
			slog.String("task", task.Name),
			slog.String("error", err.Error()))
	}
}
