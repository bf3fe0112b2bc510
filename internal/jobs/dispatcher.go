// Package jobs runs gate evaluations in the background for webhook mode.
package jobs

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/sevigo/approval-gate/internal/core"
)

const (
	queueSize  = 100
	jobTimeout = 2 * time.Minute
)

// dispatcher implements core.JobDispatcher with a fixed pool of workers. Each
// worker owns its queue and requests are routed by pull request, so two
// evaluations of the same change never run at the same time.
type dispatcher struct {
	ctx    context.Context
	job    core.Job
	queues []chan *core.GateRequest
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(ctx context.Context, job core.Job, maxWorkers int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		ctx:    ctx,
		job:    job,
		queues: make([]chan *core.GateRequest, maxWorkers),
		logger: logger,
	}
	for i := range d.queues {
		d.queues[i] = make(chan *core.GateRequest, queueSize)
		d.wg.Add(1)
		go d.worker(i, d.queues[i])
	}
	return d
}

func (d *dispatcher) worker(id int, queue <-chan *core.GateRequest) {
	defer d.wg.Done()
	d.logger.Debug("starting gate worker", "id", id)

	for req := range queue {
		d.process(id, req)
	}

	d.logger.Debug("shutting down gate worker", "id", id)
}

func (d *dispatcher) process(workerID int, req *core.GateRequest) {
	d.logger.Info("worker processing gate request", "worker_id", workerID, "change", req.Ref.String(), "trigger", req.Trigger)

	ctx, cancel := context.WithTimeout(d.ctx, jobTimeout)
	defer cancel()

	if err := d.job.Run(ctx, req); err != nil {
		d.logger.Error("gate evaluation failed", "change", req.Ref.String(), "error", err)
	}
}

// shard picks the worker that owns ref.
func (d *dispatcher) shard(ref core.ChangeRef) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref.String()))
	return int(h.Sum32() % uint32(len(d.queues)))
}

// Dispatch queues a request on the worker that owns its pull request.
func (d *dispatcher) Dispatch(_ context.Context, req *core.GateRequest) error {
	select {
	case d.queues[d.shard(req.Ref)] <- req:
		d.logger.Info("queued gate request", "change", req.Ref.String(), "trigger", req.Trigger)
		return nil
	default:
		return fmt.Errorf("job queue is full, cannot accept gate request for %s", req.Ref)
	}
}

// Stop closes the queues and waits for in-flight evaluations to finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping dispatcher and waiting for evaluations to finish")
	for _, q := range d.queues {
		close(q)
	}
	d.wg.Wait()
	d.logger.Info("all gate evaluations have finished")
}
