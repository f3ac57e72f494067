package worker

import (
	"context"
	"time"

	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
)

// WorkflowRefresher regenerates the department workflow context.
type WorkflowRefresher interface {
	RefreshWorkflowContext(ctx context.Context) error
}

// WorkflowRefreshWorker periodically regenerates the department
// workflow narrative so other generations always have fresh
// background context.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type WorkflowRefreshWorker struct {
	refresher WorkflowRefresher
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewWorkflowRefreshWorker(refresher WorkflowRefresher, interval time.Duration) *WorkflowRefreshWorker {
	return &WorkflowRefreshWorker{
		refresher: refresher,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background refresh loop.
// - Initial refresh and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *WorkflowRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Workflow context refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion.
func (w *WorkflowRefreshWorker) Stop() {
	logging.Default().Info("Workflow context refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Workflow context refresh worker stopped")
}

func (w *WorkflowRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.refresher.RefreshWorkflowContext(ctx); err != nil {
		logging.Default().Error("Initial workflow context refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.refresher.RefreshWorkflowContext(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Workflow context refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Workflow context refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Workflow context refresh worker context cancelled")
			return
		}
	}
}
