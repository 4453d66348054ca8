package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	settlementJob *SettlementJob
	outboxJob     *OutboxPublisherJob
}

func NewJobManager(
	settleHandler SettleDeliveredOrdersHandler,
	publishHandler PublishOutboxHandler,
	settleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		settlementJob: NewSettlementJob(settleHandler, settleAfter, logger),
		outboxJob:     NewOutboxPublisherJob(publishHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox publisher job: %w", err)
	}

	if err := jm.settlementJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxJob.Stop()
		return fmt.Errorf("failed to start settlement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks to finish.
// The outbox job stops last so events of the final settlements still go out.
func (jm *JobManager) StopAll() {
	jm.settlementJob.Stop()
	jm.outboxJob.Stop()
}
