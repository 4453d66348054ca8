package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultOutboxSchedule = "* * * * * *"
	DefaultOutboxBatch    = 100
)

type PublishOutboxHandler interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error)
}

// OutboxPublisherJob ships committed domain events to the broker every second.
type OutboxPublisherJob struct {
	handler   PublishOutboxHandler
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxPublisherJob(handler PublishOutboxHandler, logger *slog.Logger) *OutboxPublisherJob {
	return &OutboxPublisherJob{
		handler:   handler,
		batchSize: DefaultOutboxBatch,
		schedule:  DefaultOutboxSchedule,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_publisher_job"),
	}
}

func (j *OutboxPublisherJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox publisher job started", "schedule", j.schedule)
	return nil
}

func (j *OutboxPublisherJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox publisher job stopped")
}

// Run publishes pending messages until the outbox is drained or the broker
// refuses a batch.
func (j *OutboxPublisherJob) Run(ctx context.Context) int {
	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		metrics.JobFailuresTotal.WithLabelValues("outbox").Inc()
		j.logger.ErrorContext(ctx, "Outbox publisher job misconfigured", "error", err)
		return 0
	}

	total := 0
	for {
		n, err := j.handler.Handle(ctx, cmd)
		total += n
		metrics.OutboxPublishedTotal.Add(float64(n))

		if err != nil {
			// Unpublished rows stay in the outbox and are retried on the next tick.
			metrics.JobFailuresTotal.WithLabelValues("outbox").Inc()
			j.logger.ErrorContext(ctx, "Outbox publisher job failed", "error", err, "published", total)
			return total
		}
		if n < j.batchSize {
			return total
		}
	}
}
