package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSettlementSchedule = "*/30 * * * * *"
	DefaultSettlementBatch    = 100
)

type SettleDeliveredOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.SettleDeliveredOrdersCommand) (int, error)
}

// SettlementJob completes delivered orders once the settlement window has
// passed. Each tick drains the backlog batch by batch.
type SettlementJob struct {
	handler   SettleDeliveredOrdersHandler
	after     time.Duration
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewSettlementJob(handler SettleDeliveredOrdersHandler, after time.Duration, logger *slog.Logger) *SettlementJob {
	return &SettlementJob{
		handler:   handler,
		after:     after,
		batchSize: DefaultSettlementBatch,
		schedule:  DefaultSettlementSchedule,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "settlement_job"),
	}
}

func (j *SettlementJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement job started",
		"schedule", j.schedule, "settle_after", j.after.String())
	return nil
}

func (j *SettlementJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Settlement job stopped")
}

// Run settles until a batch comes back short or fails. It returns how many
// orders were completed.
func (j *SettlementJob) Run(ctx context.Context) int {
	cmd, err := commands.NewSettleDeliveredOrdersCommand(j.after, j.batchSize)
	if err != nil {
		metrics.JobFailuresTotal.WithLabelValues("settlement").Inc()
		j.logger.ErrorContext(ctx, "Settlement job misconfigured", "error", err)
		return 0
	}

	total := 0
	for {
		n, err := j.handler.Handle(ctx, cmd)
		total += n
		metrics.OrdersSettledTotal.Add(float64(n))

		if err != nil {
			metrics.JobFailuresTotal.WithLabelValues("settlement").Inc()
			j.logger.ErrorContext(ctx, "Settlement job failed", "error", err, "settled", total)
			return total
		}
		if n < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.InfoContext(ctx, "Delivered orders settled", "count", total)
	}
	return total
}
