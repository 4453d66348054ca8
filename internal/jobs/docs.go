// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron schedules (github.com/robfig/cron/v3, seconds precision) that
// drive command handlers. A tick never overlaps the previous one.
//
// # Available Jobs
//
// 1. SettlementJob - every 30 seconds completes orders that have been delivered
// for longer than ORDER_SETTLE_AFTER, acting as the system principal
// 2. OutboxPublisherJob - every second publishes committed outbox messages to Kafka
//
// # Usage
//
//	jobManager := jobs.NewJobManager(settleHandler, publishHandler, cfg.OrderSettleAfter, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and counted in job_failures_total. Nothing is lost: an
// order left delivered or an unpublished outbox row is picked up by the next tick.
package jobs
