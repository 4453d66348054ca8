package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettleHandler struct {
	mock.Mock
}

func (m *MockSettleHandler) Handle(ctx context.Context, cmd commands.SettleDeliveredOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockPublishHandler struct {
	mock.Mock
}

func (m *MockPublishHandler) Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSettlementJob_DrainsFullBatches(t *testing.T) {
	handler := new(MockSettleHandler)
	job := NewSettlementJob(handler, 10*time.Minute, discardLogger())
	job.batchSize = 2

	before := testutil.ToFloat64(metrics.OrdersSettledTotal)

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SettleDeliveredOrdersCommand) bool {
		return cmd.OlderThan() == 10*time.Minute && cmd.BatchSize() == 2
	})).Return(2, nil).Twice()
	handler.On("Handle", mock.Anything, mock.Anything).Return(1, nil).Once()

	settled := job.Run(context.Background())

	assert.Equal(t, 5, settled)
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.OrdersSettledTotal)-before)
	handler.AssertNumberOfCalls(t, "Handle", 3)
}

func TestSettlementJob_StopsOnFailure(t *testing.T) {
	handler := new(MockSettleHandler)
	job := NewSettlementJob(handler, time.Minute, discardLogger())
	job.batchSize = 2

	failures := metrics.JobFailuresTotal.WithLabelValues("settlement")
	before := testutil.ToFloat64(failures)

	handler.On("Handle", mock.Anything, mock.Anything).Return(2, nil).Once()
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

	settled := job.Run(context.Background())

	assert.Equal(t, 2, settled)
	assert.Equal(t, 1.0, testutil.ToFloat64(failures)-before)
	handler.AssertExpectations(t)
}

func TestOutboxPublisherJob_Run(t *testing.T) {
	t.Run("nothing pending", func(t *testing.T) {
		handler := new(MockPublishHandler)
		job := NewOutboxPublisherJob(handler, discardLogger())

		handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()

		assert.Equal(t, 0, job.Run(context.Background()))
		handler.AssertExpectations(t)
	})

	t.Run("broker failure keeps what was sent", func(t *testing.T) {
		handler := new(MockPublishHandler)
		job := NewOutboxPublisherJob(handler, discardLogger())
		job.batchSize = 3

		before := testutil.ToFloat64(metrics.OutboxPublishedTotal)
		handler.On("Handle", mock.Anything, mock.Anything).Return(3, nil).Once()
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("broker unavailable")).Once()

		assert.Equal(t, 4, job.Run(context.Background()))
		assert.Equal(t, 4.0, testutil.ToFloat64(metrics.OutboxPublishedTotal)-before)
	})
}

func TestJobManager_StartStop(t *testing.T) {
	settle := new(MockSettleHandler)
	publish := new(MockPublishHandler)
	settle.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	publish.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	jm := NewJobManager(settle, publish, time.Minute, discardLogger())
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestSettlementJob_RejectsBadSchedule(t *testing.T) {
	job := NewSettlementJob(new(MockSettleHandler), time.Minute, discardLogger())
	job.schedule = "not a schedule"

	assert.Error(t, job.Start())
}
