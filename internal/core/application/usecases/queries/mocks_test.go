package queries_test

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/mock"
)

type MockOrderCache struct {
	mock.Mock
}

func (m *MockOrderCache) Get(ctx context.Context, id kernel.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderCache) Set(ctx context.Context, id kernel.UUID, data []byte) error {
	return m.Called(ctx, id, data).Error(0)
}

func (m *MockOrderCache) Invalidate(ctx context.Context, ids ...kernel.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLocationStore struct {
	mock.Mock
}

func (m *MockLocationStore) Save(ctx context.Context, sample tracking.Sample) (bool, error) {
	args := m.Called(ctx, sample)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationStore) Get(ctx context.Context, orderID kernel.UUID) (*tracking.Sample, error) {
	args := m.Called(ctx, orderID)
	if s := args.Get(0); s != nil {
		return s.(*tracking.Sample), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLocationStore) Delete(ctx context.Context, orderID kernel.UUID) error {
	return m.Called(ctx, orderID).Error(0)
}
