package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order through the order cache. Concurrent
// misses for the same order share a single database read. The visibility
// check runs on every call, cached or not.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	cache  ports.OrderCache
	group  *singleflight.Group
	logger *slog.Logger
}

func NewGetOrderQueryHandler(db *gorm.DB, cache ports.OrderCache, logger *slog.Logger) GetOrderQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderQueryHandler{db: db, cache: cache, group: &singleflight.Group{}, logger: logger}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	view, err := h.view(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	if !view.VisibleTo(query.Actor()) {
		return OrderView{}, errs.NewForbiddenError("view order "+view.ID, query.Actor().String())
	}
	return view, nil
}

func (h GetOrderQueryHandler) view(ctx context.Context, id kernel.UUID) (OrderView, error) {
	if view, ok := h.cached(ctx, id); ok {
		return view, nil
	}

	v, err, _ := h.group.Do(id.String(), func() (any, error) {
		views, err := loadOrderViews(ctx, h.db, `WHERE id = ?`, id.Bytes())
		if err != nil {
			return OrderView{}, err
		}
		if len(views) == 0 {
			return OrderView{}, errs.NewObjectNotFoundError("order", id.String())
		}

		h.store(ctx, id, views[0])
		return views[0], nil
	})
	if err != nil {
		return OrderView{}, err
	}
	return v.(OrderView), nil
}

func (h GetOrderQueryHandler) cached(ctx context.Context, id kernel.UUID) (OrderView, bool) {
	if h.cache == nil {
		return OrderView{}, false
	}

	data, err := h.cache.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			h.logger.WarnContext(ctx, "order cache read failed", "error", err, "order_id", id.String())
		}
		return OrderView{}, false
	}

	var view OrderView
	if err = json.Unmarshal(data, &view); err != nil {
		h.logger.WarnContext(ctx, "order cache entry is corrupt", "error", err, "order_id", id.String())
		return OrderView{}, false
	}
	return view, true
}

func (h GetOrderQueryHandler) store(ctx context.Context, id kernel.UUID, view OrderView) {
	if h.cache == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err = h.cache.Set(ctx, id, data); err != nil {
		h.logger.WarnContext(ctx, "order cache write failed", "error", err, "order_id", id.String())
	}
}
