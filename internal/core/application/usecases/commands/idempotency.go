package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// withIdempotency runs op at most once per (scope, actor, key). A replay
// returns the stored result and replayed is true. keep decides whether a
// result had effects worth remembering; when it did not, or op failed, the key
// is released so the client can retry.
func withIdempotency[T any](
	ctx context.Context,
	store ports.IdempotencyStore,
	logger *slog.Logger,
	scope string,
	actor kernel.Actor,
	key string,
	keep func(T) bool,
	op func() (T, error),
) (result T, replayed bool, err error) {
	var zero T
	if store == nil || key == "" {
		result, err = op()
		return result, false, err
	}

	scopedKey := actor.ID() + ":" + key

	stored, done, err := store.Reserve(ctx, scope, scopedKey)
	if errors.Is(err, ports.ErrIdempotencyKeyInFlight) {
		return zero, false, errs.NewConflictErrorWithCause("Idempotency-Key", key, err)
	}
	if err != nil {
		return zero, false, err
	}
	if done {
		var replay T
		if err = json.Unmarshal(stored, &replay); err != nil {
			return zero, false, err
		}
		return replay, true, nil
	}

	result, opErr := op()
	if opErr != nil || !keep(result) {
		if err = store.Release(ctx, scope, scopedKey); err != nil {
			return result, false, errors.Join(opErr, err)
		}
		return result, false, opErr
	}

	// The effect is committed. Recording it must outlive a cancelled request;
	// if it still fails the reservation stays in flight and retries conflict.
	data, err := json.Marshal(result)
	if err == nil {
		err = store.Complete(context.WithoutCancel(ctx), scope, scopedKey, data)
	}
	if err != nil && logger != nil {
		logger.WarnContext(ctx, "idempotency key left in flight",
			"scope", scope, "key", scopedKey, "error", err)
	}
	return result, false, nil
}
