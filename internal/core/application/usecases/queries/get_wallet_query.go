package queries

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetWalletQueryIsNotConstructed = errors.New(
	"GetWalletQuery must be created via NewGetWalletQuery constructor",
)

// GetWalletQuery reads the wallet of ownerID. An empty ownerID means the
// caller's own wallet; only admins may read another account.
type GetWalletQuery struct {
	actor   kernel.Actor
	ownerID string

	guard guard.ConstructorGuard
}

func NewGetWalletQuery(actor kernel.Actor, ownerID string) (GetWalletQuery, error) {
	ownerID, err := walletOwner(actor, ownerID)
	if err != nil {
		return GetWalletQuery{}, err
	}
	return GetWalletQuery{actor: actor, ownerID: ownerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWalletQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletQueryIsNotConstructed)
}

func (q GetWalletQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetWalletQuery) OwnerID() string {
	return q.ownerID
}

func walletOwner(actor kernel.Actor, ownerID string) (string, error) {
	if err := actor.Validate(); err != nil {
		return "", err
	}

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" || ownerID == actor.ID() {
		return actor.ID(), nil
	}
	if !actor.Is(kernel.RoleAdmin) {
		return "", errs.NewForbiddenError("read wallet of "+ownerID, actor.String())
	}
	return ownerID, nil
}
