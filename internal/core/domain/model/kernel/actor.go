package kernel

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleMerchant Role = "merchant"
	RoleCourier  Role = "courier"
	RoleAdmin    Role = "admin"
	// RoleSystem is used by scheduled jobs.
	RoleSystem Role = "system"
)

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleBuyer, RoleMerchant, RoleCourier, RoleAdmin, RoleSystem:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", errors.New(s+" is not a known role"))
	}
}

// Actor is the authenticated principal on whose behalf an operation runs.
type Actor struct {
	id    string
	role  Role
	name  string
	guard guard.ConstructorGuard
}

func NewActor(id string, role Role, name string) (Actor, error) {
	if strings.TrimSpace(id) == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, name: name, guard: guard.NewConstructorGuard()}, nil
}

func SystemActor() Actor {
	return Actor{id: "system", role: RoleSystem, name: "system", guard: guard.NewConstructorGuard()}
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() string {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

func (a Actor) String() string {
	return string(a.role) + ":" + a.id
}
