package http

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers are set by the gateway after authentication. The service
// trusts them as is.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
	HeaderActorName = "X-Actor-Name"
)

var errUnauthenticated = errors.New("caller identity is missing or invalid")

func actorFrom(c echo.Context) (kernel.Actor, error) {
	h := c.Request().Header

	id := strings.TrimSpace(h.Get(HeaderActorID))
	if id == "" {
		return kernel.Actor{}, errUnauthenticated
	}

	role, err := kernel.ParseRole(h.Get(HeaderActorRole))
	if err != nil || role == kernel.RoleSystem {
		return kernel.Actor{}, errUnauthenticated
	}

	name := strings.TrimSpace(h.Get(HeaderActorName))
	if name == "" {
		name = id
	}

	actor, err := kernel.NewActor(id, role, name)
	if err != nil {
		return kernel.Actor{}, errUnauthenticated
	}
	return actor, nil
}
