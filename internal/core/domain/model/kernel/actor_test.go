package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

func TestParseRole(t *testing.T) {
	r, err := kernel.ParseRole(" Courier ")
	require.NoError(t, err)
	assert.Equal(t, kernel.RoleCourier, r)

	_, err = kernel.ParseRole("driver")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewActor(t *testing.T) {
	a, err := kernel.NewActor("c-1", kernel.RoleCourier, "Budi")
	require.NoError(t, err)
	require.NoError(t, a.Validate())
	assert.Equal(t, "c-1", a.ID())
	assert.Equal(t, "Budi", a.Name())
	assert.True(t, a.Is(kernel.RoleCourier))
	assert.Equal(t, "courier:c-1", a.String())

	_, err = kernel.NewActor("", kernel.RoleBuyer, "x")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = kernel.NewActor("b-1", kernel.Role("nobody"), "x")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero kernel.Actor
	assert.ErrorIs(t, zero.Validate(), kernel.ErrActorIsNotConstructed)
	assert.NoError(t, kernel.SystemActor().Validate())
}
