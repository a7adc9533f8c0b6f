package orderrepo_test

import (
	"testing"

	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func newCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name)
	require.NoError(t, err)
	return c
}
