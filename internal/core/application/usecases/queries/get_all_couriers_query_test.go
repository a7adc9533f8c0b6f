package queries_test

import (
	"testing"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllCouriersQuery_Valid(t *testing.T) {
	query := queries.NewGetAllCouriersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetAllCouriersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllCouriersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllCouriersQueryIsNotConstructed)
}

func TestGetOpenOrdersQuery_Validate(t *testing.T) {
	require.NoError(t, queries.NewGetOpenOrdersQuery().Validate())
	assert.ErrorIs(t, queries.GetOpenOrdersQuery{}.Validate(), queries.ErrGetOpenOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetOrderQuery(id)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, id, query.OrderID())
	})

	t.Run("zero id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("not constructed", func(t *testing.T) {
		assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewGetUserNotificationsQuery(t *testing.T) {
	userID := kernel.NewUUID()

	tests := []struct {
		name      string
		userID    kernel.UUID
		limit     int
		wantLimit int
		wantErr   error
	}{
		{name: "default limit", userID: userID, limit: 0, wantLimit: queries.DefaultNotificationsLimit},
		{name: "explicit limit", userID: userID, limit: 10, wantLimit: 10},
		{name: "negative limit", userID: userID, limit: -1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "limit too large", userID: userID, limit: 501, wantErr: errs.ErrValueIsOutOfRange},
		{name: "missing user", userID: kernel.UUID{}, limit: 10, wantErr: errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewGetUserNotificationsQuery(tt.userID, true, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, query.Validate())
			assert.Equal(t, tt.wantLimit, query.Limit())
			assert.True(t, query.UnreadOnly())
			assert.Equal(t, tt.userID, query.UserID())
		})
	}
}
