package queries_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

type GetOpenOrdersQueryHandlerTestSuite struct {
	querySuite
	handler queries.GetOpenOrdersQueryHandler
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupSuite() {
	suite.querySuite.SetupSuite()
	suite.handler = queries.NewGetOpenOrdersQueryHandler(suite.database.DB)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOpenOrdersOldestFirst() {
	pending := suite.seedOrder(order.Pending, 0, nil, nil)
	time.Sleep(2 * time.Millisecond)
	suite.seedOrder(order.Delivered, 1, &homeLocation, nil)
	time.Sleep(2 * time.Millisecond)
	courier := suite.seedCourier("Alice", true)
	courierID := courier.ID()
	inTransit := suite.seedOrder(order.PickedUp, 0.35, &vendorLocation, &courierID)
	time.Sleep(2 * time.Millisecond)
	suite.seedOrder(order.Cancelled, 0, nil, nil)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(pending.ID(), result[0].ID)
	suite.Equal(order.Pending, result[0].Status)
	suite.Nil(result[0].CourierPosition)
	suite.Nil(result[0].CourierID)

	suite.Equal(inTransit.ID(), result[1].ID)
	suite.Equal(inTransit.CustomerID(), result[1].CustomerID)
	suite.Equal(suite.vendor.ID(), result[1].VendorID)
	suite.Equal(order.PickedUp, result[1].Status)
	suite.Equal(0.35, result[1].Progress)
	suite.Equal(vendorLocation.Lat(), result[1].Origin.Lat())
	suite.Equal(homeLocation.Lng(), result[1].Destination.Lng())
	suite.Require().NotNil(result[1].CourierPosition)
	suite.Equal(vendorLocation.Lat(), result[1].CourierPosition.Lat())
	suite.Require().NotNil(result[1].CourierID)
	suite.Equal(courierID, *result[1].CourierID)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetOpenOrdersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOpenOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func TestGetOpenOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOpenOrdersQueryHandlerTestSuite))
}
