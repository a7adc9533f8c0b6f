package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/postgres/courierrepo"
	"tracking/internal/adapters/out/postgres/orderrepo"
	"tracking/internal/adapters/out/postgres/pgtest"
	"tracking/internal/adapters/out/postgres/vendorrepo"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/model/vendor"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var (
	vendorLocation = kernel.MustNewLocation(34.0522, -118.2437)
	homeLocation   = kernel.MustNewLocation(34.0622, -118.2537)
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	vendor     *vendor.Vendor
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(),
		&vendorrepo.VendorDTO{}, &courierrepo.CourierDTO{}, &orderrepo.OrderDTO{})
	suite.database = database
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("orders", "couriers", "vendors"))

	v, err := vendor.NewVendor(kernel.NewUUID(), "Downtown Kitchen", vendorLocation)
	suite.Require().NoError(err)
	suite.Require().NoError(vendorrepo.NewGormVendorRepository(suite.database.DB).Add(context.Background(), v))

	suite.vendor = v
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, suite.newOrder())
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownVendor_Fails() {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), vendorLocation, homeLocation)
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), o)

	suite.Require().Error(err)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_PendingOrder_OriginComesFromVendor() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(o.ID().IsEqual(loaded.ID()))
	suite.True(o.CustomerID().IsEqual(loaded.CustomerID()))
	suite.True(suite.vendor.ID().IsEqual(loaded.VendorID()))
	suite.Equal(order.Pending, loaded.Status())
	suite.InDelta(0.0, loaded.Progress(), 0)
	suite.Nil(loaded.CourierPosition())
	suite.Nil(loaded.Courier())
	suite.Equal(vendorLocation.Lat(), loaded.Origin().Lat())
	suite.Equal(vendorLocation.Lng(), loaded.Origin().Lng())
	suite.Equal(homeLocation.Lat(), loaded.Destination().Lat())
	suite.Equal(homeLocation.Lng(), loaded.Destination().Lng())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_InvalidID_Fails() {
	_, err := suite.repository.Get(context.Background(), kernel.UUID{})

	suite.Require().ErrorIs(err, kernel.ErrUUIDIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateProgress_PersistsStepAndCourier() {
	ctx := context.Background()
	o := suite.restoreOrder(order.Preparing, 0, nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	expected := o.Revision()
	courierID := suite.addCourier("Alice")
	suite.Require().NoError(o.AssignCourier(courierID))
	suite.Require().NoError(o.Apply(order.PickedUp, 0, &vendorLocation))

	err := suite.repository.UpdateProgress(ctx, o, expected)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PickedUp, loaded.Status())
	suite.Require().NotNil(loaded.CourierPosition())
	suite.Equal(vendorLocation.Lat(), loaded.CourierPosition().Lat())
	suite.Equal(vendorLocation.Lng(), loaded.CourierPosition().Lng())
	suite.Require().NotNil(loaded.Courier())
	suite.True(courierID.IsEqual(*loaded.Courier()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateProgress_FractionalProgressRoundTrips() {
	ctx := context.Background()
	o := suite.restoreOrder(order.PickedUp, 0.15000000000000002, &vendorLocation)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	mid, err := vendorLocation.Interpolate(homeLocation, 0.2)
	suite.Require().NoError(err)
	expected := o.Revision()
	suite.Require().NoError(o.Apply(order.PickedUp, 0.2, &mid))
	suite.Require().NoError(suite.repository.UpdateProgress(ctx, o, expected))

	next := o.Revision()
	suite.Require().NoError(o.Apply(order.PickedUp, 0.25, &mid))
	suite.Require().NoError(suite.repository.UpdateProgress(ctx, o, next))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(0.25, loaded.Progress())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateProgress_StaleRevision_ReturnsConcurrentUpdate() {
	ctx := context.Background()
	o := suite.restoreOrder(order.Confirmed, 0, nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stale := order.Revision{Status: order.Pending, Progress: 0}
	suite.Require().NoError(o.Apply(order.Preparing, 0, nil))

	err := suite.repository.UpdateProgress(ctx, o, stale)
	suite.Require().ErrorIs(err, ports.ErrConcurrentUpdate)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateProgress_SecondWriterLoses() {
	ctx := context.Background()
	o := suite.restoreOrder(order.PickedUp, 0.5, &vendorLocation)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	expected := first.Revision()
	suite.Require().NoError(first.Apply(order.PickedUp, 0.55, &homeLocation))
	suite.Require().NoError(second.Apply(order.PickedUp, 0.55, &homeLocation))

	suite.Require().NoError(suite.repository.UpdateProgress(ctx, first, expected))
	suite.Require().ErrorIs(suite.repository.UpdateProgress(ctx, second, expected), ports.ErrConcurrentUpdate)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateProgress_MissingOrder_ReturnsNotFoundError() {
	o := suite.newOrder()
	expected := o.Revision()
	suite.Require().NoError(o.Apply(order.Confirmed, 0, nil))

	err := suite.repository.UpdateProgress(context.Background(), o, expected)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.NotErrorIs(err, ports.ErrConcurrentUpdate)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllOpen_ExcludesTerminalOrders() {
	ctx := context.Background()

	open := []*order.Order{
		suite.restoreOrder(order.Pending, 0, nil),
		suite.restoreOrder(order.Preparing, 0, nil),
		suite.restoreOrder(order.PickedUp, 0.4, &vendorLocation),
	}
	closed := []*order.Order{
		suite.restoreOrder(order.Delivered, 1, &homeLocation),
		suite.restoreOrder(order.Cancelled, 0, nil),
	}

	for _, o := range append(append([]*order.Order{}, open...), closed...) {
		suite.Require().NoError(suite.repository.Add(ctx, o))
		// created_at orders the sweep
		time.Sleep(2 * time.Millisecond)
	}

	loaded, err := suite.repository.GetAllOpen(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(loaded, len(open))
	for i, o := range open {
		suite.True(o.ID().IsEqual(loaded[i].ID()), "position %d", i)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllOpen_Empty_ReturnsEmptySlice() {
	loaded, err := suite.repository.GetAllOpen(context.Background())

	suite.Require().NoError(err)
	suite.Empty(loaded)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), suite.vendor.ID(), vendorLocation, homeLocation)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) restoreOrder(
	status order.Status, progress float64, position *kernel.Location,
) *order.Order {
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), suite.vendor.ID(),
		vendorLocation, homeLocation,
		status, progress, position, nil,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) addCourier(name string) kernel.UUID {
	repo := courierrepo.NewGormCourierRepository(suite.database.DB)
	c := newCourier(suite.T(), name)
	suite.Require().NoError(repo.Add(context.Background(), c))
	return c.ID()
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.database.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
