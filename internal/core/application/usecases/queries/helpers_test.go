package queries_test

import (
	"context"

	postgres_adapter "tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/pgtest"
	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/model/vendor"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

var (
	vendorLocation = kernel.MustNewLocation(34.0522, -118.2437)
	homeLocation   = kernel.MustNewLocation(34.0622, -118.2537)
)

// querySuite owns the container and the write side used to seed fixtures.
type querySuite struct {
	suite.Suite
	database *pgtest.Database
	uow      ports.UnitOfWorkFactory
	vendor   *vendor.Vendor
}

func (s *querySuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), postgres_adapter.Models()...)
	s.database = database
	s.Require().NoError(err)
	s.uow = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (s *querySuite) SetupTest() {
	s.Require().NoError(s.database.Truncate("notifications", "orders", "couriers", "vendors"))

	v, err := vendor.NewVendor(kernel.NewUUID(), "Downtown Kitchen", vendorLocation)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.Create().VendorRepository().Add(context.Background(), v))
	s.vendor = v
}

func (s *querySuite) TearDownSuite() {
	s.Require().NoError(s.database.Terminate(context.Background()))
}

func (s *querySuite) seedOrder(
	status order.Status, progress float64, position *kernel.Location, courierID *kernel.UUID,
) *order.Order {
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), s.vendor.ID(),
		vendorLocation, homeLocation,
		status, progress, position, courierID,
	)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (s *querySuite) seedCourier(name string, available bool) *courier.Courier {
	c, err := courier.RestoreCourier(kernel.NewUUID(), name, available)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.Create().CourierRepository().Add(context.Background(), c))
	return c
}
