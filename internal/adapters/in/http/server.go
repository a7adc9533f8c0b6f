// Package http exposes the tracking service over REST and WebSocket using echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"tracking/internal/adapters/in/ws"
	"tracking/internal/adapters/out/events"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type (
	advanceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (commands.AdvanceOrderResult, error)
	}
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	createVendorHandler interface {
		Handle(ctx context.Context, cmd commands.CreateVendorCommand) error
	}
	createCourierHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
	}
	getOpenOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.OrderReadModel, error)
	}
	getOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderReadModel, error)
	}
	getAllCouriersHandler interface {
		Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]queries.GetAllCouriersQueryResponse, error)
	}
	getUserNotificationsHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetUserNotificationsQuery,
		) ([]queries.GetUserNotificationsQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	AdvanceOrder         advanceOrderHandler
	CreateOrder          createOrderHandler
	CreateCourier        createCourierHandler
	CreateVendor         createVendorHandler
	GetOpenOrders        getOpenOrdersHandler
	GetOrder             getOrderHandler
	GetAllCouriers       getAllCouriersHandler
	GetUserNotifications getUserNotificationsHandler
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers       Handlers
	hub            *ws.Hub
	originPatterns []string
	checks         map[string]HealthCheck
	logger         *slog.Logger
}

// NewServer creates the HTTP adapter. originPatterns restricts which browser
// origins may open tracking sockets; empty means same origin only.
func NewServer(handlers Handlers, hub *ws.Hub, originPatterns []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers:       handlers,
		hub:            hub,
		originPatterns: originPatterns,
		checks:         make(map[string]HealthCheck),
		logger:         logger.With("component", "HTTPServer"),
	}
}

// AddHealthCheck makes /health fail while check returns an error.
func (s *Server) AddHealthCheck(name string, check HealthCheck) {
	s.checks[name] = check
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/open", s.GetOpenOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.GET("/orders/:id/track", s.TrackOrder)
	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)
	api.POST("/vendors", s.CreateVendor)
	api.GET("/users/:id/notifications", s.GetUserNotifications)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	for name, check := range s.checks {
		if err := check(c.Request().Context()); err != nil {
			s.logger.WarnContext(c.Request().Context(), "health check failed", "check", name, "error", err)
			return c.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: name + " is unavailable",
			})
		}
	}
	return c.String(http.StatusOK, "Healthy")
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance, the pull-mode driver.
func (s *Server) AdvanceOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order ID", err)
	}

	var req AdvanceOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(c, "Invalid status", err)
	}

	origin, err := toLocation(req.Origin, "origin")
	if err != nil {
		return badRequest(c, "Invalid origin", err)
	}

	destination, err := toLocation(req.Destination, "destination")
	if err != nil {
		return badRequest(c, "Invalid destination", err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, status, origin, destination, req.Progress)
	if err != nil {
		return badRequest(c, "Invalid order snapshot", err)
	}

	result, err := s.handlers.AdvanceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "Failed to advance order", err)
	}

	resp := AdvanceOrderResponse{
		Status:        result.Status.String(),
		Progress:      result.Progress,
		StatusChanged: result.StatusChanged,
	}
	if pos := result.CourierPosition; pos != nil {
		lat, lng := pos.Lat(), pos.Lng()
		resp.CourierLat, resp.CourierLng = &lat, &lng
	}

	return c.JSON(http.StatusOK, resp)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(c, "Invalid customer ID", err)
	}

	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return badRequest(c, "Invalid vendor ID", err)
	}

	destination, err := toLocation(req.Destination, "destination")
	if err != nil {
		return badRequest(c, "Invalid destination", err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, vendorID, destination)
	if err != nil {
		return badRequest(c, "Invalid order data", err)
	}

	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, "Failed to create order", err)
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.OrderID().String()})
}

// GetOpenOrders handles GET /api/v1/orders/open.
func (s *Server) GetOpenOrders(c echo.Context) error {
	orders, err := s.handlers.GetOpenOrders.Handle(c.Request().Context(), queries.NewGetOpenOrdersQuery())
	if err != nil {
		return s.fail(c, "Failed to retrieve orders", err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromReadModel(o)
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := s.orderQuery(c)
	if err != nil {
		return badRequest(c, "Invalid order ID", err)
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "Failed to retrieve order", err)
	}

	return c.JSON(http.StatusOK, orderFromReadModel(o))
}

// TrackOrder handles GET /api/v1/orders/:id/track. The socket receives the
// current state right away and then one message per committed step.
func (s *Server) TrackOrder(c echo.Context) error {
	query, err := s.orderQuery(c)
	if err != nil {
		return badRequest(c, "Invalid order ID", err)
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "Failed to retrieve order", err)
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		// Accept has already written the response
		return nil
	}
	defer conn.CloseNow()

	initial := snapshotMessage(o)
	if err = s.hub.Serve(c.Request().Context(), o.ID, conn, &initial); err != nil {
		s.logger.DebugContext(c.Request().Context(), "tracking socket closed",
			"order_id", o.ID.String(), "error", err)
		return nil
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
	return nil
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	var req NewCourier
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	cmd, err := commands.NewCreateCourierCommand(req.Name)
	if err != nil {
		return badRequest(c, "Invalid courier data", err)
	}

	if err = s.handlers.CreateCourier.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, "Failed to create courier", err)
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.CourierID().String()})
}

// CreateVendor handles POST /api/v1/vendors.
func (s *Server) CreateVendor(c echo.Context) error {
	var req NewVendor
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	location, err := toLocation(req.Location, "location")
	if err != nil {
		return badRequest(c, "Invalid location", err)
	}

	cmd, err := commands.NewCreateVendorCommand(req.Name, location)
	if err != nil {
		return badRequest(c, "Invalid vendor data", err)
	}

	if err = s.handlers.CreateVendor.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, "Failed to create vendor", err)
	}

	return c.JSON(http.StatusCreated, Created{ID: cmd.VendorID().String()})
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(c echo.Context) error {
	couriers, err := s.handlers.GetAllCouriers.Handle(c.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return s.fail(c, "Failed to retrieve couriers", err)
	}

	response := make([]Courier, len(couriers))
	for i, courier := range couriers {
		response[i] = courierFromResponse(courier)
	}

	return c.JSON(http.StatusOK, response)
}

// GetUserNotifications handles GET /api/v1/users/:id/notifications?unread=&limit=.
func (s *Server) GetUserNotifications(c echo.Context) error {
	userID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID", err)
	}

	var unread *bool
	if err = runtime.BindQueryParameter("form", true, false, "unread", c.QueryParams(), &unread); err != nil {
		return badRequest(c, "Invalid unread flag", err)
	}

	var limit *int
	if err = runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return badRequest(c, "Invalid limit", err)
	}

	query, err := queries.NewGetUserNotificationsQuery(userID, unread != nil && *unread, valueOrZero(limit))
	if err != nil {
		return badRequest(c, "Invalid notifications query", err)
	}

	notifications, err := s.handlers.GetUserNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "Failed to retrieve notifications", err)
	}

	response := make([]Notification, len(notifications))
	for i, n := range notifications {
		response[i] = notificationFromResponse(n)
	}

	return c.JSON(http.StatusOK, response)
}

func (s *Server) orderQuery(c echo.Context) (queries.GetOrderQuery, error) {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return queries.GetOrderQuery{}, err
	}
	return queries.NewGetOrderQuery(orderID)
}

func toLocation(l *Location, name string) (kernel.Location, error) {
	if l == nil {
		return kernel.Location{}, errMissing(name)
	}
	return kernel.NewLocation(l.Lat, l.Lng)
}

func snapshotMessage(o queries.OrderReadModel) events.Message {
	return events.NewMessage(ports.OrderEvent{
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		Status:          o.Status,
		Progress:        o.Progress,
		CourierPosition: o.CourierPosition,
		CourierID:       o.CourierID,
	})
}

func valueOrZero[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
