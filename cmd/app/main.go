package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracking/api"
	"tracking/cmd"
	httpin "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/in/ws"
	"tracking/internal/adapters/out/events"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := start(ctx, logger); err != nil {
		stop()
		log.Fatalf("Server stopped with error: %v", err)
	}
}

// start wires the service and serves until ctx is cancelled. Every failure is
// returned so the deferred cleanups run before the process exits.
func start(ctx context.Context, logger *slog.Logger) error {
	configs, err := getConfigs()
	if err != nil {
		return err
	}

	db, err := openDatabase(configs)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	hub := ws.NewHub(logger)
	publisher := events.NewFanoutPublisher().With("websocket", hub)
	checks := map[string]httpin.HealthCheck{
		"database": sqlDB.PingContext,
	}

	if configs.AMQPURL != "" {
		broker, err := rabbitmq.Dial(configs.AMQPURL, configs.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		defer func() {
			if err := broker.Close(); err != nil {
				logger.Error("failed to close RabbitMQ connection", "error", err)
			}
		}()
		publisher = publisher.With("rabbitmq", broker)
		checks["rabbitmq"] = func(context.Context) error { return broker.Ping() }
	}

	app, err := cmd.NewCompositionRoot(configs, db, publisher, hub, logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	e, err := newWebServer(&app, configs, checks, logger)
	if err != nil {
		return err
	}

	return run(ctx, e, app, configs, logger)
}

func getConfigs() (cmd.Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cmd.Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		return cmd.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = db.AutoMigrate(postgres.Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func newWebServer(
	app *cmd.CompositionRoot,
	configs cmd.Config,
	checks map[string]httpin.HealthCheck,
	logger *slog.Logger,
) (*echo.Echo, error) {
	validator, err := httpin.NewRequestValidator(api.Spec)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	server := httpin.NewServer(httpin.Handlers{
		AdvanceOrder:         app.CreateAdvanceOrderCommandHandler(),
		CreateOrder:          app.CreateCreateOrderCommandHandler(),
		CreateCourier:        app.CreateCreateCourierCommandHandler(),
		CreateVendor:         app.CreateCreateVendorCommandHandler(),
		GetOpenOrders:        app.CreateGetOpenOrdersQueryHandler(),
		GetOrder:             app.CreateGetOrderQueryHandler(),
		GetAllCouriers:       app.CreateGetAllCouriersQueryHandler(),
		GetUserNotifications: app.CreateGetUserNotificationsQueryHandler(),
	}, app.Hub(), configs.TrackingAllowedOrigins, logger)
	for name, check := range checks {
		server.AddHealthCheck(name, check)
	}
	e.Use(validator)
	server.Register(e)

	return e, nil
}

// run binds the listener, starts the jobs and serves HTTP until ctx is
// cancelled. Shutdown stops the jobs, closes the tracking sockets and drains
// in-flight requests.
func run(ctx context.Context, e *echo.Echo, app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	e.Listener = ln

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		_ = ln.Close()
		return fmt.Errorf("failed to start jobs: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := e.Start("")
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")

		jobManager.StopAll()
		app.Hub().Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
