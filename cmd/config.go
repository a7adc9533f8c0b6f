package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/services"
	"tracking/internal/jobs"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	SweepEnabled           bool
	SweepInterval          time.Duration
	SimulationProgressStep float64
	PublishTimeout         time.Duration
	AMQPURL                string
	AMQPExchange           string
	TrackingAllowedOrigins []string
}

// LoadConfig builds the configuration from a variable lookup, usually os.Getenv
// after godotenv has loaded .env. Optional values fall back to defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:               valueOr(getenv("HTTP_PORT"), "8082"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 valueOr(getenv("DB_PORT"), "5432"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              valueOr(getenv("DB_SSLMODE"), "disable"),
		SweepEnabled:           true,
		SweepInterval:          jobs.DefaultSweepInterval,
		SimulationProgressStep: services.DefaultProgressStep,
		PublishTimeout:         commands.DefaultPublishTimeout,
		AMQPURL:                getenv("AMQP_URL"),
		AMQPExchange:           getenv("AMQP_EXCHANGE"),
		TrackingAllowedOrigins: splitList(getenv("TRACKING_ALLOWED_ORIGINS")),
	}

	var parseErrs []error

	if v := getenv("SWEEP_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("SWEEP_ENABLED: %w", err))
		}
		cfg.SweepEnabled = enabled
	}

	if v := getenv("SWEEP_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err == nil && interval <= 0 {
			err = errors.New("must be positive")
		}
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("SWEEP_INTERVAL: %w", err))
		}
		cfg.SweepInterval = interval
	}

	if v := getenv("SIMULATION_PROGRESS_STEP"); v != "" {
		step, err := strconv.ParseFloat(v, 64)
		if err == nil {
			_, err = services.NewOrderSimulator(step)
		}
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("SIMULATION_PROGRESS_STEP: %w", err))
		}
		cfg.SimulationProgressStep = step
	}

	if v := getenv("PUBLISH_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err == nil && timeout <= 0 {
			err = errors.New("must be positive")
		}
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("PUBLISH_TIMEOUT: %w", err))
		}
		cfg.PublishTimeout = timeout
	}

	for key, value := range map[string]string{
		"DB_HOST": cfg.DBHost,
		"DB_USER": cfg.DBUser,
		"DB_NAME": cfg.DBName,
	} {
		if value == "" {
			parseErrs = append(parseErrs, fmt.Errorf("%s is required", key))
		}
	}

	if err := errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
