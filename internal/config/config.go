package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	WorkHour WorkHourConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port             int
	Env              string
	LogLevel         string
	FrontendURL      string
	DeviceGatewayURL string
}

// WorkHourConfig holds the fallback thresholds used by punch ingestion and
// work-hour calculation. Organizations can override these per tenant via
// organization_work_hour_configs; the values here apply when no override row
// exists.
type WorkHourConfig struct {
	GracePeriodMinutes        int
	OvertimeThresholdMinutes  int
	UnderTimeThresholdMinutes int
	NoTimeInDeductionMinutes  int
	NoTimeOutDeductionMinutes int
	AllowEarlyCheckIn         bool
}

// JobsConfig holds the batch work-hour job worker settings.
type JobsConfig struct {
	PollInterval   time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	Concurrency    int
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr-management"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		DeviceGatewayURL: getEnv("DEVICE_GATEWAY_URL", "http://localhost:9100"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	grace, err := strconv.Atoi(getEnv("WORK_HOUR_GRACE_PERIOD_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_HOUR_GRACE_PERIOD_MINUTES: %w", err)
	}
	overtime, err := strconv.Atoi(getEnv("WORK_HOUR_OVERTIME_THRESHOLD_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_HOUR_OVERTIME_THRESHOLD_MINUTES: %w", err)
	}
	underTime, err := strconv.Atoi(getEnv("WORK_HOUR_UNDER_TIME_THRESHOLD_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_HOUR_UNDER_TIME_THRESHOLD_MINUTES: %w", err)
	}
	noTimeIn, err := strconv.Atoi(getEnv("WORK_HOUR_NO_TIME_IN_DEDUCTION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_HOUR_NO_TIME_IN_DEDUCTION_MINUTES: %w", err)
	}
	noTimeOut, err := strconv.Atoi(getEnv("WORK_HOUR_NO_TIME_OUT_DEDUCTION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_HOUR_NO_TIME_OUT_DEDUCTION_MINUTES: %w", err)
	}

	config.WorkHour = WorkHourConfig{
		GracePeriodMinutes:        grace,
		OvertimeThresholdMinutes:  overtime,
		UnderTimeThresholdMinutes: underTime,
		NoTimeInDeductionMinutes:  noTimeIn,
		NoTimeOutDeductionMinutes: noTimeOut,
		AllowEarlyCheckIn:         getEnv("WORK_HOUR_ALLOW_EARLY_CHECK_IN", "false") == "true",
	}

	pollInterval, err := time.ParseDuration(getEnv("JOB_POLL_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_POLL_INTERVAL: %w", err)
	}
	maxAttempts, err := strconv.Atoi(getEnv("JOB_MAX_ATTEMPTS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_MAX_ATTEMPTS: %w", err)
	}
	initialBackoff, err := time.ParseDuration(getEnv("JOB_INITIAL_BACKOFF", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_INITIAL_BACKOFF: %w", err)
	}
	concurrency, err := strconv.Atoi(getEnv("JOB_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_CONCURRENCY: %w", err)
	}

	config.Jobs = JobsConfig{
		PollInterval:   pollInterval,
		MaxAttempts:    maxAttempts,
		InitialBackoff: initialBackoff,
		Concurrency:    concurrency,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Jobs.MaxAttempts < 1 {
		return fmt.Errorf("JOB_MAX_ATTEMPTS must be at least 1")
	}
	if c.Jobs.Concurrency < 1 {
		return fmt.Errorf("JOB_CONCURRENCY must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
