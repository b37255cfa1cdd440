package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/blueclipse/myhustle-booking/internal/domain"
	"github.com/blueclipse/myhustle-booking/pkg/availability"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса бронирований
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Availability   AvailabilityConfig   `toml:"availability"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig уровень и файл логов, пустой File означает stdout
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig сервис магазинов и услуг
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// TimeoutDuration таймаут клиента
func (c CatalogServiceConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// AvailabilityConfig настройки движка доступности
type AvailabilityConfig struct {
	ReferenceTimezone    string   `toml:"reference_timezone"`
	SlotBlockingStatuses []string `toml:"slot_blocking_statuses"`
	DateBlockingStatuses []string `toml:"date_blocking_statuses"`
	MaxCalendarDays      int      `toml:"max_calendar_days"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "bookings",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking_service",
		},
		CatalogService: CatalogServiceConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		Availability: AvailabilityConfig{
			ReferenceTimezone:    "UTC",
			DateBlockingStatuses: []string{string(availability.StatusAccepted)},
			MaxCalendarDays:      domain.DefaultMaxCalendarDays,
		},
	}
}

// applyDefaults заполняет нулевые значения, оставленные пустыми в файле
func (c *Config) applyDefaults() {
	def := Default()

	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = def.Database.SSLMode
	}
	if c.Logs.Level == "" {
		c.Logs.Level = def.Logs.Level
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if c.CatalogService.Timeout == 0 {
		c.CatalogService.Timeout = def.CatalogService.Timeout
	}
	if c.Availability.ReferenceTimezone == "" {
		c.Availability.ReferenceTimezone = def.Availability.ReferenceTimezone
	}
	if c.Availability.MaxCalendarDays == 0 {
		c.Availability.MaxCalendarDays = def.Availability.MaxCalendarDays
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("CATALOG_SERVICE_URL"); v != "" {
		c.CatalogService.URL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT must be a number (got %q)", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535 (got %d)", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port must be in 1..65535 (got %d)", ErrInvalidConfig, c.Database.Port)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("%w: catalog_service.url is required", ErrInvalidConfig)
	}
	if c.CatalogService.Timeout < 0 {
		return fmt.Errorf("%w: catalog_service.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	if c.Availability.MaxCalendarDays < 1 || c.Availability.MaxCalendarDays > domain.MaxCoveredDays {
		return fmt.Errorf("%w: availability.max_calendar_days must be in 1..%d (got %d)",
			ErrInvalidConfig, domain.MaxCoveredDays, c.Availability.MaxCalendarDays)
	}
	if _, err := time.LoadLocation(c.Availability.ReferenceTimezone); err != nil {
		return fmt.Errorf("%w: availability.reference_timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := parseStatuses(c.Availability.SlotBlockingStatuses); err != nil {
		return fmt.Errorf("%w: availability.slot_blocking_statuses: %v", ErrInvalidConfig, err)
	}
	if _, err := parseStatuses(c.Availability.DateBlockingStatuses); err != nil {
		return fmt.Errorf("%w: availability.date_blocking_statuses: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Location таймзона, в которой считаются календарные дни
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Availability.ReferenceTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Policy политика блокировки слотов и дат
func (c *Config) Policy() availability.Policy {
	slot, _ := parseStatuses(c.Availability.SlotBlockingStatuses)
	date, _ := parseStatuses(c.Availability.DateBlockingStatuses)
	return availability.Policy{SlotStatuses: slot, DateStatuses: date}
}

func parseStatuses(raw []string) ([]availability.Status, error) {
	out := make([]availability.Status, 0, len(raw))
	for _, r := range raw {
		s := availability.Status(strings.ToUpper(strings.TrimSpace(r)))
		switch s {
		case availability.StatusPending, availability.StatusAccepted, availability.StatusRejected,
			availability.StatusCancelled, availability.StatusCompleted:
			out = append(out, s)
		default:
			return nil, fmt.Errorf("unknown status %q", r)
		}
	}
	return out, nil
}
