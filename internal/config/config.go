package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	LockMemory = "memory"
	LockRedis  = "redis"

	PolicyOptimistic = "optimistic"
	PolicyStrict     = "strict"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Booking   BookingConfig   `toml:"booking"`
	Lock      LockConfig      `toml:"lock"`
	Redis     RedisConfig     `toml:"redis"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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
	MigrationsPath  string `toml:"migrations_path"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения в формате postgres://, нужна для golang-migrate
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type StorageConfig struct {
	// Backend memory или postgres
	Backend  string `toml:"backend"`
	SeedFile string `toml:"seed_file"`
}

type BookingConfig struct {
	// AvailabilityPolicy optimistic (блокируют только approved) или strict (pending тоже)
	AvailabilityPolicy string `toml:"availability_policy"`
}

// StrictAvailability true, если pending бронирования тоже занимают машину
func (b BookingConfig) StrictAvailability() bool {
	return b.AvailabilityPolicy == PolicyStrict
}

type LockConfig struct {
	Backend string `toml:"backend"`
	// TTLMs время жизни redis-лока
	TTLMs int `toml:"ttl_ms"`
	// RetryIntervalMs пауза между попытками взять redis-лок
	RetryIntervalMs int `toml:"retry_interval_ms"`
	// WaitTimeoutMs сколько ждать лок, прежде чем вернуть ошибку
	WaitTimeoutMs int `toml:"wait_timeout_ms"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
}

type SchedulerConfig struct {
	Enabled bool `toml:"enabled"`
	// CompleteSpec cron выражение с секундами для завершения закончившихся аренд
	CompleteSpec string `toml:"complete_spec"`
}

// Load читает .env (если есть), затем TOML файл, применяет значения по умолчанию
// и переопределения из переменных окружения
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Host, "localhost")
	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	setDefault(&c.Database.MigrationsPath, "file://migrations")

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.ServiceName, "car-rental-service")
	setDefault(&c.Metrics.Path, "/metrics")

	setDefault(&c.Storage.Backend, StorageMemory)
	setDefault(&c.Booking.AvailabilityPolicy, PolicyOptimistic)

	setDefault(&c.Lock.Backend, LockMemory)
	setDefault(&c.Lock.TTLMs, 5000)
	setDefault(&c.Lock.RetryIntervalMs, 50)
	setDefault(&c.Lock.WaitTimeoutMs, 3000)

	setDefault(&c.Redis.Addr, "localhost:6379")

	setDefault(&c.RabbitMQ.Queue, "booking.events")

	setDefault(&c.Scheduler.CompleteSpec, "0 */5 * * * *")
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		c.RabbitMQ.URL = v
	}
}

// Validate проверяет перечислимые значения
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	switch c.Booking.AvailabilityPolicy {
	case PolicyOptimistic, PolicyStrict:
	default:
		return fmt.Errorf("%w: unknown availability policy %q", ErrInvalidConfig, c.Booking.AvailabilityPolicy)
	}

	switch c.Lock.Backend {
	case LockMemory, LockRedis:
	default:
		return fmt.Errorf("%w: unknown lock backend %q", ErrInvalidConfig, c.Lock.Backend)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq enabled but url is empty", ErrInvalidConfig)
	}
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
