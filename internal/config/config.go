// Package config loads service configuration from an optional .env file, an optional YAML
// file named by CONFIG_FILE, and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage and cart backends.
const (
	BackendMemory  = "memory"
	BackendSpanner = "spanner"
	BackendRedis   = "redis"
)

// Config holds application configuration.
type Config struct {
	HTTPPort string `yaml:"http_port"`
	GRPCPort string `yaml:"grpc_port"`

	Storage   StorageConfig   `yaml:"storage"`
	Cart      CartConfig      `yaml:"cart"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Outbox    OutboxConfig    `yaml:"outbox"`
	Auth      AuthConfig      `yaml:"auth"`
	Orders    OrdersConfig    `yaml:"orders"`
	Bootstrap BootstrapConfig `yaml:"bootstrap_admin"`
	Log       LogConfig       `yaml:"log"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type StorageConfig struct {
	Backend         string `yaml:"backend"`
	SpannerDatabase string `yaml:"spanner_database"`
}

type CartConfig struct {
	Backend       string        `yaml:"backend"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

// KafkaConfig enables the Kafka publisher when Brokers is non-empty. Without brokers
// events are logged by the in-memory publisher.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type OutboxConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	BatchSize    int           `yaml:"batch_size"`
	MaxRetries   int           `yaml:"max_retries"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	JWTIssuer  string        `yaml:"jwt_issuer"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type OrdersConfig struct {
	AllowStockOverdraw bool `yaml:"allow_stock_overdraw"`
}

// BootstrapConfig describes the admin ensured at startup. An empty email disables it.
type BootstrapConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used for local development with the emulator.
func Default() Config {
	return Config{
		HTTPPort: "8080",
		GRPCPort: "9090",
		Storage: StorageConfig{
			Backend:         BackendMemory,
			SpannerDatabase: "projects/test-project/instances/dev-instance/databases/storefront-db",
		},
		Cart: CartConfig{
			Backend:   BackendMemory,
			RedisAddr: "localhost:6379",
			TTL:       7 * 24 * time.Hour,
		},
		Kafka: KafkaConfig{Topic: "storefront.events"},
		Outbox: OutboxConfig{
			PollInterval: time.Second,
			BatchSize:    100,
			MaxRetries:   5,
		},
		Auth: AuthConfig{
			JWTIssuer: "storefront-service",
			TokenTTL:  24 * time.Hour,
		},
		Bootstrap: BootstrapConfig{Name: "Administrator"},
		Log:       LogConfig{Level: "info", Format: "json"},
		CORSAllowedOrigins: []string{"*"},
	}
}

// Load builds the configuration and validates it.
func Load() (Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendMemory, BackendSpanner:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend))
	}
	if c.Storage.Backend == BackendSpanner && c.Storage.SpannerDatabase == "" {
		errs = append(errs, errors.New("SPANNER_DATABASE is required for the spanner backend"))
	}

	switch c.Cart.Backend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown CART_BACKEND %q", c.Cart.Backend))
	}
	if c.Cart.Backend == BackendRedis && c.Cart.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is required for the redis cart backend"))
	}

	if c.Auth.JWTSecret == "" && c.Storage.Backend != BackendMemory {
		errs = append(errs, errors.New("JWT_SECRET is required outside the memory backend"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if c.Outbox.PollInterval <= 0 || c.Outbox.BatchSize <= 0 || c.Outbox.MaxRetries <= 0 {
		errs = append(errs, errors.New("outbox poll interval, batch size and max retries must be positive"))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// applyEnv overrides cfg with every variable that is set.
func applyEnv(cfg *Config) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = splitList(v)
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("HTTP_PORT", &cfg.HTTPPort)
	str("GRPC_PORT", &cfg.GRPCPort)

	str("STORAGE_BACKEND", &cfg.Storage.Backend)
	str("SPANNER_DATABASE", &cfg.Storage.SpannerDatabase)

	str("CART_BACKEND", &cfg.Cart.Backend)
	str("REDIS_ADDR", &cfg.Cart.RedisAddr)
	str("REDIS_PASSWORD", &cfg.Cart.RedisPassword)
	integer("REDIS_DB", &cfg.Cart.RedisDB)
	duration("CART_TTL", &cfg.Cart.TTL)

	list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	str("KAFKA_TOPIC", &cfg.Kafka.Topic)

	duration("OUTBOX_POLL_INTERVAL", &cfg.Outbox.PollInterval)
	integer("OUTBOX_BATCH_SIZE", &cfg.Outbox.BatchSize)
	integer("OUTBOX_MAX_RETRIES", &cfg.Outbox.MaxRetries)

	str("JWT_SECRET", &cfg.Auth.JWTSecret)
	str("JWT_ISSUER", &cfg.Auth.JWTIssuer)
	duration("TOKEN_TTL", &cfg.Auth.TokenTTL)
	integer("BCRYPT_COST", &cfg.Auth.BcryptCost)

	boolean("ORDER_ALLOW_STOCK_OVERDRAW", &cfg.Orders.AllowStockOverdraw)

	str("BOOTSTRAP_ADMIN_EMAIL", &cfg.Bootstrap.Email)
	str("BOOTSTRAP_ADMIN_PASSWORD", &cfg.Bootstrap.Password)
	str("BOOTSTRAP_ADMIN_NAME", &cfg.Bootstrap.Name)

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	list("CORS_ALLOWED_ORIGINS", &cfg.CORSAllowedOrigins)

	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
