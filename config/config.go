package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Upstream UpstreamConfig `yaml:"upstream"`
	Filter   FilterConfig   `yaml:"filter"`
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Postgres PostgresConfig `yaml:"postgres"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type UpstreamConfig struct {
	URL             string        `yaml:"url"`
	RestaurantsPath string        `yaml:"restaurants_path"`
	Timeout         time.Duration `yaml:"timeout"`
}

type FilterConfig struct {
	RatingThreshold float64 `yaml:"rating_threshold"`
	// RatingMode is "view" or "destructive".
	RatingMode string `yaml:"rating_mode"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	QRBaseURL      string   `yaml:"qr_base_url"`
	// SessionIdleTTL closes browser sessions nobody touched for this long.
	SessionIdleTTL time.Duration `yaml:"session_idle_ttl"`
	MaxSessions    int           `yaml:"max_sessions"`
}

type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     string        `yaml:"port"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

func (c RedisConfig) Enabled() bool { return c.Host != "" }

type KafkaConfig struct {
	Broker  string `yaml:"broker"`
	Topic   string `yaml:"topic"`
	GroupID string `yaml:"group_id"`
}

func (c KafkaConfig) Enabled() bool { return c.Broker != "" }

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

func (c PostgresConfig) Enabled() bool { return c.Host != "" }

func (c PostgresConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.Name + " sslmode=disable"
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			URL:             "https://www.swiggy.com/dapi/restaurants/list/v5?lat=17.686815&lng=83.218483&page_type=DESKTOP_WEB_LISTING",
			RestaurantsPath: "data.cards[1].card.card.gridElements.infoWithStyle.restaurants",
			Timeout:         10 * time.Second,
		},
		Filter: FilterConfig{
			RatingThreshold: 4.5,
			RatingMode:      "view",
		},
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:1234", "http://localhost:3000", "http://localhost:5173"},
			QRBaseURL:      "http://localhost:8080",
			SessionIdleTTL: 15 * time.Minute,
			MaxSessions:    1000,
		},
		Redis: RedisConfig{
			Port:     "6379",
			CacheTTL: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Topic:   "catalog-filters",
			GroupID: "catalog-aggregator",
		},
		Postgres: PostgresConfig{
			Port: "5432",
			Name: "catalog",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadDotEnv reads .env files into the process environment. A missing file is fine.
func LoadDotEnv(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// Load reads path on top of the defaults, then applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	c.Upstream.URL = getEnv("CATALOG_UPSTREAM_URL", c.Upstream.URL)
	c.Upstream.RestaurantsPath = getEnv("CATALOG_RESTAURANTS_PATH", c.Upstream.RestaurantsPath)
	if v := os.Getenv("CATALOG_UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CATALOG_UPSTREAM_TIMEOUT: %w", err)
		}
		c.Upstream.Timeout = d
	}

	if v := os.Getenv("CATALOG_RATING_THRESHOLD"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CATALOG_RATING_THRESHOLD: %w", err)
		}
		c.Filter.RatingThreshold = t
	}
	c.Filter.RatingMode = getEnv("CATALOG_RATING_MODE", c.Filter.RatingMode)

	c.Server.Port = getEnv("PORT", c.Server.Port)
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid SESSION_IDLE_TTL: %q", v)
		}
		c.Server.SessionIdleTTL = d
	}
	if v := os.Getenv("MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid MAX_SESSIONS: %q", v)
		}
		c.Server.MaxSessions = n
	}

	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnv("REDIS_PORT", c.Redis.Port)
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		c.Redis.CacheTTL = d
	}

	c.Kafka.Broker = getEnv("KAFKA_BROKER", c.Kafka.Broker)
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
	c.Kafka.GroupID = getEnv("KAFKA_GROUP_ID", c.Kafka.GroupID)

	c.Postgres.Host = getEnv("DB_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnv("DB_PORT", c.Postgres.Port)
	c.Postgres.Name = getEnv("DB_NAME", c.Postgres.Name)
	c.Postgres.User = getEnv("DB_USER", c.Postgres.User)
	c.Postgres.Password = getEnv("DB_PASSWORD", c.Postgres.Password)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Host + ":" + cfg.Port,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}
