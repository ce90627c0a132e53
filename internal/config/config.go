package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig `mapstructure:"log"`
	Store     StoreConfig
	Mongo     MongoConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Retry     RetryConfig     `mapstructure:"retry"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// path of the file the config was read from, used by the watcher
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// StoreConfig selects the document store backend: mongo, mysql or memory.
type StoreConfig struct {
	Type     string `mapstructure:"type"`
	SeedFile string `mapstructure:"seed_file"`
}

type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout_seconds"`
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout_seconds"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff_ms"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff_ms"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAgeSeconds  int      `mapstructure:"max_age_seconds"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("store.type", "mongo")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "cyberar")
	v.SetDefault("mongo.timeout_seconds", 10)
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 1)
	v.SetDefault("redis.dial_timeout_seconds", 5)
	v.SetDefault("cors.allowed_methods", []string{"GET", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Authorization", "Content-Type", "Accept", "Origin", "Cache-Control", "X-Requested-With"})
	v.SetDefault("cors.max_age_seconds", 600)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 100)
	v.SetDefault("retry.max_backoff_ms", 2000)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CYBERAR")
	v.AutomaticEnv()
	setDefaults(v)

	// Store
	v.BindEnv("store.type", "STORE_TYPE")
	v.BindEnv("store.seed_file", "STORE_SEED_FILE")

	// Mongo
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("log.level", "LOG_LEVEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()

	cfg.Mongo.Timeout = cfg.Mongo.Timeout * time.Second
	cfg.Redis.DialTimeout = cfg.Redis.DialTimeout * time.Second
	cfg.Retry.InitialBackoff = cfg.Retry.InitialBackoff * time.Millisecond
	cfg.Retry.MaxBackoff = cfg.Retry.MaxBackoff * time.Millisecond

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Type {
	case "mongo", "mysql", "memory":
	default:
		return fmt.Errorf("unsupported store type %q", c.Store.Type)
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}

	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	return nil
}
