package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port    string `yaml:"port"`
		GinMode string `yaml:"gin_mode"`
	} `yaml:"server"`
	Auth struct {
		JWTSecret    string `yaml:"jwt_secret"`
		DelayMS      *int   `yaml:"delay_ms"`
		DemoEmail    string `yaml:"demo_email"`
		DemoPassword string `yaml:"demo_password"`
	} `yaml:"auth"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Session struct {
		SweepCron string `yaml:"sweep_cron"`
	} `yaml:"session"`
	Mock struct {
		Seed         *int64  `yaml:"seed"`
		LatencyScale float64 `yaml:"latency_scale"`
	} `yaml:"mock"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads .env, then the optional YAML file at path, then applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	cfg.Mock.LatencyScale = -1

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("SERVER_PORT", &cfg.Server.Port)
	setString("GIN_MODE", &cfg.Server.GinMode)
	setString("JWT_SECRET", &cfg.Auth.JWTSecret)
	setString("DEMO_EMAIL", &cfg.Auth.DemoEmail)
	setString("DEMO_PASSWORD", &cfg.Auth.DemoPassword)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setString("SESSION_SWEEP_CRON", &cfg.Session.SweepCron)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	if v := os.Getenv("AUTH_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AUTH_DELAY_MS: %w", err)
		}
		cfg.Auth.DelayMS = &ms
	}
	if v := os.Getenv("MOCK_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MOCK_SEED: %w", err)
		}
		cfg.Mock.Seed = &seed
	}
	if v := os.Getenv("LATENCY_SCALE"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LATENCY_SCALE: %w", err)
		}
		cfg.Mock.LatencyScale = scale
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	// Nil means unset; an explicit zero disables the delay.
	if cfg.Auth.DelayMS == nil {
		ms := 1500
		cfg.Auth.DelayMS = &ms
	}
	if cfg.Auth.DemoEmail == "" {
		cfg.Auth.DemoEmail = "demo@example.com"
	}
	if cfg.Session.SweepCron == "" {
		cfg.Session.SweepCron = "@every 5m"
	}
	// A negative scale means "unset"; zero is a valid choice that disables latency.
	if cfg.Mock.LatencyScale < 0 {
		cfg.Mock.LatencyScale = 1
	}
	if cfg.Mock.Seed == nil {
		seed := time.Now().UnixNano()
		cfg.Mock.Seed = &seed
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 bytes")
	}
	if c.Auth.DelayMS != nil && *c.Auth.DelayMS < 0 {
		return fmt.Errorf("auth.delay_ms must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// AuthDelay is the simulated latency of sign-in operations.
func (c *Config) AuthDelay() time.Duration {
	if c.Auth.DelayMS == nil {
		return 0
	}
	return time.Duration(*c.Auth.DelayMS) * time.Millisecond
}

// MockSeed is the price generator seed.
func (c *Config) MockSeed() int64 {
	if c.Mock.Seed == nil {
		return 0
	}
	return *c.Mock.Seed
}

// NewLogger builds the process logger from the log settings.
func NewLogger(c *Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if c.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

// NewRedis connects to Redis. It returns nil without error when no address is
// configured.
func NewRedis(ctx context.Context, c *Config) (*redis.Client, error) {
	if c.Redis.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}
