package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers       []string
	KafkaSourceTopic   string
	KafkaSinkTopic     string
	KafkaAdvisoryTopic string
	KafkaGroupID       string

	HTTPAddr string // ops server: healthz, readyz, metrics
	APIAddr  string // dashboard REST API

	DBPath string

	AdvisorySchedule string // cron expression for the advisory publish job
	APIRateLimit     int    // requests per second, global

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	flushInterval, err := envDuration("BATCH_FLUSH_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	batchSize, err := envInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}
	rateLimit, err := envInt("API_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "water-records"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "water-alerts"),
		KafkaAdvisoryTopic: envOrDefault("KAFKA_ADVISORY_TOPIC", "water-advisories"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "jal-rakshya-monitor"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		APIAddr:            envOrDefault("API_ADDR", ":8081"),
		DBPath:             envOrDefault("DB_PATH", "./data/jal-rakshya.db"),
		AdvisorySchedule:   envOrDefault("ADVISORY_SCHEDULE", "0 6 * * *"),
		APIRateLimit:       rateLimit,
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.KafkaSourceTopic == "" {
		return errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if c.KafkaSinkTopic == "" {
		return errors.New("KAFKA_SINK_TOPIC is required")
	}
	if c.KafkaAdvisoryTopic == "" {
		return errors.New("KAFKA_ADVISORY_TOPIC is required")
	}
	if c.DBPath == "" {
		return errors.New("DB_PATH is required")
	}
	if c.BatchSize < 1 || c.BatchSize > 1000 {
		return fmt.Errorf("BATCH_SIZE must be between 1 and 1000, got %d", c.BatchSize)
	}
	if c.BatchFlushInterval <= 0 {
		return errors.New("BATCH_FLUSH_INTERVAL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.APIRateLimit < 1 {
		return fmt.Errorf("API_RATE_LIMIT must be at least 1, got %d", c.APIRateLimit)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %s", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s", c.LogFormat)
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func splitBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
