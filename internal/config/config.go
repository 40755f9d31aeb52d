package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for corner-alert-service
type Config struct {
	Server   ServerConfig
	Feed     FeedConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Telegram TelegramConfig
	Monitor  MonitorConfig
	Alerting AlertingConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FeedConfig holds live-data feed configuration
type FeedConfig struct {
	Source  string // "http" polls the provider API, "kafka" consumes pushed telemetry
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// KafkaConfig holds Kafka configuration for the push-mode telemetry inbound
type KafkaConfig struct {
	Brokers []string
	Topic   string // Topic to consume from (live_match_telemetry)
	GroupID string
}

// RedisConfig holds Redis configuration for the dashboard snapshot cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // dashboard snapshot TTL, bounds feed-query volume
}

// PostgresConfig holds alert store configuration
type PostgresConfig struct {
	DSN string
}

// TelegramConfig holds notification channel configuration
type TelegramConfig struct {
	BotToken string
	ChatID   int64
	Enabled  bool
}

// MonitorConfig holds polling loop configuration
type MonitorConfig struct {
	DiscoveryInterval   time.Duration // coarse discovery of new live matches
	PollInterval        time.Duration // tight scoring/timing-gate cadence
	DiscoveryMinute     int           // minute floor before a match is tracked
	EvictionGrace       time.Duration // tolerated absence from the live feed
	ResultCheckSchedule string        // cron spec for the outcome resolver pass
}

// AlertingConfig holds the operational knobs of the decision engine
type AlertingConfig struct {
	ScoreThreshold float64 // minimum final score to fire
	MinMinute      int     // target minute; the gate admits {MinMinute-1, MinMinute}
	SweetSpotMin   int     // corner sweet-spot band, inclusive
	SweetSpotMax   int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("feed.source", "http")
	v.SetDefault("feed.base_url", "https://api.sportmonks.com/v3/football")
	v.SetDefault("feed.api_key", "")
	v.SetDefault("feed.timeout", 10*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "live_match_telemetry")
	v.SetDefault("kafka.group_id", "corner-alert")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 60*time.Second)

	v.SetDefault("postgres.dsn", "postgres://localhost:5432/corner_alerts?sslmode=disable")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.enabled", true)

	// The tight 15s cadence exists so the two-minute alert window cannot be
	// jumped over between polls; the earlier 60s cadence was not reliably
	// inside it.
	v.SetDefault("monitor.discovery_interval", 300*time.Second)
	v.SetDefault("monitor.poll_interval", 15*time.Second)
	v.SetDefault("monitor.discovery_minute", 70)
	v.SetDefault("monitor.eviction_grace", 90*time.Second)
	v.SetDefault("monitor.result_check_schedule", "@hourly")

	v.SetDefault("alerting.score_threshold", 6.0)
	v.SetDefault("alerting.min_minute", 85)
	v.SetDefault("alerting.sweet_spot_min", 8)
	v.SetDefault("alerting.sweet_spot_max", 11)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("CORNER_ALERT")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Alerting.SweetSpotMin > config.Alerting.SweetSpotMax {
		return nil, fmt.Errorf("invalid sweet spot band: min %d > max %d",
			config.Alerting.SweetSpotMin, config.Alerting.SweetSpotMax)
	}

	return &config, nil
}
