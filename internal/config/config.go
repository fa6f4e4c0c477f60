package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Log         LogConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Telegram    TelegramConfig
	Matching    MatchingConfig
	Maintenance MaintenanceConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	WSPort      string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type TelegramConfig struct {
	BotToken       string
	DevIdentity    bool
	InitDataMaxAge time.Duration
}

type MatchingConfig struct {
	PollInterval    time.Duration
	SwipeRatePerSec float64
	SwipeBurst      int
}

type MaintenanceConfig struct {
	CleanupSchedule string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. When CONFIG_FILE points to a
// YAML file its keys (same names as the env vars) act as a base layer.
func Load() (Config, error) {
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}
	return fromViper(v)
}

// LoadStore reads only what the ops CLI needs: database, logging and
// maintenance settings. Nothing is required.
func LoadStore() (Config, error) {
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Log:         logFromViper(v),
		Database:    databaseFromViper(v),
		Maintenance: MaintenanceConfig{CleanupSchedule: strings.TrimSpace(v.GetString("CLEANUP_SCHEDULE"))},
	}, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := strings.TrimSpace(v.GetString("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("WS_PORT", "8081")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "jobswipe")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("DB_POOL_MIN_CONNS", 1)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME", time.Hour)
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute)
	v.SetDefault("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 5*time.Minute)

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", 24*time.Hour)
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour)

	v.SetDefault("TELEGRAM_DEV_IDENTITY", false)
	v.SetDefault("TELEGRAM_INIT_DATA_MAX_AGE", 24*time.Hour)

	v.SetDefault("MATCH_POLL_INTERVAL", 30*time.Second)
	v.SetDefault("SWIPE_RATE_PER_SEC", 5.0)
	v.SetDefault("SWIPE_BURST", 10)

	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		WSPort:      opt("WS_PORT"),
	}

	cfg.Log = logFromViper(v)
	cfg.Database = databaseFromViper(v)

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		CacheTTL: v.GetDuration("CACHE_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	cfg.Telegram = TelegramConfig{
		DevIdentity:    v.GetBool("TELEGRAM_DEV_IDENTITY"),
		InitDataMaxAge: v.GetDuration("TELEGRAM_INIT_DATA_MAX_AGE"),
	}
	if cfg.Telegram.DevIdentity {
		cfg.Telegram.BotToken = opt("TELEGRAM_BOT_TOKEN")
	} else {
		cfg.Telegram.BotToken = req("TELEGRAM_BOT_TOKEN")
	}

	cfg.Matching = MatchingConfig{
		PollInterval:    v.GetDuration("MATCH_POLL_INTERVAL"),
		SwipeRatePerSec: v.GetFloat64("SWIPE_RATE_PER_SEC"),
		SwipeBurst:      v.GetInt("SWIPE_BURST"),
	}

	cfg.Maintenance = MaintenanceConfig{
		CleanupSchedule: opt("CLEANUP_SCHEDULE"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func logFromViper(v *viper.Viper) LogConfig {
	return LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}
}

func databaseFromViper(v *viper.Viper) DatabaseConfig {
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	return DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}
}
