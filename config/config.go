package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Game     GameConfig     `mapstructure:"game"`
	Provider ProviderConfig `mapstructure:"provider"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DatabaseConfig configures the optional PostgreSQL audit trail.
// When Enabled is false, admin actions are audited to the logger only.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// AdminConfig holds the built-in admin panel credentials.
type AdminConfig struct {
	Mobile string `mapstructure:"mobile"`
	Pin    string `mapstructure:"pin"`
}

// GameConfig holds the quiz and wallet economy tunables.
// Monetary values are decimal strings in Taka.
type GameConfig struct {
	QuestionsPerSession int           `mapstructure:"questions_per_session"`
	QuestionTime        time.Duration `mapstructure:"question_time"`
	RevealDelay         time.Duration `mapstructure:"reveal_delay"`
	FinishDelay         time.Duration `mapstructure:"finish_delay"`
	TimeBonus           time.Duration `mapstructure:"time_bonus"`
	FreeDailyGames      int           `mapstructure:"free_daily_games"`
	PremiumDailyGames   int           `mapstructure:"premium_daily_games"`
	FreeEarnRate        string        `mapstructure:"free_earn_rate"`
	PremiumEarnRate     string        `mapstructure:"premium_earn_rate"`
	PlanPrice           string        `mapstructure:"plan_price"`
	SubscriptionDays    int           `mapstructure:"subscription_days"`
	DailyBonus          string        `mapstructure:"daily_bonus"`
	MinWithdrawal       string        `mapstructure:"min_withdrawal"`
}

// ProviderConfig configures the Gemini question provider.
type ProviderConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: DDQ_ (DhanDhan Quiz).
// Nested keys use underscore: DDQ_REDIS_HOST, DDQ_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "dhandhan_quiz")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "dhandhan-quiz")
	v.SetDefault("admin.mobile", "admin")
	v.SetDefault("admin.pin", "admin123")
	v.SetDefault("game.questions_per_session", 10)
	v.SetDefault("game.question_time", "12s")
	v.SetDefault("game.reveal_delay", "2s")
	v.SetDefault("game.finish_delay", "500ms")
	v.SetDefault("game.time_bonus", "10s")
	v.SetDefault("game.free_daily_games", 3)
	v.SetDefault("game.premium_daily_games", 30)
	v.SetDefault("game.free_earn_rate", "0.33")
	v.SetDefault("game.premium_earn_rate", "0.93")
	v.SetDefault("game.plan_price", "99")
	v.SetDefault("game.subscription_days", 30)
	v.SetDefault("game.daily_bonus", "0.50")
	v.SetDefault("game.min_withdrawal", "200")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "gemini-3-pro-preview")
	v.SetDefault("provider.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: DDQ_REDIS_HOST -> redis.host
	v.SetEnvPrefix("DDQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
