package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Allocation AllocationConfig
	Reconciler ReconcilerConfig
	Events     EventsConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
	Timezone string
}

// IsDevelopment reports whether development conveniences (auth bypass) are on
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL builds the postgres URL form used by the migration tool
func (c DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	// RevocationTTL bounds deny-list entries for tokens without an exp claim
	RevocationTTL time.Duration
}

type AllocationConfig struct {
	MaxAttempts    int
	PatientLockTTL time.Duration
}

type ReconcilerConfig struct {
	Interval time.Duration
	Grace    time.Duration
}

type EventsConfig struct {
	Channel    string
	WebhookURL string
}

// LoadConfig reads .env from the working directory, then the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads the given env file, then the environment.
// A missing file is not an error; environment variables and defaults apply.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			RevocationTTL: v.GetDuration("JWT_REVOCATION_TTL"),
		},
		Allocation: AllocationConfig{
			MaxAttempts:    v.GetInt("ALLOCATION_MAX_ATTEMPTS"),
			PatientLockTTL: v.GetDuration("PATIENT_LOCK_TTL"),
		},
		Reconciler: ReconcilerConfig{
			Interval: v.GetDuration("RECONCILE_INTERVAL"),
			Grace:    v.GetDuration("RECONCILE_GRACE"),
		},
		Events: EventsConfig{
			Channel:    v.GetString("EVENTS_CHANNEL"),
			WebhookURL: v.GetString("EVENTS_WEBHOOK_URL"),
		},
	}

	if config.Allocation.MaxAttempts < 1 {
		config.Allocation.MaxAttempts = 1
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_REVOCATION_TTL", "24h")
	v.SetDefault("ALLOCATION_MAX_ATTEMPTS", 3)
	v.SetDefault("PATIENT_LOCK_TTL", "10s")
	v.SetDefault("RECONCILE_INTERVAL", "1m")
	v.SetDefault("RECONCILE_GRACE", "2m")
	v.SetDefault("EVENTS_CHANNEL", "bed-events")
}
