package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// SchedulerConfig controls the booking engine.
type SchedulerConfig struct {
	HorizonDays  int
	TxTimeout    time.Duration
	SlotHoldTTL  time.Duration
	TimezoneName string
	Location     *time.Location
}

const (
	defaultHorizonDays = 7
	defaultTxTimeout   = 5 * time.Second
	defaultSlotHoldTTL = 10 * time.Second
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_LOG_LEVEL", "info")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("SCHEDULER_HORIZON_DAYS", defaultHorizonDays)
	v.SetDefault("SCHEDULER_TIMEZONE", "Local")

	if err := v.ReadInConfig(); err != nil {
		// .env is optional, the environment alone is enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	txTimeout, err := time.ParseDuration(v.GetString("SCHEDULER_TX_TIMEOUT"))
	if err != nil || txTimeout <= 0 {
		txTimeout = defaultTxTimeout
	}

	holdTTL, err := time.ParseDuration(v.GetString("SCHEDULER_SLOT_HOLD_TTL"))
	if err != nil || holdTTL <= 0 {
		holdTTL = defaultSlotHoldTTL
	}

	horizon := v.GetInt("SCHEDULER_HORIZON_DAYS")
	if horizon <= 0 {
		horizon = defaultHorizonDays
	}

	tzName := v.GetString("SCHEDULER_TIMEZONE")
	location, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("APP_LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Scheduler: SchedulerConfig{
			HorizonDays:  horizon,
			TxTimeout:    txTimeout,
			SlotHoldTTL:  holdTTL,
			TimezoneName: tzName,
			Location:     location,
		},
	}

	return config, nil
}
