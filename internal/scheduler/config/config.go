package config

import (
	"time"

	"golang-stock-sentiment/pkg/config"
)

// Scheduler holds scheduler-specific configuration.
type Scheduler struct {
	PollingInterval     time.Duration `mapstructure:"polling_interval"`
	DefaultCron         string        `mapstructure:"default_cron"`
	DefaultLookbackDays int           `mapstructure:"default_lookback_days"`
	DefaultReadDays     int           `mapstructure:"default_read_days"`
}

// Config holds the full configuration for the scheduler service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
}

// Defaults are applied for every key absent from the config file and the environment.
var Defaults = map[string]interface{}{
	"logger.level":                    "info",
	"logger.encoding":                 "json",
	"api.port":                        8080,
	"redis.stream_max_len":            10000,
	"scheduler.polling_interval":      30 * time.Second,
	"scheduler.default_cron":          "30 21 * * 1-5",
	"scheduler.default_lookback_days": 7,
	"scheduler.default_read_days":     30,
}

// Load loads the scheduler configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
