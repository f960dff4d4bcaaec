package config

import (
	"time"

	"golang-stock-sentiment/pkg/config"
)

// Executor holds executor-specific configuration.
type Executor struct {
	MaxConcurrentTasks              int           `mapstructure:"max_concurrent_tasks"`
	RedisStreamTaskExecutionTimeout time.Duration `mapstructure:"redis_stream_task_execution_timeout"`
	RedisStreamBlockTimeout         time.Duration `mapstructure:"redis_stream_block_timeout"`
	RedisStreamRetryInterval        time.Duration `mapstructure:"redis_stream_retry_interval"`
	RedisStreamMaxIdleDuration      time.Duration `mapstructure:"redis_stream_max_idle_duration"`
	RedisStreamMaxRetry             int           `mapstructure:"redis_stream_max_retry"`
}

// Sentiment holds the tunables of the scoring pipeline.
type Sentiment struct {
	AdmissionCap          int           `mapstructure:"admission_cap"`
	MaxConcurrent         int           `mapstructure:"max_concurrent"`
	ClassifierTimeout     time.Duration `mapstructure:"classifier_timeout"`
	PriceSearchWindowDays int           `mapstructure:"price_search_window_days"`
	FlatChangeEpsilon     float64       `mapstructure:"flat_change_epsilon"`
	NextDayHorizon        int           `mapstructure:"next_day_horizon"`
	TwoWeekHorizon        int           `mapstructure:"two_week_horizon"`
	OneMonthHorizon       int           `mapstructure:"one_month_horizon"`
	LexiconPath           string        `mapstructure:"lexicon_path"`
	DefaultLookbackDays   int           `mapstructure:"default_lookback_days"`
}

// Classifier selects and configures the remote sentiment classifier.
type Classifier struct {
	Provider            string `mapstructure:"provider"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Tiingo holds the configuration for the Tiingo price API.
type Tiingo struct {
	BaseURL             string `mapstructure:"base_url"`
	Token               string `mapstructure:"token"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	InitialHistoryDays  int    `mapstructure:"initial_history_days"`
}

// Polygon holds the configuration for the Polygon news API.
type Polygon struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	PageLimit           int    `mapstructure:"page_limit"`
	MaxPages            int    `mapstructure:"max_pages"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// RSS holds the configuration for the RSS news provider.
// FeedURLTemplate must contain one %s which receives the ticker.
type RSS struct {
	FeedURLTemplate string `mapstructure:"feed_url_template"`
}

// News selects the news provider and how article bodies are resolved.
type News struct {
	Provider      string        `mapstructure:"provider"`
	MinBodyLength int           `mapstructure:"min_body_length"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	ContentCache  time.Duration `mapstructure:"content_cache_ttl"`
	MaxFetchBytes int64         `mapstructure:"max_fetch_bytes"`
	UserAgent     string        `mapstructure:"user_agent"`
	RSS           RSS           `mapstructure:"rss"`
	Polygon       Polygon       `mapstructure:"polygon"`
	FetchFullBody bool          `mapstructure:"fetch_full_body"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the sentiment service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	Executor   Executor        `mapstructure:"executor"`
	Sentiment  Sentiment       `mapstructure:"sentiment"`
	Classifier Classifier      `mapstructure:"classifier"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Tiingo     Tiingo          `mapstructure:"tiingo"`
	News       News            `mapstructure:"news"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Defaults are applied for every key absent from the config file and the environment.
var Defaults = map[string]interface{}{
	"logger.level":                                 "info",
	"logger.encoding":                              "json",
	"executor.max_concurrent_tasks":                4,
	"executor.redis_stream_task_execution_timeout": 10 * time.Minute,
	"executor.redis_stream_block_timeout":          5 * time.Second,
	"executor.redis_stream_retry_interval":         time.Minute,
	"executor.redis_stream_max_idle_duration":      15 * time.Minute,
	"executor.redis_stream_max_retry":              3,
	"sentiment.admission_cap":                      8,
	"sentiment.max_concurrent":                     8,
	"sentiment.classifier_timeout":                 30 * time.Second,
	"sentiment.price_search_window_days":           7,
	"sentiment.flat_change_epsilon":                0.00001,
	"sentiment.next_day_horizon":                   1,
	"sentiment.two_week_horizon":                   14,
	"sentiment.one_month_horizon":                  28,
	"sentiment.default_lookback_days":              7,
	"classifier.provider":                          "finbert",
	"classifier.max_request_per_minute":            120,
	"gemini.model":                                 "gemini-2.0-flash",
	"gemini.max_request_per_minute":                15,
	"tiingo.base_url":                              "https://api.tiingo.com",
	"tiingo.max_request_per_minute":                50,
	"tiingo.initial_history_days":                  120,
	"news.provider":                                "rss",
	"news.min_body_length":                         200,
	"news.fetch_timeout":                           15 * time.Second,
	"news.content_cache_ttl":                       6 * time.Hour,
	"news.max_fetch_bytes":                         2 << 20,
	"news.user_agent":                              "Mozilla/5.0 (compatible; stock-sentiment/1.0)",
	"news.fetch_full_body":                         true,
	"news.rss.feed_url_template":                   "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
	"news.polygon.base_url":                        "https://api.polygon.io",
	"news.polygon.page_limit":                      50,
	"news.polygon.max_pages":                       5,
	"news.polygon.max_request_per_minute":          5,
}

// Horizons returns the next-day, two-week and one-month horizons in calendar days.
func (s Sentiment) Horizons() [3]int {
	return [3]int{s.NextDayHorizon, s.TwoWeekHorizon, s.OneMonthHorizon}
}

// Load loads the sentiment service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
