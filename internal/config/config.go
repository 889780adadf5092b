package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrMissingAPIKey 表示未设置 YOUTUBE_API_KEY
var ErrMissingAPIKey = errors.New("YOUTUBE_API_KEY environment variable is not set")

const (
	DefaultAPIBase  = "https://www.googleapis.com/youtube/v3"
	DefaultOutput   = "index.html"
	DefaultCronSpec = "0 12 * * 6" // 每周六 12:00
)

type Config struct {
	APIKey      string
	APIBase     string
	HTTPTimeout time.Duration

	SourcesPath  string
	OutputPath   string
	MarkdownPath string

	UTCOffsetHours int

	CronSpec      string
	AppPort       string
	BasicAuthUser string
	BasicAuthPass string

	Sources *Sources
}

// Overrides 由命令行参数填充，非 nil 字段覆盖环境变量
type Overrides struct {
	SourcesPath  *string
	OutputPath   *string
	MarkdownPath *string
}

// Load 从环境变量构造配置。缺少 API key 时返回 ErrMissingAPIKey，且不做其它任何事。
func Load(overrides *Overrides) (*Config, error) {
	apiKey := getEnv("YOUTUBE_API_KEY", "")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &Config{
		APIKey:         apiKey,
		APIBase:        getEnv("YOUTUBE_API_BASE", DefaultAPIBase),
		HTTPTimeout:    getDuration("YOUTUBE_HTTP_TIMEOUT", 15*time.Second),
		SourcesPath:    getEnv("DIGEST_SOURCES", ""),
		OutputPath:     getEnv("DIGEST_OUTPUT", DefaultOutput),
		MarkdownPath:   getEnv("DIGEST_MARKDOWN_OUTPUT", ""),
		UTCOffsetHours: getInt("DIGEST_UTC_OFFSET_HOURS", 8),
		CronSpec:       getEnv("CRON_SPEC", DefaultCronSpec),
		AppPort:        getEnv("APP_PORT", "9000"),
		BasicAuthUser:  getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:  getEnv("APP_BASIC_PASS", ""),
	}

	if overrides != nil {
		if overrides.SourcesPath != nil {
			cfg.SourcesPath = *overrides.SourcesPath
		}
		if overrides.OutputPath != nil {
			cfg.OutputPath = *overrides.OutputPath
		}
		if overrides.MarkdownPath != nil {
			cfg.MarkdownPath = *overrides.MarkdownPath
		}
	}

	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("YOUTUBE_HTTP_TIMEOUT must be positive")
	}
	if cfg.UTCOffsetHours < -12 || cfg.UTCOffsetHours > 14 {
		return nil, fmt.Errorf("DIGEST_UTC_OFFSET_HOURS out of range: %d", cfg.UTCOffsetHours)
	}

	sources, err := LoadSources(cfg.SourcesPath)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	cfg.Sources = sources

	return cfg, nil
}

// Location 返回生成时间使用的固定时区（默认东八区）
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.UTCOffsetHours), c.UTCOffsetHours*60*60)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
