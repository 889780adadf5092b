package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LJTian/YouTubeDigest/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"YOUTUBE_API_KEY", "YOUTUBE_API_BASE", "YOUTUBE_HTTP_TIMEOUT",
		"DIGEST_SOURCES", "DIGEST_OUTPUT", "DIGEST_MARKDOWN_OUTPUT", "DIGEST_UTC_OFFSET_HOURS",
		"CRON_SPEC", "APP_PORT", "APP_BASIC_USER", "APP_BASIC_PASS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(nil)
	require.Nil(t, cfg)
	require.True(t, errors.Is(err, config.ErrMissingAPIKey))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "secret")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	require.Equal(t, "secret", cfg.APIKey)
	require.Equal(t, config.DefaultAPIBase, cfg.APIBase)
	require.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "index.html", cfg.OutputPath)
	require.Empty(t, cfg.MarkdownPath)
	require.Equal(t, "0 12 * * 6", cfg.CronSpec)
	require.Equal(t, "9000", cfg.AppPort)

	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).In(cfg.Location()).Zone()
	require.Equal(t, 8*60*60, offset)

	s := cfg.Sources
	require.Len(t, s.Categories, 5)
	require.Equal(t, "🤖 科技 AI 或機器人", s.Categories[0].Label)
	require.Equal(t, []string{"@TwoMinutePapers", "@lexfridman"}, s.Categories[0].Handles)
	require.Len(t, s.Categories[4].Handles, 3)
	require.Len(t, s.Topics, 5)
	require.Equal(t, "Tech AI Robotics 2025", s.Topics[0].Query)
	require.Equal(t, 2, s.VideosPerChannel)
	require.Equal(t, 3, s.VideosPerTopic)
	require.Equal(t, 7*24*time.Hour, s.TopicWindow)
	require.Equal(t, "US", s.RegionCode)
	require.Equal(t, "en", s.RelevanceLanguage)
}

func TestLoadEnvAndOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	sourcesPath := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(sourcesPath, []byte(`
categories:
  - label: Go
    handles: ["@golang"]
topics:
  - label: Rust
    query: rust lang
videos_per_channel: 5
videos_per_topic: 1
topic_window: 48h
region_code: TW
relevance_language: zh-Hant
`), 0o644))

	t.Setenv("YOUTUBE_API_KEY", "secret")
	t.Setenv("YOUTUBE_API_BASE", "http://127.0.0.1:1234")
	t.Setenv("YOUTUBE_HTTP_TIMEOUT", "3s")
	t.Setenv("DIGEST_OUTPUT", "env.html")
	t.Setenv("DIGEST_UTC_OFFSET_HOURS", "-5")
	t.Setenv("CRON_SPEC", "@daily")

	output := filepath.Join(dir, "flag.html")
	markdown := filepath.Join(dir, "flag.md")
	cfg, err := config.Load(&config.Overrides{
		SourcesPath:  &sourcesPath,
		OutputPath:   &output,
		MarkdownPath: &markdown,
	})
	require.NoError(t, err)

	require.Equal(t, "http://127.0.0.1:1234", cfg.APIBase)
	require.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	require.Equal(t, output, cfg.OutputPath)
	require.Equal(t, markdown, cfg.MarkdownPath)
	require.Equal(t, "@daily", cfg.CronSpec)
	require.Equal(t, -5, cfg.UTCOffsetHours)

	require.Len(t, cfg.Sources.Categories, 1)
	require.Equal(t, "Go", cfg.Sources.Categories[0].Label)
	require.Equal(t, "rust lang", cfg.Sources.Topics[0].Query)
	require.Equal(t, 5, cfg.Sources.VideosPerChannel)
	require.Equal(t, 48*time.Hour, cfg.Sources.TopicWindow)
	require.Equal(t, "TW", cfg.Sources.RegionCode)
}

func TestLoadRejectsMissingSourcesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "secret")
	t.Setenv("DIGEST_SOURCES", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := config.Load(nil)
	require.Error(t, err)
}

func TestParseSourcesValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "zero channel limit", yaml: "videos_per_channel: 0\nvideos_per_topic: 3\ntopic_window: 1h\n"},
		{name: "topic limit too large", yaml: "videos_per_channel: 2\nvideos_per_topic: 51\ntopic_window: 1h\n"},
		{name: "zero window", yaml: "topic_window: 0s\n"},
		{name: "negative topic limit", yaml: "videos_per_topic: -1\n"},
		{name: "empty category label", yaml: "videos_per_channel: 2\nvideos_per_topic: 3\ntopic_window: 1h\ncategories:\n  - label: ''\n"},
		{name: "topic without query", yaml: "videos_per_channel: 2\nvideos_per_topic: 3\ntopic_window: 1h\ntopics:\n  - label: x\n"},
		{name: "not yaml", yaml: "videos_per_channel: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseSources([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestParseSourcesFillsDefaults(t *testing.T) {
	s, err := config.ParseSources([]byte(`
categories:
  - label: Go
    handles: ["@golang"]
topics:
  - label: Rust
    query: rust lang
`))
	require.NoError(t, err)

	require.Len(t, s.Categories, 1)
	require.Equal(t, []string{"@golang"}, s.Categories[0].Handles)
	require.Len(t, s.Topics, 1)
	require.Equal(t, config.DefaultVideosPerChannel, s.VideosPerChannel)
	require.Equal(t, config.DefaultVideosPerTopic, s.VideosPerTopic)
	require.Equal(t, config.DefaultTopicWindow, s.TopicWindow)
	require.Equal(t, "US", s.RegionCode)
	require.Equal(t, "en", s.RelevanceLanguage)
}

func TestParseSourcesKeepsExplicitValues(t *testing.T) {
	s, err := config.ParseSources([]byte(`
videos_per_channel: 5
topic_window: 24h
region_code: ""
relevance_language: zh-Hant
`))
	require.NoError(t, err)

	require.Equal(t, 5, s.VideosPerChannel)
	require.Equal(t, config.DefaultVideosPerTopic, s.VideosPerTopic)
	require.Equal(t, 24*time.Hour, s.TopicWindow)
	require.Empty(t, s.RegionCode)
	require.Equal(t, "zh-Hant", s.RelevanceLanguage)
}
