package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// youtube search 接口 maxResults 的上限
const maxResultsLimit = 50

// 配置文件未给出时使用的默认值
const (
	DefaultVideosPerChannel  = 2
	DefaultVideosPerTopic    = 3
	DefaultTopicWindow       = 7 * 24 * time.Hour
	DefaultRegionCode        = "US"
	DefaultRelevanceLanguage = "en"
)

//go:embed sources.yaml
var defaultSources []byte

// Category 一个频道分类及其下的 handle，顺序保持配置顺序
type Category struct {
	Label   string   `yaml:"label"`
	Handles []string `yaml:"handles"`
}

// Topic 主题热门的展示名与搜索关键字
type Topic struct {
	Label string `yaml:"label"`
	Query string `yaml:"query"`
}

// Sources 描述一次摘要要抓取的全部内容
type Sources struct {
	Categories        []Category    `yaml:"categories"`
	Topics            []Topic       `yaml:"topics"`
	VideosPerChannel  int           `yaml:"videos_per_channel"`
	VideosPerTopic    int           `yaml:"videos_per_topic"`
	TopicWindow       time.Duration `yaml:"topic_window"`
	RegionCode        string        `yaml:"region_code"`
	RelevanceLanguage string        `yaml:"relevance_language"`
}

// LoadSources 读取 path 指向的 YAML；path 为空时使用内嵌的默认配置
func LoadSources(path string) (*Sources, error) {
	data := defaultSources
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sources file %s: %w", path, err)
		}
		data = content
	}
	return ParseSources(data)
}

// ParseSources 解析并校验 YAML 内容。
// 文件里没写的数量、时间窗口与地区/语言取默认值；显式写出的值（包括空字符串）原样保留。
func ParseSources(data []byte) (*Sources, error) {
	s := Sources{
		VideosPerChannel:  DefaultVideosPerChannel,
		VideosPerTopic:    DefaultVideosPerTopic,
		TopicWindow:       DefaultTopicWindow,
		RegionCode:        DefaultRegionCode,
		RelevanceLanguage: DefaultRelevanceLanguage,
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse sources YAML: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Sources) validate() error {
	if s.VideosPerChannel <= 0 || s.VideosPerChannel > maxResultsLimit {
		return fmt.Errorf("videos_per_channel must be between 1 and %d", maxResultsLimit)
	}
	if s.VideosPerTopic <= 0 || s.VideosPerTopic > maxResultsLimit {
		return fmt.Errorf("videos_per_topic must be between 1 and %d", maxResultsLimit)
	}
	if s.TopicWindow <= 0 {
		return fmt.Errorf("topic_window must be positive")
	}
	for i, c := range s.Categories {
		if strings.TrimSpace(c.Label) == "" {
			return fmt.Errorf("categories[%d]: label is required", i)
		}
	}
	for i, t := range s.Topics {
		if strings.TrimSpace(t.Label) == "" || strings.TrimSpace(t.Query) == "" {
			return fmt.Errorf("topics[%d]: label and query are required", i)
		}
	}
	return nil
}
