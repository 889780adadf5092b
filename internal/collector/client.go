package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	searchEndpoint    = "search"
	userAgent         = "YouTubeDigestBot/1.0"
	errorBodyMaxRunes = 200

	defaultTimeout     = 15 * time.Second
	defaultTopicWindow = 7 * 24 * time.Hour
)

// HTTPError 表示 API 返回了非 2xx 状态码
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d on %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// Options 构造 Client 所需的参数，零值字段使用默认值
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// 主题搜索的时间窗口与地区/语言偏好
	TopicWindow       time.Duration
	RegionCode        string
	RelevanceLanguage string

	Now func() time.Time
}

// Client 调用 YouTube Data API v3。所有失败都记录日志并返回空结果，从不重试。
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration

	topicWindow       time.Duration
	regionCode        string
	relevanceLanguage string

	now func() time.Time
	log *slog.Logger
}

func NewClient(opts Options, log *slog.Logger) *Client {
	c := &Client{
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		apiKey:            opts.APIKey,
		timeout:           opts.Timeout,
		topicWindow:       opts.TopicWindow,
		regionCode:        opts.RegionCode,
		relevanceLanguage: opts.RelevanceLanguage,
		now:               opts.Now,
		log:               log,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.topicWindow <= 0 {
		c.topicWindow = defaultTopicWindow
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Search 调用 search 接口。任何失败（传输错误、非 2xx、JSON 解析失败）都返回空响应。
func (c *Client) Search(params url.Values) SearchResponse {
	body, err := c.get(searchEndpoint, params)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			c.log.Warn("youtube api http error",
				slog.String("endpoint", httpErr.Endpoint),
				slog.Int("status", httpErr.StatusCode),
				slog.String("body", httpErr.Body),
			)
		} else {
			c.log.Warn("youtube api request failed", slog.String("endpoint", searchEndpoint), slog.Any("err", err))
		}
		return SearchResponse{}
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.Warn("youtube api decode failed", slog.String("endpoint", searchEndpoint), slog.Any("err", err))
		return SearchResponse{}
	}
	return resp
}

func (c *Client) get(endpoint string, params url.Values) ([]byte, error) {
	q := make(url.Values, len(params)+1)
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	q.Set("key", c.apiKey)
	reqURL := c.baseURL + "/" + endpoint + "?" + q.Encode()

	// 每次请求一个新的 collector，不在请求之间共享任何状态
	col := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	col.ParseHTTPErrorResponse = true
	col.SetRequestTimeout(c.timeout)

	var (
		status int
		body   []byte
	)
	col.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	if err := col.Visit(reqURL); err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, redactURL(err))
	}

	if status < 200 || status > 299 {
		return nil, &HTTPError{
			Endpoint:   endpoint,
			StatusCode: status,
			Body:       truncateRunes(string(body), errorBodyMaxRunes),
		}
	}
	return body, nil
}

// redactURL 去掉 *url.Error 中携带的请求地址，避免 key 出现在日志里
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
