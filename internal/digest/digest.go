package digest

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/LJTian/YouTubeDigest/internal/collector"
	"github.com/LJTian/YouTubeDigest/internal/config"
	"github.com/LJTian/YouTubeDigest/internal/render"
)

// Digest 一次运行的抓取结果，只存在于内存中
type Digest struct {
	RunID       string            `json:"runId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Channels    []collector.Group `json:"channels"`
	Topics      []collector.Group `json:"topics"`
}

// Saver 持久化渲染好的页面
type Saver interface {
	Save(page *render.Page) error
}

// Runner 顺序执行所有 Fetcher：先频道分类，再热门主题。
// 单个分组失败只会让该分组为空，不会中断整次运行。
type Runner struct {
	channels []collector.Fetcher
	topics   []collector.Fetcher
	loc      *time.Location
	now      func() time.Time
	log      *slog.Logger
}

// NewRunner 按 sources 的配置顺序注册 Fetcher
func NewRunner(api collector.API, sources *config.Sources, loc *time.Location, log *slog.Logger) *Runner {
	r := &Runner{loc: loc, now: time.Now, log: log}
	if r.loc == nil {
		r.loc = time.UTC
	}
	if r.log == nil {
		r.log = slog.Default()
	}

	for _, c := range sources.Categories {
		r.channels = append(r.channels, &collector.CategoryFetcher{
			API:     api,
			Label:   c.Label,
			Handles: c.Handles,
			Limit:   sources.VideosPerChannel,
			Log:     r.log,
		})
	}
	for _, t := range sources.Topics {
		r.topics = append(r.topics, &collector.TopicFetcher{
			API:   api,
			Label: t.Label,
			Query: t.Query,
			Limit: sources.VideosPerTopic,
			Log:   r.log,
		})
	}
	return r
}

// Run 执行一轮抓取，返回的 Digest 分组顺序与配置一致
func (r *Runner) Run() *Digest {
	d := &Digest{
		RunID:       uuid.NewString(),
		GeneratedAt: r.now().In(r.loc),
	}
	log := r.log.With(slog.String("run_id", d.RunID))
	log.Info("digest started", slog.String("at", d.GeneratedAt.Format("2006-01-02 15:04 MST")))

	d.Channels = fetchAll(r.channels)
	d.Topics = fetchAll(r.topics)

	log.Info("digest fetched",
		slog.Int("categories", len(d.Channels)),
		slog.Int("topics", len(d.Topics)),
		slog.Int("videos", countVideos(d.Channels)+countVideos(d.Topics)),
	)
	return d
}

// RunAndWrite 执行一轮抓取、渲染并交给 store 写出。
// Markdown 每轮只转换一次；写出失败时仍返回已渲染的页面，由调用方决定如何处理。
func (r *Runner) RunAndWrite(store Saver) (*Digest, *render.Page, error) {
	d := r.Run()

	html, err := render.HTML(d.Channels, d.Topics, d.GeneratedAt)
	if err != nil {
		return d, nil, err
	}
	page := &render.Page{HTML: html}
	if page.Markdown, err = render.Markdown(html); err != nil {
		r.log.Warn("markdown conversion failed", slog.String("run_id", d.RunID), slog.Any("err", err))
	}

	if err := store.Save(page); err != nil {
		return d, page, fmt.Errorf("save digest: %w", err)
	}

	r.log.Info("digest written", slog.String("run_id", d.RunID), slog.Int("bytes", len(html)))
	return d, page, nil
}

func fetchAll(fetchers []collector.Fetcher) []collector.Group {
	groups := make([]collector.Group, 0, len(fetchers))
	for _, f := range fetchers {
		videos := f.Fetch()
		if videos == nil {
			videos = []collector.Video{}
		}
		groups = append(groups, collector.Group{Label: f.Name(), Videos: videos})
	}
	return groups
}

func countVideos(groups []collector.Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Videos)
	}
	return n
}
