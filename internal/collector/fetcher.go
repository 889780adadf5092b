package collector

import "log/slog"

// API 是 Fetcher 依赖的 YouTube 查询能力，*Client 实现了它
type API interface {
	ResolveChannel(handle string) (Channel, bool)
	FetchLatest(channelID, displayName string, limit int) []Video
	FetchTopic(query string, limit int) []Video
}

// Fetcher 抽象页面上的一个分组：一个频道分类或一个热门主题
type Fetcher interface {
	Name() string
	Fetch() []Video
}

// CategoryFetcher 依次解析分类下的每个 handle 并汇总其最新视频。
// 单个 handle 解析失败只跳过它自己。
type CategoryFetcher struct {
	API     API
	Label   string
	Handles []string
	Limit   int
	Log     *slog.Logger
}

func (f *CategoryFetcher) Name() string {
	return f.Label
}

func (f *CategoryFetcher) Fetch() []Video {
	log := f.logger()
	var videos []Video
	for _, handle := range f.Handles {
		log.Info("resolve channel", slog.String("handle", handle))
		ch, ok := f.API.ResolveChannel(handle)
		if !ok {
			log.Warn("channel not found, skipped", slog.String("handle", handle))
			continue
		}
		vids := f.API.FetchLatest(ch.ID, ch.Title, f.Limit)
		log.Info("channel done", slog.String("channel", ch.Title), slog.Int("videos", len(vids)))
		videos = append(videos, vids...)
	}
	return videos
}

func (f *CategoryFetcher) logger() *slog.Logger {
	if f.Log == nil {
		return slog.Default()
	}
	return f.Log.With(slog.String("category", f.Label))
}

// TopicFetcher 抓取一个主题的本周热门
type TopicFetcher struct {
	API   API
	Label string
	Query string
	Limit int
	Log   *slog.Logger
}

func (f *TopicFetcher) Name() string {
	return f.Label
}

func (f *TopicFetcher) Fetch() []Video {
	log := f.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("search topic", slog.String("query", f.Query))
	vids := f.API.FetchTopic(f.Query, f.Limit)
	log.Info("topic done", slog.String("topic", f.Label), slog.Int("videos", len(vids)))
	return vids
}
