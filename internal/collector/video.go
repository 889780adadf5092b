package collector

// Video 一条待渲染的视频记录，由单个 API 结果项生成，渲染后即丢弃
type Video struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Channel   string `json:"channel"`
	Date      string `json:"date"`
	Thumbnail string `json:"thumbnail"`
}

// Channel handle 解析后的结果
type Channel struct {
	ID    string
	Title string
}

const watchURLPrefix = "https://youtu.be/"

// toVideo 把搜索结果项映射为 Video；channel 由调用方决定来源
func toVideo(item SearchItem, videoID, channel string) Video {
	return Video{
		Title:     item.Snippet.Title,
		URL:       watchURLPrefix + videoID,
		Channel:   channel,
		Date:      isoDate(item.Snippet.PublishedAt),
		Thumbnail: item.Snippet.Thumbnails["medium"].URL,
	}
}

// isoDate 取 publishedAt 的前 10 个字符（YYYY-MM-DD）
func isoDate(publishedAt string) string {
	if len(publishedAt) > 10 {
		return publishedAt[:10]
	}
	return publishedAt
}

// Group 一个分组（频道分类或主题）的抓取结果，Videos 保持抓取顺序
type Group struct {
	Label  string  `json:"label"`
	Videos []Video `json:"videos"`
}
