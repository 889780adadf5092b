package collector

import (
	"net/url"
	"strconv"
)

const publishedAfterLayout = "2006-01-02T15:04:05Z"

// FetchTopic 搜索时间窗口内（默认最近 7 天）按播放量排序的热门视频
func (c *Client) FetchTopic(query string, limit int) []Video {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("order", "viewCount")
	params.Set("publishedAfter", c.publishedAfter())
	params.Set("maxResults", strconv.Itoa(limit))
	if c.regionCode != "" {
		params.Set("regionCode", c.regionCode)
	}
	if c.relevanceLanguage != "" {
		params.Set("relevanceLanguage", c.relevanceLanguage)
	}

	resp := c.Search(params)

	var videos []Video
	for _, item := range resp.Items {
		vid, ok := videoIDOf(item)
		if !ok {
			continue
		}
		videos = append(videos, toVideo(item, vid, item.Snippet.ChannelTitle))
	}
	return videos
}

func (c *Client) publishedAfter() string {
	return c.now().UTC().Add(-c.topicWindow).Format(publishedAfterLayout)
}
