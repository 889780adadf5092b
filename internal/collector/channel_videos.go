package collector

import (
	"net/url"
	"strconv"
)

// FetchLatest 按发布时间倒序取频道最新的 limit 部视频。
// Channel 字段统一使用调用方传入的 displayName，而不是 API 返回的频道名。
func (c *Client) FetchLatest(channelID, displayName string, limit int) []Video {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("order", "date")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(limit))

	resp := c.Search(params)

	var videos []Video
	for _, item := range resp.Items {
		vid, ok := videoIDOf(item)
		if !ok {
			continue
		}
		videos = append(videos, toVideo(item, vid, displayName))
	}
	return videos
}
