package collector

import (
	"log/slog"
	"net/url"
	"strings"
)

// ResolveChannel 通过 type=channel 的搜索把 @handle 解析为 channel id。
// 找不到时返回 false，Title 为去掉 @ 后的 handle，调用方应跳过该频道。
func (c *Client) ResolveChannel(handle string) (Channel, bool) {
	clean := strings.TrimLeft(strings.TrimSpace(handle), "@")
	if clean == "" {
		return Channel{}, false
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", clean)
	params.Set("type", "channel")
	params.Set("maxResults", "1")

	resp := c.Search(params)
	if len(resp.Items) == 0 {
		return Channel{Title: clean}, false
	}

	item := resp.Items[0]
	id, ok := channelIDOf(item)
	if !ok {
		c.log.Debug("channel search result without id", slog.String("handle", handle))
		return Channel{Title: clean}, false
	}

	title := item.Snippet.Title
	if title == "" {
		title = clean
	}
	return Channel{ID: id, Title: title}, true
}
