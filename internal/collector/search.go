package collector

import (
	"bytes"
	"encoding/json"
)

// SearchResponse 对应 search.list 的响应，只保留用到的字段
type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

type SearchItem struct {
	ID      itemID  `json:"id"`
	Snippet snippet `json:"snippet"`
}

type snippet struct {
	Title        string               `json:"title"`
	ChannelID    string               `json:"channelId"`
	ChannelTitle string               `json:"channelTitle"`
	PublishedAt  string               `json:"publishedAt"`
	Thumbnails   map[string]thumbnail `json:"thumbnails"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// itemID 兼容两种形态：search.list 返回对象 {"kind","videoId","channelId"}，
// channels.list 之类的接口直接返回字符串 id。无法识别的形态按空值处理。
type itemID struct {
	Kind      string
	VideoID   string
	ChannelID string
	Value     string
}

func (id *itemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '"':
		return json.Unmarshal(b, &id.Value)
	case '{':
		var obj struct {
			Kind      string `json:"kind"`
			VideoID   string `json:"videoId"`
			ChannelID string `json:"channelId"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		id.Kind = obj.Kind
		id.VideoID = obj.VideoID
		id.ChannelID = obj.ChannelID
	}
	return nil
}

// channelIDOf 依次尝试 snippet.channelId、id.channelId、字符串形式的 id
func channelIDOf(item SearchItem) (string, bool) {
	for _, candidate := range []string{item.Snippet.ChannelID, item.ID.ChannelID, item.ID.Value} {
		if candidate != "" {
			return candidate, true
		}
	}
	return "", false
}

func videoIDOf(item SearchItem) (string, bool) {
	if item.ID.VideoID == "" {
		return "", false
	}
	return item.ID.VideoID, true
}
