package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/LJTian/YouTubeDigest/internal/collector"
)

const (
	// EmptyChannelText 频道分类本周没有任何视频时显示
	EmptyChannelText = "本週無新影片"
	// EmptyTopicText 主题搜索没有结果时显示
	EmptyTopicText = "無結果"
)

//go:embed templates/digest.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/digest.html.tmpl"))

type pageData struct {
	Date     string
	Week     string
	Channels []section
	Topics   []section
}

type section struct {
	Label  string
	Videos []collector.Video
	Empty  string
}

// HTML 把频道分组与主题分组渲染成完整的、自包含的 HTML 页面。
// 纯函数：相同输入得到逐字节相同的输出；所有文本字段由 html/template 转义。
func HTML(channels, topics []collector.Group, generatedAt time.Time) ([]byte, error) {
	data := pageData{
		Date:     generatedAt.Format("2006-01-02"),
		Week:     WeekLabel(generatedAt),
		Channels: sections(channels, EmptyChannelText),
		Topics:   sections(topics, EmptyTopicText),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render digest: %w", err)
	}
	return buf.Bytes(), nil
}

// WeekLabel 返回 "第 NN 週"，NN 为 ISO 周数
func WeekLabel(t time.Time) string {
	_, week := t.ISOWeek()
	return fmt.Sprintf("第 %02d 週", week)
}

func sections(groups []collector.Group, empty string) []section {
	out := make([]section, 0, len(groups))
	for _, g := range groups {
		out = append(out, section{Label: g.Label, Videos: g.Videos, Empty: empty})
	}
	return out
}
