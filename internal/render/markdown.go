package render

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Page 一轮渲染的产物。Markdown 为空表示转换失败。
type Page struct {
	HTML     []byte
	Markdown string
}

// Markdown 把渲染好的 HTML 页面转换成 Markdown，方便整段贴给 LLM 做摘要
func Markdown(page []byte) (string, error) {
	conv := md.NewConverter("", true, nil)
	conv.Remove("head", "style")

	out, err := conv.ConvertString(string(page))
	if err != nil {
		return "", fmt.Errorf("convert digest to markdown: %w", err)
	}
	return out, nil
}
