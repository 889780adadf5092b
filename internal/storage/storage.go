package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LJTian/YouTubeDigest/internal/render"
)

// ErrNoMarkdown 配置了 Markdown 输出但本轮没有 Markdown 内容
var ErrNoMarkdown = errors.New("markdown copy is unavailable")

// FileStore 把渲染结果写到本地文件，每次运行整体覆盖。
// MarkdownPath 为空时只写 HTML。
type FileStore struct {
	HTMLPath     string
	MarkdownPath string
}

func NewFileStore(htmlPath, markdownPath string) *FileStore {
	return &FileStore{HTMLPath: htmlPath, MarkdownPath: markdownPath}
}

// Save 写入 HTML，并在配置了 MarkdownPath 时写入 Markdown。
// Markdown 缺失时 HTML 照常写出，旧的 Markdown 文件保持不动。
func (s *FileStore) Save(page *render.Page) error {
	if err := writeFile(s.HTMLPath, page.HTML); err != nil {
		return err
	}
	if s.MarkdownPath == "" {
		return nil
	}
	if page.Markdown == "" {
		return fmt.Errorf("write %s: %w", s.MarkdownPath, ErrNoMarkdown)
	}
	return writeFile(s.MarkdownPath, []byte(page.Markdown))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
