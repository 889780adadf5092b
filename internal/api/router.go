package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/YouTubeDigest/internal/digest"
	"github.com/LJTian/YouTubeDigest/internal/render"
)

// Server 对外提供最近一次生成的摘要，只保存在内存中
type Server struct {
	mu       sync.RWMutex
	digest   *digest.Digest
	page     []byte
	markdown string

	basicUser string
	basicPass string
	log       *slog.Logger
}

func NewServer(basicUser, basicPass string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{basicUser: basicUser, basicPass: basicPass, log: log}
}

// Update 替换当前展示的摘要；本轮没有 Markdown 时继续提供上一轮的
func (s *Server) Update(d *digest.Digest, page *render.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digest = d
	s.page = page.HTML
	if page.Markdown != "" {
		s.markdown = page.Markdown
	} else {
		s.log.Warn("digest has no markdown copy, keeping previous one", slog.String("run_id", d.RunID))
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	// 配置了账号密码时，除 /health 外的路由都需要 Basic Auth
	pages := r.Group("/")
	if s.basicUser != "" && s.basicPass != "" {
		pages.Use(gin.BasicAuth(gin.Accounts{s.basicUser: s.basicPass}))
	}
	pages.GET("/", s.index)
	pages.GET("/index.html", s.index)
	pages.GET("/index.md", s.markdownPage)

	v1 := pages.Group("/api/v1")
	{
		v1.GET("/digest", s.latestDigest)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) index(c *gin.Context) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()

	if page == nil {
		c.String(http.StatusServiceUnavailable, "digest is not ready yet")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) markdownPage(c *gin.Context) {
	s.mu.RLock()
	text := s.markdown
	s.mu.RUnlock()

	if text == "" {
		c.String(http.StatusServiceUnavailable, "markdown digest is not available")
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(text))
}

func (s *Server) latestDigest(c *gin.Context) {
	s.mu.RLock()
	d := s.digest
	s.mu.RUnlock()

	if d == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "not_ready",
			"message": "digest is not ready yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    d,
	})
}
