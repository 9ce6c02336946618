package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the built calendar frontend when the configured
// directory exists. Unknown non-API paths fall back to index.html so the
// client router can handle them.
func (s *Server) mountStatic() {
	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return
	}

	index := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		s.logger.Warn("frontend not found; API only mode", "path", index)
		return
	}

	s.engine.GET("/", func(c *gin.Context) {
		c.File(index)
	})
	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		c.File(index)
	})

	if assets := filepath.Join(s.staticDir, "assets"); dirExists(assets) {
		s.engine.StaticFS("/assets", gin.Dir(assets, true))
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
