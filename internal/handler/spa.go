package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// ServeSPA serve os arquivos do frontend e devolve index.html para rotas
// desconhecidas. Rotas /api/ sem handler respondem 404 em JSON.
func ServeSPA(spaDirectory string) gin.HandlerFunc {
	directory := static.LocalFile(spaDirectory, false)
	fileserver := http.FileServer(directory)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || path == "/api" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		if path != "/" && directory.Exists("/", path) {
			if strings.HasPrefix(path, "/assets/") {
				c.Header("Cache-Control", "public, max-age=31536000, immutable")
			}
			fileserver.ServeHTTP(c.Writer, c.Request)
			c.Abort()
			return
		}

		// Fallback do roteamento client-side
		if !directory.Exists("/", "/index.html") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Header("Cache-Control", "no-cache, must-revalidate")
		c.Request.URL.Path = "/"
		fileserver.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}
