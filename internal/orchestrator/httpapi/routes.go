// Package httpapi exposes the archive/memory browsing endpoints on
// gin-gonic/gin, mirroring the teacher's cmd/server/server.go split:
// the main orchestration surface rides gorilla/mux
// (cmd/assistant/serve.go) while these read-only inspection endpoints,
// like the teacher's chat-history sub-routes, get gin.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/direct"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// MemoryReader is the subset of *memory.Module these routes need.
type MemoryReader interface {
	ListAll(ctx context.Context) ([]types.MemoryEntry, error)
	GetMemory(ctx context.Context, id string) (*types.MemoryEntry, error)
	GetMemoriesByCategory(ctx context.Context, category string) ([]types.MemoryEntry, error)
}

// ArchiveReader is the subset of *direct.Archiver these routes need.
type ArchiveReader interface {
	ReadManifest(requestID string, at time.Time) (direct.Manifest, error)
}

// NewRouter builds the gin engine fronting memory and archive browsing.
func NewRouter(mem MemoryReader, archive ArchiveReader) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/memory", func(c *gin.Context) {
		entries, err := mem.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, entries)
	})

	r.GET("/memory/category/:category", func(c *gin.Context) {
		entries, err := mem.GetMemoriesByCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, entries)
	})

	r.GET("/memory/:id", func(c *gin.Context) {
		entry, err := mem.GetMemory(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if entry == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, entry)
	})

	r.GET("/archive/:requestID", func(c *gin.Context) {
		dateParam := c.Query("date")
		at := time.Now().UTC()
		if dateParam != "" {
			parsed, err := time.Parse("2006-01-02", dateParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			at = parsed
		}
		manifest, err := archive.ReadManifest(c.Param("requestID"), at)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, manifest)
	})

	return r
}
