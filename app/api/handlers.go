package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hafizhr/kliping/app/cfg"
)

func NewHandler(cache CacheInterface) *Handler {
	return &Handler{cache: cache}
}

func (h *Handler) GetNews(c *gin.Context) {
	records, err := h.cache.News(c.Request.Context())
	if err != nil {
		slog.Error("News request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) GetCatalog(c *gin.Context) {
	records, err := h.cache.Catalog(c.Request.Context())
	if err != nil {
		slog.Error("Catalog request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) GetTrending(c *gin.Context) {
	entries, err := h.cache.Trending(c.Request.Context())
	if err != nil {
		slog.Error("Trending request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *Handler) RefreshAll(c *gin.Context) {
	counts, err := h.cache.RefreshAll(c.Request.Context())
	if err != nil {
		slog.Error("Forced refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"news_count":     counts.News,
		"catalog_count":  counts.Catalog,
		"trending_count": counts.Trending,
	})
}

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.cache.Status()
	if err != nil {
		slog.Error("Status request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "online",
		"categories": status,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":   cfg.GetVersion(),
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}
