package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wrobbinz/newspoint/internal/model"
)

type NewsStore interface {
	GetAllNews(ctx context.Context) ([]model.NewsRow, error)
	Ping(ctx context.Context) error
}

// Trigger starts a cloud rebuild without waiting for it.
type Trigger interface {
	Trigger()
}

type NewsHandler struct {
	repository NewsStore
	runner     Trigger
}

func NewNewsHandler(repository NewsStore, runner Trigger) *NewsHandler {
	return &NewsHandler{repository: repository, runner: runner}
}

func (h *NewsHandler) GetAllNews(c *gin.Context) {
	rows, err := h.repository.GetAllNews(c.Request.Context())
	if err != nil {
		slog.Error("error fetching news", "error", err)
		c.JSON(http.StatusInternalServerError, NewsResponse{
			Status:  "error",
			Data:    nil,
			Message: "Failed to retrieve news",
		})
		return
	}

	data := make([]NewsEntryDTO, 0, len(rows))
	for _, r := range rows {
		data = append(data, NewsEntryDTO{ID: r.ID, Word: r.Word, Size: r.Size})
	}

	c.JSON(http.StatusOK, NewsResponse{
		Status:  "success",
		Data:    data,
		Message: "Retrieved news for All",
	})
}

// UpdateAllNews kicks off a rebuild and answers before it finishes. A rebuild
// already in flight makes the new one a logged no-op.
func (h *NewsHandler) UpdateAllNews(c *gin.Context) {
	h.runner.Trigger()

	c.JSON(http.StatusOK, StatusResponse{
		Status:  "success",
		Message: "Updated AllNews",
	})
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	if err := h.repository.Ping(c.Request.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
