package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
)

// DiscoverHandler serves the recipe discovery view
type DiscoverHandler struct {
	retriever  discovery.Retriever
	normalizer *discovery.Normalizer
	options    []discovery.ScreenOption
	logger     *zap.Logger
}

// NewDiscoverHandler creates a new DiscoverHandler
func NewDiscoverHandler(retriever discovery.Retriever, normalizer *discovery.Normalizer, logger *zap.Logger, opts ...discovery.ScreenOption) *DiscoverHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscoverHandler{
		retriever:  retriever,
		normalizer: normalizer,
		options:    opts,
		logger:     logger,
	}
}

// RegisterRoutes mounts GET /discover behind the given middleware
func (h *DiscoverHandler) RegisterRoutes(router *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(mw, h.Discover)
	router.GET("/discover", handlers...)
}

// Discover runs one retrieval for the requested predicate and renders the
// settled view.
func (h *DiscoverHandler) Discover(c *gin.Context) {
	screen := discovery.NewScreen(h.retriever, h.normalizer, h.logger, h.options...)
	defer screen.Close()

	seq := screen.Set(c.Query("search"), c.Query("category"))
	view, err := screen.WaitView(c.Request.Context(), seq)
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": "Request cancelled"})
		return
	}

	if view.Status == discovery.StatusError {
		h.logger.Warn("recipe retrieval failed", zap.String("error", view.Error))
		c.JSON(http.StatusBadGateway, gin.H{
			"status": view.Status,
			"error":  view.Error,
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
