package http

import (
	"net/http"
	"strconv"

	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/internal/web/service"
	"github.com/arpansethi30/finagent/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HistoryHandler serves the analysis activity log.
type HistoryHandler struct {
	historyService service.HistoryService
	logger         *logger.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService, logger *logger.Logger) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, logger: logger}
}

// RegisterRoutes registers the history routes to the Echo group.
func (h *HistoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/history", h.ListHistory)
}

// ListHistory handles GET /history?symbol=&limit=.
func (h *HistoryHandler) ListHistory(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a non-negative integer"})
		}
		limit = parsed
	}

	records, err := h.historyService.ListRecent(c.Request().Context(), c.QueryParam("symbol"), limit)
	if err != nil {
		h.logger.Error("Failed to list history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load activity log"})
	}

	return c.JSON(http.StatusOK, records)
}
