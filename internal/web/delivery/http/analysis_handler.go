package http

import (
	"net/http"

	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/internal/web/service"
	"github.com/arpansethi30/finagent/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler serves the JSON analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	logger          *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze/stock", h.AnalyzeStock)
	g.POST("/analyze/sentiment", h.AnalyzeSentiment)
	g.POST("/portfolio/recommend", h.RecommendPortfolio)
}

// AnalyzeStock handles POST /analyze/stock.
func (h *AnalysisHandler) AnalyzeStock(c echo.Context) error {
	var req dto.StockAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	req.Normalize()
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := h.analysisService.AnalyzeStock(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Stock analysis failed", logger.ErrorField(err), logger.Field("symbol", req.Symbol))
		status, msg := mapAnalysisError(err, req.Symbol)
		return c.JSON(status, dto.ErrorResponse{Error: msg})
	}

	return c.JSON(http.StatusOK, result)
}

// AnalyzeSentiment handles POST /analyze/sentiment.
func (h *AnalysisHandler) AnalyzeSentiment(c echo.Context) error {
	var req dto.SentimentAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	req.Normalize()
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := h.analysisService.AnalyzeSentiment(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Sentiment analysis failed", logger.ErrorField(err), logger.Field("symbol", req.Symbol))
		status, msg := mapAnalysisError(err, req.Symbol)
		return c.JSON(status, dto.ErrorResponse{Error: msg})
	}

	return c.JSON(http.StatusOK, result)
}

// RecommendPortfolio handles POST /portfolio/recommend.
func (h *AnalysisHandler) RecommendPortfolio(c echo.Context) error {
	var req dto.PortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	req.Normalize()
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := h.analysisService.RecommendPortfolio(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Portfolio recommendation failed", logger.ErrorField(err))
		status, msg := mapAnalysisError(err, "")
		return c.JSON(status, dto.ErrorResponse{Error: msg})
	}

	return c.JSON(http.StatusOK, result)
}
