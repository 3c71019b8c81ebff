package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/internal/web/service"
	"github.com/arpansethi30/finagent/pkg/common"
	"github.com/arpansethi30/finagent/pkg/logger"
	"github.com/arpansethi30/finagent/pkg/utils"

	"github.com/labstack/echo/v4"
)

// pageData is the view model shared by all page templates. Unused fields
// stay at their zero value for pages that do not reference them.
type pageData struct {
	Title      string
	Active     string
	Backend    dto.BackendHealth
	MarketTime time.Time
	Error      string

	// Form echo values.
	Symbol           string
	Period           string
	Days             int
	Age              string
	Income           string
	RiskAppetite     string
	InvestmentPeriod string

	// Select options.
	Periods     []string
	DayOptions  []int
	RiskOptions []string

	// Result panels.
	Stock     *dto.StockAnalysisResponse
	Sentiment *dto.SentimentAnalysisResponse
	Portfolio *dto.PortfolioResponse
	Records   []*dto.AnalysisRecordResponse
}

// PageHandler serves the server-rendered pages and their form submissions.
type PageHandler struct {
	analysisService service.AnalysisService
	healthService   service.HealthService
	historyService  service.HistoryService
	logger          *logger.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(
	analysisService service.AnalysisService,
	healthService service.HealthService,
	historyService service.HistoryService,
	logger *logger.Logger,
) *PageHandler {
	return &PageHandler{
		analysisService: analysisService,
		healthService:   healthService,
		historyService:  historyService,
		logger:          logger,
	}
}

// RegisterRoutes registers the page routes directly on the Echo instance.
func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/stock", h.StockPage)
	e.POST("/stock", h.StockSubmit)
	e.GET("/sentiment", h.SentimentPage)
	e.POST("/sentiment", h.SentimentSubmit)
	e.GET("/portfolio", h.PortfolioPage)
	e.POST("/portfolio", h.PortfolioSubmit)
	e.GET("/history", h.HistoryPage)
}

// Index renders the overview page with the backend status panel.
func (h *PageHandler) Index(c echo.Context) error {
	data := h.newPageData("Overview", "home")
	data.MarketTime = utils.TimeNowET()
	return c.Render(http.StatusOK, "index", data)
}

// StockPage renders the empty stock analysis form.
func (h *PageHandler) StockPage(c echo.Context) error {
	data := h.newPageData("Stock Analysis", "stock")
	data.Period = "1y"
	return c.Render(http.StatusOK, "stock", data)
}

// StockSubmit validates the form, calls the backend, and re-renders the page
// with the result panels or the inline error.
func (h *PageHandler) StockSubmit(c echo.Context) error {
	data := h.newPageData("Stock Analysis", "stock")

	var req dto.StockAnalysisRequest
	if err := c.Bind(&req); err != nil {
		data.Error = "Invalid form submission"
		return c.Render(http.StatusBadRequest, "stock", data)
	}
	req.Normalize()
	data.Symbol = req.Symbol
	data.Period = req.Period

	if err := c.Validate(&req); err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadRequest, "stock", data)
	}

	result, err := h.analysisService.AnalyzeStock(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Stock analysis failed", logger.ErrorField(err), logger.Field("symbol", req.Symbol))
		status, msg := mapAnalysisError(err, req.Symbol)
		data.Error = msg
		return c.Render(status, "stock", data)
	}

	data.Stock = result
	return c.Render(http.StatusOK, "stock", data)
}

// SentimentPage renders the empty sentiment form.
func (h *PageHandler) SentimentPage(c echo.Context) error {
	data := h.newPageData("News Sentiment", "sentiment")
	data.Days = 7
	return c.Render(http.StatusOK, "sentiment", data)
}

// SentimentSubmit validates the form and renders the sentiment panels.
func (h *PageHandler) SentimentSubmit(c echo.Context) error {
	data := h.newPageData("News Sentiment", "sentiment")

	var req dto.SentimentAnalysisRequest
	if err := c.Bind(&req); err != nil {
		data.Error = "Invalid form submission"
		return c.Render(http.StatusBadRequest, "sentiment", data)
	}
	req.Normalize()
	data.Symbol = req.Symbol
	data.Days = req.Days

	if err := c.Validate(&req); err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadRequest, "sentiment", data)
	}

	result, err := h.analysisService.AnalyzeSentiment(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Sentiment analysis failed", logger.ErrorField(err), logger.Field("symbol", req.Symbol))
		status, msg := mapAnalysisError(err, req.Symbol)
		data.Error = msg
		return c.Render(status, "sentiment", data)
	}

	data.Sentiment = result
	return c.Render(http.StatusOK, "sentiment", data)
}

// PortfolioPage renders the empty profile form.
func (h *PageHandler) PortfolioPage(c echo.Context) error {
	data := h.newPageData("Portfolio", "portfolio")
	data.RiskAppetite = "medium"
	return c.Render(http.StatusOK, "portfolio", data)
}

// PortfolioSubmit validates the profile and renders the recommendation.
func (h *PageHandler) PortfolioSubmit(c echo.Context) error {
	data := h.newPageData("Portfolio", "portfolio")

	var req dto.PortfolioRequest
	if err := c.Bind(&req); err != nil {
		data.Error = "Invalid form submission"
		return c.Render(http.StatusBadRequest, "portfolio", data)
	}
	req.Normalize()
	data.Age = strconv.Itoa(req.Age)
	data.Income = strconv.FormatFloat(req.Income, 'f', -1, 64)
	data.RiskAppetite = req.RiskAppetite
	data.InvestmentPeriod = strconv.Itoa(req.InvestmentPeriod)

	if err := c.Validate(&req); err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadRequest, "portfolio", data)
	}

	result, err := h.analysisService.RecommendPortfolio(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Portfolio recommendation failed", logger.ErrorField(err))
		status, msg := mapAnalysisError(err, "")
		data.Error = msg
		return c.Render(status, "portfolio", data)
	}

	data.Portfolio = result
	return c.Render(http.StatusOK, "portfolio", data)
}

// HistoryPage renders the recent activity table.
func (h *PageHandler) HistoryPage(c echo.Context) error {
	data := h.newPageData("Activity", "history")

	records, err := h.historyService.ListRecent(c.Request().Context(), c.QueryParam("symbol"), 0)
	if err != nil {
		data.Error = "Failed to load activity log"
		return c.Render(http.StatusInternalServerError, "history", data)
	}

	data.Records = records
	return c.Render(http.StatusOK, "history", data)
}

func (h *PageHandler) newPageData(title, active string) *pageData {
	return &pageData{
		Title:       title,
		Active:      active,
		Backend:     h.healthService.Status(),
		Periods:     common.AnalysisPeriods,
		DayOptions:  common.SentimentDays,
		RiskOptions: common.RiskAppetites,
	}
}
