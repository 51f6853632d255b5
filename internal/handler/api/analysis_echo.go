package api

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	svcmetrics "TechAnalyst/internal/service/metrics"
	"TechAnalyst/internal/service/ratelimit"
	"TechAnalyst/internal/services/analytics"
	"TechAnalyst/internal/usecase"
	xhttp "TechAnalyst/pkg/http"
	xlogger "TechAnalyst/pkg/logger"
)

const healthTimeout = 2 * time.Second

// HealthChecker is anything that can report whether its backend is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// AnalysisEchoHandler serves the analysis API.
type AnalysisEchoHandler struct {
	logger     *xlogger.Logger
	analysis   *usecase.AnalysisUseCase
	bars       *usecase.BarsUseCase
	strategies *usecase.StrategiesUseCase
	health     HealthChecker
	limiter    *ratelimit.Limiter
}

var _ xhttp.Handler = (*AnalysisEchoHandler)(nil)

func NewAnalysisEchoHandler(
	logger *xlogger.Logger,
	analysis *usecase.AnalysisUseCase,
	bars *usecase.BarsUseCase,
	strategies *usecase.StrategiesUseCase,
	health HealthChecker,
	limiter *ratelimit.Limiter,
) *AnalysisEchoHandler {
	registerValidations()
	svcmetrics.Register()
	if logger == nil {
		logger = xlogger.NewNop()
	}
	return &AnalysisEchoHandler{
		logger:     logger,
		analysis:   analysis,
		bars:       bars,
		strategies: strategies,
		health:     health,
		limiter:    limiter,
	}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	var mw []echo.MiddlewareFunc
	if h.limiter != nil {
		mw = append(mw, ratelimit.Middleware(h.limiter))
	}
	g := e.Group("/api", mw...)
	g.POST("/analyze", h.AnalyzeSeries)
	g.GET("/analyze", h.AnalyzeSymbol)
	g.GET("/bars", h.GetBars)
	g.POST("/bars", h.PutBars)
	g.GET("/strategies", h.Strategies)
}

// observe records endpoint latency and the error class of the response.
func observe(endpoint string, c echo.Context, start time.Time) {
	svcmetrics.ObserveEndpoint(endpoint, start, c.Response().Status)
}

func (h *AnalysisEchoHandler) AnalyzeSeries(c echo.Context) error {
	defer observe("analyze_series", c, time.Now())
	req := &models.AnalyzeSeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.AnalyzeSeries(c.Request().Context(), usecase.AnalyzeSeriesParams{
		Symbol: req.Symbol,
		Bars:   models.ToSeries(req.Bars),
	})
	if err != nil {
		return h.fail(c, "analyze_series", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) AnalyzeSymbol(c echo.Context) error {
	defer observe("analyze_symbol", c, time.Now())
	req := &models.AnalyzeSymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.AnalyzeSymbol(c.Request().Context(), usecase.AnalyzeSymbolParams{
		Symbol:    req.Symbol,
		N:         req.N,
		Timeframe: domrepo.NormalizeTimeframe(req.TF),
	})
	if err != nil {
		return h.fail(c, "analyze_symbol", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) GetBars(c echo.Context) error {
	defer observe("get_bars", c, time.Now())
	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tf := domrepo.NormalizeTimeframe(req.TF)
	now := time.Now().UTC()
	to := xhttp.ParseTimeDefault(req.To, now)
	from := xhttp.ParseTimeDefault(req.From, to.Add(-time.Duration(req.Limit)*tf.Duration()))

	res, err := h.bars.GetBars(c.Request().Context(), usecase.GetBarsParams{
		Symbol:    req.Symbol,
		From:      from,
		To:        to,
		Timeframe: tf,
		Limit:     req.Limit,
	})
	if err != nil {
		return h.fail(c, "get_bars", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) PutBars(c echo.Context) error {
	defer observe("put_bars", c, time.Now())
	req := &models.PutBarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	n, err := h.bars.PutBars(c.Request().Context(), usecase.PutBarsParams{
		Symbol:    req.Symbol,
		Timeframe: domrepo.Timeframe(req.TF),
		Bars:      models.ToSeries(req.Bars),
	})
	if err != nil {
		return h.fail(c, "put_bars", err)
	}
	return xhttp.SuccessResponse(c, map[string]int{"stored": n})
}

func (h *AnalysisEchoHandler) Strategies(c echo.Context) error {
	defer observe("strategies", c, time.Now())
	return xhttp.SuccessResponse(c, h.strategies.List())
}

func (h *AnalysisEchoHandler) Health(c echo.Context) error {
	if h.health == nil {
		return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()
	if err := h.health.Health(ctx); err != nil {
		h.logger.Warn("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("bar store unreachable"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// fail maps use case errors onto AppErrors. Only unexpected errors are
// logged at error level.
func (h *AnalysisEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidParams),
		errors.Is(err, analytics.ErrInvalidSeries),
		errors.Is(err, analytics.ErrEmptySeries):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	case errors.Is(err, domrepo.ErrNoBars):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	default:
		h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("analysis failed").WithError(err))
	}
}
