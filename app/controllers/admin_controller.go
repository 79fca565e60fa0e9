package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/health-center-lookup/app/requests"
	"github.com/health-center-lookup/app/responses"
	"github.com/health-center-lookup/app/services"
	"github.com/health-center-lookup/internal/query"
	"go.uber.org/zap"
)

// AdminController serves the operator endpoints under /api/admin.
type AdminController struct {
	engine       *query.Engine
	cacheService services.ICacheService
	misses       services.MissRecorder
	logger       *zap.Logger
}

// NewAdminController creates an AdminController. cacheService may be nil
// when caching is disabled.
func NewAdminController(engine *query.Engine, cacheService services.ICacheService, misses services.MissRecorder, logger *zap.Logger) *AdminController {
	return &AdminController{
		engine:       engine,
		cacheService: cacheService,
		misses:       misses,
		logger:       logger,
	}
}

// ListMisses answers GET /api/admin/misses?limit=N.
func (ac *AdminController) ListMisses(c *gin.Context) {
	var q requests.MissesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "limit inválido: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	queries, err := ac.misses.Recent(ctx, q.Limit)
	if err != nil {
		ac.logger.Error("Cannot list unmatched queries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: err.Error()})
		return
	}
	total, err := ac.misses.Count(ctx)
	if err != nil {
		ac.logger.Warn("Cannot count unmatched queries", zap.Error(err))
	}

	c.JSON(http.StatusOK, responses.MissesResponse{Total: total, Queries: queries})
}

// ClearCache answers POST /api/admin/cache/clear.
func (ac *AdminController) ClearCache(c *gin.Context) {
	if ac.cacheService == nil {
		c.JSON(http.StatusOK, responses.MessageResponse{Message: "cache desativado"})
		return
	}
	if err := ac.cacheService.Clear(c.Request.Context()); err != nil {
		ac.logger.Error("Cannot clear reply cache", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: err.Error()})
		return
	}
	ac.logger.Info("Reply cache cleared")
	c.JSON(http.StatusOK, responses.MessageResponse{Message: "cache limpo"})
}

// GetStats answers GET /api/admin/stats.
func (ac *AdminController) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	resp := responses.StatsResponse{Dataset: ac.engine.Dataset().Report}

	if ac.cacheService != nil {
		stats, err := ac.cacheService.GetStats(ctx)
		if err != nil {
			ac.logger.Warn("Cannot read cache stats", zap.Error(err))
		}
		resp.Cache = stats
	}

	misses, err := ac.misses.Count(ctx)
	if err != nil {
		ac.logger.Warn("Cannot count unmatched queries", zap.Error(err))
	}
	resp.Misses = misses

	c.JSON(http.StatusOK, resp)
}
