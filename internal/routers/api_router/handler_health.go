package api_router

import (
	"time"

	"github.com/skyring/file-explorer-service/internal/app"
	pkgapp "github.com/skyring/file-explorer-service/pkg/app"
	"github.com/skyring/file-explorer-service/pkg/code"
	"github.com/skyring/file-explorer-service/pkg/util"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	*Handler
}

// NewHealthHandler creates a health handler instance.
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse health check response
type HealthResponse struct {
	Status   string        `json:"status"`   // "healthy" or "unhealthy"
	Version  string        `json:"version"`  // service version
	Uptime   float64       `json:"uptime"`   // seconds since start
	Database string        `json:"database"` // "connected" or "error"
	Sys      *util.SysInfo `json:"sys"`      // host load snapshot
}

// Check reports service health including the database connection.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "connected",
		Sys:      util.GetSysInfo(),
	}

	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
