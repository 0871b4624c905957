package api_router

import (
	"github.com/skyring/file-explorer-service/internal/app"
	pkgapp "github.com/skyring/file-explorer-service/pkg/app"
	"github.com/skyring/file-explorer-service/pkg/code"
	apperrors "github.com/skyring/file-explorer-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ExportHandler handles manual snapshot export triggers.
type ExportHandler struct {
	*Handler
}

// NewExportHandler creates an export handler instance.
func NewExportHandler(a *app.App) *ExportHandler {
	return &ExportHandler{Handler: NewHandler(a)}
}

// ExportResponse manual export response
type ExportResponse struct {
	Key string `json:"key"` // blob key the snapshot was stored under
}

// Trigger walks the tree and uploads one snapshot immediately,
// independent of the schedule.
// @Summary Trigger snapshot export
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=ExportResponse} "Success"
// @Router /api/export [post]
func (h *ExportHandler) Trigger(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	if h.App.ExportService == nil {
		response.ToResponse(code.ErrorExportFailed.WithDetails("export is not enabled"))
		return
	}

	key, err := h.App.ExportService.ExportSnapshot(c.Request.Context())
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(ExportResponse{Key: key}))
}
