package api_router

import (
	"net/http"

	"github.com/skyring/file-explorer-service/global"
	"github.com/skyring/file-explorer-service/internal/app"
	"github.com/skyring/file-explorer-service/internal/dto"
	pkgapp "github.com/skyring/file-explorer-service/pkg/app"
	"github.com/skyring/file-explorer-service/pkg/code"
	"github.com/skyring/file-explorer-service/pkg/convert"
	apperrors "github.com/skyring/file-explorer-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler handles file endpoints.
type FileHandler struct {
	*Handler
}

// NewFileHandler creates a file handler instance.
func NewFileHandler(a *app.App) *FileHandler {
	return &FileHandler{Handler: NewHandler(a)}
}

// Upload stores the multipart files under the given parent folder.
// Files failing the acceptance rules are skipped, the response lists
// what was stored.
// @Summary Upload files
// @Tags File
// @Accept multipart/form-data
// @Produce json
// @Param parentId formData string false "Parent Folder ID"
// @Param file formData file true "Files"
// @Success 200 {object} pkgapp.Res{data=[]dto.FileDTO} "Success"
// @Router /api/files/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileUploadRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		global.Log().Error("apiRouter.File.Upload.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}
	headers := form.File["file"]
	if len(headers) == 0 {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("no file field in form"))
		return
	}

	res, err := h.App.FileService.Upload(c.Request.Context(), params.ParentID, headers)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Get retrieves a file with its content.
// @Summary Get file
// @Tags File
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} pkgapp.Res{data=dto.FileContentDTO} "Success"
// @Router /api/files/{id} [get]
func (h *FileHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	res, err := h.App.FileService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Preview retrieves the memoized bounded preview for a file. Image
// previews are served as raw bytes, everything else as JSON.
// @Summary Get file preview
// @Tags File
// @Produce json
// @Param id path string true "File ID"
// @Param raw query bool false "Serve image preview bytes directly"
// @Success 200 {object} pkgapp.Res{data=dto.FilePreviewDTO} "Success"
// @Router /api/files/{id}/preview [get]
func (h *FileHandler) Preview(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	res, err := h.App.FileService.GetPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	if convert.StrTo(c.Query("raw")).MustBool() && res.PreviewKind == dto.PreviewKindImage {
		c.Data(http.StatusOK, res.PreviewMime, res.Preview)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Rename renames a file.
// @Summary Rename file
// @Tags File
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Param params body dto.FileRenameRequest true "Rename Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.AffectedDTO} "Success"
// @Router /api/files/{id}/rename [put]
func (h *FileHandler) Rename(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileRenameRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		global.Log().Error("apiRouter.File.Rename.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	id := c.Param("id")
	if err := h.App.FileService.Rename(c.Request.Context(), id, params.Name); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.AffectedDTO{ID: id}))
}

// Delete deletes a file.
// @Summary Delete file
// @Tags File
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} pkgapp.Res{data=dto.AffectedDTO} "Success"
// @Router /api/files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := c.Param("id")
	if err := h.App.FileService.Delete(c.Request.Context(), id); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.AffectedDTO{ID: id}))
}
