package api_router

import (
	"github.com/skyring/file-explorer-service/global"
	"github.com/skyring/file-explorer-service/internal/app"
	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/internal/dto"
	pkgapp "github.com/skyring/file-explorer-service/pkg/app"
	"github.com/skyring/file-explorer-service/pkg/code"
	apperrors "github.com/skyring/file-explorer-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FolderHandler handles folder tree endpoints.
type FolderHandler struct {
	*Handler
}

// NewFolderHandler creates a folder handler instance.
func NewFolderHandler(a *app.App) *FolderHandler {
	return &FolderHandler{Handler: NewHandler(a)}
}

// Roots retrieves the top level of the tree: the synthetic root with
// its immediate folders and files.
// @Summary Get root listing
// @Tags Folder
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.FolderDTO} "Success"
// @Router /api/folders [get]
func (h *FolderHandler) Roots(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	res, err := h.App.FolderService.ResolveChildren(c.Request.Context(), domain.RootFolderID)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Children retrieves a folder with its immediate subfolders (each
// carrying hasChildren) and files (each carrying its preview). An
// unknown id yields an empty listing, not an error.
// @Summary Get folder children
// @Tags Folder
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} pkgapp.Res{data=dto.FolderDTO} "Success"
// @Router /api/folders/{id}/children [get]
func (h *FolderHandler) Children(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	res, err := h.App.FolderService.ResolveChildren(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Subfolders retrieves the folder-only listing, skipping files and
// preview work.
// @Summary Get direct subfolders
// @Tags Folder
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.FolderDTO} "Success"
// @Router /api/folders/{id}/subfolders [get]
func (h *FolderHandler) Subfolders(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	res, err := h.App.FolderService.ResolveDirectSubfolders(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Get retrieves a single folder by id.
// @Summary Get folder
// @Tags Folder
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} pkgapp.Res{data=dto.FolderDTO} "Success"
// @Router /api/folders/{id} [get]
func (h *FolderHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	res, err := h.App.FolderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Create creates a folder. The response carries the created folder so
// the client can patch its cache after the ack.
// @Summary Create folder
// @Tags Folder
// @Accept json
// @Produce json
// @Param params body dto.FolderCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.FolderDTO} "Success"
// @Router /api/folders [post]
func (h *FolderHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FolderCreateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		global.Log().Error("apiRouter.Folder.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	res, err := h.App.FolderService.Create(c.Request.Context(), params)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}

// Rename renames a folder.
// @Summary Rename folder
// @Tags Folder
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Param params body dto.FolderRenameRequest true "Rename Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.AffectedDTO} "Success"
// @Router /api/folders/{id}/rename [put]
func (h *FolderHandler) Rename(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FolderRenameRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		global.Log().Error("apiRouter.Folder.Rename.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	id := c.Param("id")
	if err := h.App.FolderService.Rename(c.Request.Context(), id, params.Name); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.AffectedDTO{ID: id}))
}

// Delete deletes a folder and its whole subtree.
// @Summary Delete folder
// @Tags Folder
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} pkgapp.Res{data=dto.AffectedDTO} "Success"
// @Router /api/folders/{id} [delete]
func (h *FolderHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id := c.Param("id")
	if err := h.App.FolderService.Delete(c.Request.Context(), id); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.AffectedDTO{ID: id}))
}
