package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cloudnest-api/internal/application/ports"
	"cloudnest-api/internal/application/services"
	"cloudnest-api/internal/infrastructure/jwt"
	"cloudnest-api/internal/interface/api/rest/dto/folder"
	"cloudnest-api/internal/interface/api/rest/middleware"
	"cloudnest-api/internal/interface/api/rest/validator"
)

type FolderController struct {
	folderService ports.FolderService
	logger        *zap.Logger
}

func NewFolderController(
	r *gin.Engine,
	folderService ports.FolderService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FolderController {
	fc := &FolderController{
		folderService: folderService,
		logger:        logger,
	}

	authed := r.Group("", middleware.AuthMiddleware(jwtService))
	authed.GET(RouteFolders, fc.ListFoldersHandler)
	authed.GET(RouteFolder, fc.GetFolderHandler)
	authed.POST(RouteFolders, fc.CreateFolderHandler)
	authed.PATCH(RouteFolder, fc.RenameFolderHandler)
	authed.DELETE(RouteFolder, fc.DeleteFolderHandler)

	return fc
}

func (fc *FolderController) ListFoldersHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	names, err := fc.folderService.ListFolders(c.Request.Context(), ownerUUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to list folders"},
		)
		fc.logger.Error("ListFolders() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, folder.ListResponse{Folders: names})
}

func (fc *FolderController) GetFolderHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	name := c.Param("name")
	if err := validator.ValidateFolderName(name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := fc.folderService.FolderExists(c.Request.Context(), ownerUUID, name)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get folder"},
		)
		fc.logger.Error("FolderExists() error", zap.Error(err))
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "folder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folder": name})
}

func (fc *FolderController) CreateFolderHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req folder.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := validator.ValidateFolderName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := fc.folderService.CreateFolder(c.Request.Context(), ownerUUID, req.Name)
	if err != nil {
		fc.respondFolderError(c, "CreateFolder", err)
		return
	}

	c.JSON(http.StatusCreated, folder.ToResponseFolder(*f))
}

func (fc *FolderController) RenameFolderHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	oldName := c.Param("name")
	if err := validator.ValidateFolderName(oldName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req folder.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := validator.ValidateFolderName(req.NewName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := fc.folderService.RenameFolder(c.Request.Context(), ownerUUID, oldName, req.NewName)
	if err != nil {
		fc.respondFolderError(c, "RenameFolder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "folder renamed successfully",
		"new_name": f.Name,
	})
}

func (fc *FolderController) DeleteFolderHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	name := c.Param("name")
	if err := validator.ValidateFolderName(name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := fc.folderService.DeleteFolder(c.Request.Context(), ownerUUID, name); err != nil {
		fc.respondFolderError(c, "DeleteFolder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "folder deleted successfully"})
}

func (fc *FolderController) respondFolderError(c *gin.Context, op string, err error) {
	var partial *services.PartialFailureError
	switch {
	case errors.Is(err, services.ErrFolderExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFolderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &partial):
		// divergence between the stores: loud log, generic response
		fc.logger.Error("partial failure: stores diverged",
			zap.String("op", partial.Op),
			zap.Uint64("owner_id", uint64(partial.OwnerID)),
			zap.String("path", partial.Path),
			zap.Error(partial.Err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage inconsistency detected, reconciliation required"})
	default:
		fc.logger.Error(op+"() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "folder operation failed"})
	}
}
