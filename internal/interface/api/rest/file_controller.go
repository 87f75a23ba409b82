package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cloudnest-api/config"
	"cloudnest-api/internal/application/ports"
	"cloudnest-api/internal/application/services"
	"cloudnest-api/internal/infrastructure/jwt"
	"cloudnest-api/internal/interface/api/rest/dto/file"
	"cloudnest-api/internal/interface/api/rest/middleware"
	"cloudnest-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	cfg         config.Storage
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	cfg config.Storage,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		cfg:         cfg,
		logger:      logger,
	}

	authed := r.Group("", middleware.AuthMiddleware(jwtService))
	authed.POST(RouteUpload, fc.UploadHandler)
	authed.GET(RouteFiles, fc.GetFilesHandler)
	authed.POST(RouteFileFolder, fc.AssignHandler)
	authed.DELETE(RouteFileFolder, fc.UnassignHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if len(files) > fc.cfg.MaxFilesPerUpload {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many files, at most %d per request", fc.cfg.MaxFilesPerUpload),
		})
		return
	}

	uploaded, err := fc.fileService.Upload(c.Request.Context(), ownerUUID, files)
	if err != nil {
		var rejected *services.UploadRejectedError
		if errors.As(err, &rejected) {
			code := http.StatusBadRequest
			if rejected.Reason == services.RejectTooLarge {
				code = http.StatusRequestEntityTooLarge
			}
			c.JSON(code, gin.H{"error": rejected.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to upload files"},
		)
		fc.logger.Error("Upload() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, file.ResponseData{
		Data: file.ToResponseFiles(uploaded),
	})
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files, err := fc.fileService.FindFiles(c.Request.Context(), ownerUUID, page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		fc.logger.Error("FindFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file.ResponseData{
		Data: file.ToResponseFiles(files),
	})
}

func (fc *FileController) AssignHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	var req file.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := validator.ValidateFolderName(req.FolderName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := fc.fileService.AssignToFolder(c.Request.Context(), ownerUUID, fileUUID, req.FolderName)
	if err != nil {
		fc.respondFileError(c, "AssignToFolder", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) UnassignHandler(c *gin.Context) {
	ownerUUID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	f, err := fc.fileService.RemoveFromFolder(c.Request.Context(), ownerUUID, fileUUID)
	if err != nil {
		fc.respondFileError(c, "RemoveFromFolder", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) respondFileError(c *gin.Context, op string, err error) {
	var partial *services.PartialFailureError
	switch {
	case errors.Is(err, services.ErrFileNotFound), errors.Is(err, services.ErrFolderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &partial):
		fc.logger.Error("partial failure: stores diverged",
			zap.String("op", partial.Op),
			zap.Uint64("owner_id", uint64(partial.OwnerID)),
			zap.String("path", partial.Path),
			zap.Error(partial.Err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage inconsistency detected, reconciliation required"})
	default:
		fc.logger.Error(op+"() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "file operation failed"})
	}
}
