package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-exchange-api/internal/application/ports"
	"file-exchange-api/internal/application/services"
	"file-exchange-api/internal/domain/file"
	"file-exchange-api/internal/domain/user"
	dtoFile "file-exchange-api/internal/interface/api/rest/dto/file"
	"file-exchange-api/internal/interface/api/rest/middleware"
	"file-exchange-api/internal/interface/api/rest/validator"
)

type FileController struct {
	logger      *zap.Logger
	fileService ports.FileService
	linkIssuer  ports.LinkIssuer
	publicURL   string
}

func NewFileController(
	r *gin.Engine,
	logger *zap.Logger,
	fileService ports.FileService,
	linkIssuer ports.LinkIssuer,
	authService ports.Auth,
	publicURL string,
) *FileController {
	fc := &FileController{
		logger:      logger,
		fileService: fileService,
		linkIssuer:  linkIssuer,
		publicURL:   publicURL,
	}

	authed := middleware.AuthMiddleware(authService)
	r.POST(RouteUploadFile, authed, fc.UploadHandler)
	r.GET(RouteListFiles, authed, fc.ListFilesHandler)
	r.GET(RouteDownloadFile, authed, fc.DownloadFileHandler)
	r.GET(RouteDownload, authed, fc.ServeFileHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if u.Role != user.RoleOps {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only Ops Users can upload files"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	out, err := fc.fileService.Upload(c.Request.Context(), u, fh)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to upload file"},
		)
		fc.logger.Error("Upload() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dtoFile.ToResponseFile(*out))
}

func (fc *FileController) ListFilesHandler(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if u.Role != user.RoleClient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only Client Users can list files"})
		return
	}

	files, err := fc.fileService.ListFiles(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to list files"},
		)
		fc.logger.Error("ListFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dtoFile.ToResponseFiles(files))
}

func (fc *FileController) DownloadFileHandler(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if u.Role != user.RoleClient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only Client Users can download files"})
		return
	}

	id, ok := validator.ParseFileID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	f, err := fc.fileService.FileByID(c.Request.Context(), file.ID(id))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get file"},
		)
		fc.logger.Error("FileByID() error", zap.Error(err))
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	downloadToken, err := fc.linkIssuer.Issue(f.ID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to issue download link"},
		)
		fc.logger.Error("Issue() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dtoFile.DownloadLink{
		DownloadLink: fc.publicURL + "/download/" + downloadToken,
		Message:      "success",
	})
}

func (fc *FileController) ServeFileHandler(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if u.Role != user.RoleClient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only Client Users can access this URL"})
		return
	}

	fileID, err := fc.linkIssuer.Resolve(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired download link"})
		return
	}

	f, err := fc.fileService.FileByID(c.Request.Context(), fileID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get file"},
		)
		fc.logger.Error("FileByID() error", zap.Error(err))
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	path, err := fc.fileService.FilePath(f)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to read file"},
		)
		fc.logger.Error("FilePath() error", zap.Error(err))
		return
	}

	c.FileAttachment(path, f.Filename)
}
