package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"masar-backend/internal/delivery/http/middleware"
	"masar-backend/internal/delivery/http/response"
	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
	"masar-backend/pkg/storage"
)

type PassportHandler struct {
	passportUC  domain.PassportUsecase
	storage     *storage.Client
	maxUploadMB int64
}

func NewPassportHandler(protected *gin.RouterGroup, passportUC domain.PassportUsecase, storageClient *storage.Client, maxUploadMB int64) {
	handler := &PassportHandler{passportUC: passportUC, storage: storageClient, maxUploadMB: maxUploadMB}

	uploadLimited := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())

	passport := protected.Group("/passport")
	{
		passport.POST("/certificates", handler.AddCertificate)
		passport.POST("/certificates/file", uploadLimited, handler.UploadCertificateFile)
		passport.DELETE("/certificates/:id", handler.DeleteCertificate)

		passport.POST("/projects", handler.AddProject)
		passport.POST("/projects/image", uploadLimited, handler.UploadProjectImage)
		passport.DELETE("/projects/:id", handler.DeleteProject)

		passport.PUT("/social-links", handler.UpsertSocialLink)
		passport.DELETE("/social-links/:id", handler.DeleteSocialLink)
	}
}

type addCertificateRequest struct {
	Name                string  `json:"name" binding:"required"`
	IssuingOrganization string  `json:"issuing_organization" binding:"required"`
	IssueDate           *string `json:"issue_date"`
	Description         *string `json:"description"`
	FileURL             *string `json:"file_url"`
}

// AddCertificate godoc
// @Summary      Add a certificate
// @Tags         passport
// @Accept       json
// @Produce      json
// @Param        certificate  body      addCertificateRequest  true  "Certificate"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Router       /passport/certificates [post]
// @Security     BearerAuth
func (h *PassportHandler) AddCertificate(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req addCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	cert, err := h.passportUC.AddCertificate(c.Request.Context(), userID, &domain.Certificate{
		Name:                req.Name,
		IssuingOrganization: req.IssuingOrganization,
		IssueDate:           req.IssueDate,
		Description:         req.Description,
		FileURL:             req.FileURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Certificate added", cert)
}

// UploadCertificateFile godoc
// @Summary      Upload a certificate file
// @Description  Stores the file and returns its public URL for use in the certificate payload
// @Tags         passport
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Certificate file (image or PDF)"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /passport/certificates/file [post]
// @Security     BearerAuth
func (h *PassportHandler) UploadCertificateFile(c *gin.Context) {
	h.uploadFile(c, storage.BucketCertificates, false)
}

type addProjectRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
	ProjectURL   *string  `json:"project_url" binding:"omitempty,url"`
	ImageURL     *string  `json:"image_url"`
}

// AddProject godoc
// @Summary      Add a project
// @Tags         passport
// @Accept       json
// @Produce      json
// @Param        project  body      addProjectRequest  true  "Project"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /passport/projects [post]
// @Security     BearerAuth
func (h *PassportHandler) AddProject(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req addProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	project, err := h.passportUC.AddProject(c.Request.Context(), userID, &domain.Project{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		ProjectURL:   req.ProjectURL,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Project added", project)
}

// UploadProjectImage godoc
// @Summary      Upload a project thumbnail
// @Tags         passport
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Project image"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /passport/projects/image [post]
// @Security     BearerAuth
func (h *PassportHandler) UploadProjectImage(c *gin.Context) {
	h.uploadFile(c, storage.BucketProjectThumbnails, true)
}

// DeleteCertificate godoc
// @Summary      Delete a certificate
// @Tags         passport
// @Produce      json
// @Param        id   path      string  true  "Certificate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /passport/certificates/{id} [delete]
// @Security     BearerAuth
func (h *PassportHandler) DeleteCertificate(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.passportUC.DeleteCertificate(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(notFoundOr(err, "Certificate not found"))
		return
	}
	response.Success(c, http.StatusOK, "Certificate deleted", nil)
}

// DeleteProject godoc
// @Summary      Delete a project
// @Tags         passport
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /passport/projects/{id} [delete]
// @Security     BearerAuth
func (h *PassportHandler) DeleteProject(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.passportUC.DeleteProject(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(notFoundOr(err, "Project not found"))
		return
	}
	response.Success(c, http.StatusOK, "Project deleted", nil)
}

type upsertSocialLinkRequest struct {
	Platform string `json:"platform" binding:"required,socialplatform"`
	URL      string `json:"url" binding:"required,url"`
}

// UpsertSocialLink godoc
// @Summary      Add or replace a social link
// @Description  Keeps one link per platform. Submitting the same platform again replaces the URL.
// @Tags         passport
// @Accept       json
// @Produce      json
// @Param        link  body      upsertSocialLinkRequest  true  "Social link"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /passport/social-links [put]
// @Security     BearerAuth
func (h *PassportHandler) UpsertSocialLink(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req upsertSocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	link, err := h.passportUC.UpsertSocialLink(c.Request.Context(), userID, domain.SocialPlatform(req.Platform), req.URL)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Social link saved", link)
}

// DeleteSocialLink godoc
// @Summary      Delete a social link
// @Tags         passport
// @Produce      json
// @Param        id   path      string  true  "Social link ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /passport/social-links/{id} [delete]
// @Security     BearerAuth
func (h *PassportHandler) DeleteSocialLink(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.passportUC.DeleteSocialLink(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(notFoundOr(err, "Social link not found"))
		return
	}
	response.Success(c, http.StatusOK, "Social link deleted", nil)
}

// uploadFile validates and stores an upload, returning its public URL.
// Images are recompressed; imageOnly rejects PDFs.
func (h *PassportHandler) uploadFile(c *gin.Context, bucket string, imageOnly bool) {
	userID := c.GetString(string(domain.KeyUserID))

	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A file is required"))
		return
	}
	if file.Size > h.maxUploadMB*1024*1024 {
		c.Error(apperror.BadRequest(fmt.Sprintf("File exceeds the %d MB limit", h.maxUploadMB)))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadMB*1024*1024+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	mimeType, imgErr := storage.ValidateImage(data)
	isImage := imgErr == nil
	if !isImage {
		if imageOnly {
			c.Error(apperror.BadRequest(imgErr.Error()))
			return
		}
		mimeType, err = storage.ValidateDocument(data)
		if err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	ext := ".pdf"
	if isImage {
		if compressed, cErr := storage.CompressImage(data, 1200, 80); cErr == nil {
			data = compressed
		}
		mimeType = "image/jpeg"
		ext = ".jpg"
	}

	path := fmt.Sprintf("%s/%d%s", userID, time.Now().UnixNano(), ext)
	url, err := h.storage.Upload(c.Request.Context(), bucket, path, data, mimeType)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "File uploaded", gin.H{"url": url})
}

// notFoundOr maps the repository's not-found sentinel onto a 404.
func notFoundOr(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return err
}
