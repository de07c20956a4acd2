package v1

import (
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

type RecruiterHandler struct {
	profileUC    domain.ProfileUsecase
	suggestionUC domain.SuggestionUsecase
	storage      *storage.Client
	maxUploadMB  int64
}

// NewRecruiterHandler wires the recruiter-only surface: company profile,
// job management and AI candidate suggestions.
func NewRecruiterHandler(
	protected *gin.RouterGroup,
	profileUC domain.ProfileUsecase,
	suggestionUC domain.SuggestionUsecase,
	jobUC domain.JobUsecase,
	storageClient *storage.Client,
	maxUploadMB int64,
) {
	handler := &RecruiterHandler{
		profileUC:    profileUC,
		suggestionUC: suggestionUC,
		storage:      storageClient,
		maxUploadMB:  maxUploadMB,
	}

	aiLimited := middleware.RateLimitMiddleware(middleware.AIRateLimitConfig())
	uploadLimited := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())

	recruiter := protected.Group("/recruiter")
	recruiter.Use(middleware.RequireRole("recruiter"))
	{
		recruiter.PUT("/company", handler.UpdateCompany)
		recruiter.POST("/company/logo", uploadLimited, handler.UploadLogo)
		recruiter.GET("/suggestions", aiLimited, handler.Suggestions)

		jobHandler := &JobHandler{jobUC: jobUC}
		recruiter.POST("/jobs", jobHandler.CreateJob)
		recruiter.GET("/jobs", jobHandler.ListMyJobs)
		recruiter.PUT("/jobs/:id", jobHandler.UpdateJob)
		recruiter.DELETE("/jobs/:id", jobHandler.DeleteJob)
	}
}

type companyRequest struct {
	CompanyName        *string `json:"company_name"`
	CompanyWebsite     *string `json:"company_website" binding:"omitempty,url"`
	CompanyDescription *string `json:"company_description"`
	CompanyLogoURL     *string `json:"company_logo_url" binding:"omitempty,url"`
	CompanySize        *string `json:"company_size"`
	Industry           *string `json:"industry"`
}

// UpdateCompany godoc
// @Summary      Update company profile
// @Description  Merges the submitted company fields into the recruiter profile
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Param        company  body      companyRequest  true  "Company fields"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /recruiter/company [put]
// @Security     BearerAuth
func (h *RecruiterHandler) UpdateCompany(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.UpdateCompany(c.Request.Context(), userID, &domain.ProfileUpdate{
		CompanyName:        req.CompanyName,
		CompanyWebsite:     req.CompanyWebsite,
		CompanyDescription: req.CompanyDescription,
		CompanyLogoURL:     req.CompanyLogoURL,
		CompanySize:        req.CompanySize,
		Industry:           req.Industry,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company profile updated", profile)
}

// UploadLogo godoc
// @Summary      Upload company logo
// @Tags         recruiter
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Logo image"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /recruiter/company/logo [post]
// @Security     BearerAuth
func (h *RecruiterHandler) UploadLogo(c *gin.Context) {
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

	if _, err := storage.ValidateImage(data); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if compressed, cErr := storage.CompressImage(data, 800, 85); cErr == nil {
		data = compressed
	}

	path := fmt.Sprintf("%s/%d.jpg", userID, time.Now().UnixNano())
	url, err := h.storage.Upload(c.Request.Context(), storage.BucketCompanyLogos, path, data, "image/jpeg")
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	profile, err := h.profileUC.UpdateCompany(c.Request.Context(), userID, &domain.ProfileUpdate{
		CompanyLogoURL: &url,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Logo uploaded", profile)
}

// Suggestions godoc
// @Summary      AI candidate suggestions
// @Description  Matches the recruiter's active jobs against the certified candidate pool
// @Tags         recruiter
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /recruiter/suggestions [get]
// @Security     BearerAuth
func (h *RecruiterHandler) Suggestions(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	suggestions, err := h.suggestionUC.SuggestCandidates(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate suggestions", suggestions)
}
