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

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
	storage      *storage.Client
	maxUploadMB  int64
}

func NewOnboardingHandler(protected *gin.RouterGroup, onboardingUC domain.OnboardingUsecase, storageClient *storage.Client, maxUploadMB int64) {
	handler := &OnboardingHandler{
		onboardingUC: onboardingUC,
		storage:      storageClient,
		maxUploadMB:  maxUploadMB,
	}

	aiLimited := middleware.RateLimitMiddleware(middleware.AIRateLimitConfig())
	uploadLimited := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())

	onboarding := protected.Group("/onboarding")
	{
		onboarding.GET("/state", handler.GetState)
		onboarding.POST("/advance", handler.Advance)
		onboarding.POST("/cv/text", aiLimited, handler.ParseCVText)
		onboarding.POST("/cv/document", aiLimited, uploadLimited, handler.ParseCVDocument)
		onboarding.POST("/photo", uploadLimited, handler.UploadPhoto)
		onboarding.POST("/assessment/submit", aiLimited, handler.SubmitAssessment)
	}
}

// GetState godoc
// @Summary      Get onboarding state
// @Description  Returns the profile snapshot, the derived stage, and the question set when the stage is the assessment
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /onboarding/state [get]
// @Security     BearerAuth
func (h *OnboardingHandler) GetState(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	state, err := h.onboardingUC.GetState(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding state", state)
}

// Advance godoc
// @Summary      Advance onboarding
// @Description  Persists the submitted profile fields, recomputes the stage, and returns the new state
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        update  body      domain.ProfileUpdate  true  "Partial profile update"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /onboarding/advance [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Advance(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	state, err := h.onboardingUC.Advance(c.Request.Context(), userID, &upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding advanced", state)
}

type parseCVTextRequest struct {
	CVText string `json:"cv_text" binding:"required"`
}

// ParseCVText godoc
// @Summary      Parse CV text
// @Description  Extracts structured profile data from pasted CV text. Nothing is persisted; the client submits the extraction via advance.
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        cv   body      parseCVTextRequest  true  "CV text"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /onboarding/cv/text [post]
// @Security     BearerAuth
func (h *OnboardingHandler) ParseCVText(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req parseCVTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	extraction, err := h.onboardingUC.ParseCVText(c.Request.Context(), userID, req.CVText)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV parsed", extraction)
}

// ParseCVDocument godoc
// @Summary      Parse CV document
// @Description  Extracts structured profile data from an uploaded CV file (PDF)
// @Tags         onboarding
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CV document"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /onboarding/cv/document [post]
// @Security     BearerAuth
func (h *OnboardingHandler) ParseCVDocument(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	data, err := h.readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	mimeType, err := storage.ValidateDocument(data)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	extraction, err := h.onboardingUC.ParseCVDocument(c.Request.Context(), userID, data, mimeType)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV parsed", extraction)
}

// UploadPhoto godoc
// @Summary      Upload profile photo
// @Description  Validates, compresses and stores the photo, then advances onboarding with the photo URL
// @Tags         onboarding
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Profile photo"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /onboarding/photo [post]
// @Security     BearerAuth
func (h *OnboardingHandler) UploadPhoto(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	data, err := h.readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	if _, err := storage.ValidateImage(data); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	compressed, err := storage.CompressImage(data, 1200, 80)
	if err != nil {
		// Fall back to the original bytes when the image resists re-encoding.
		compressed = data
	}

	path := fmt.Sprintf("%s/%d.jpg", userID, time.Now().UnixNano())
	url, err := h.storage.Upload(c.Request.Context(), storage.BucketAvatars, path, compressed, "image/jpeg")
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	state, err := h.onboardingUC.Advance(c.Request.Context(), userID, &domain.ProfileUpdate{PhotoURL: &url})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Photo uploaded", state)
}

type submitAssessmentRequest struct {
	Answers []domain.UserAnswer `json:"answers" binding:"required"`
}

// SubmitAssessment godoc
// @Summary      Submit assessment answers
// @Description  Evaluates the full answer set, persists the score and certification outcome, and returns the resulting stage
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        submission  body      submitAssessmentRequest  true  "Answers keyed by question text"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      409         {object}  response.Response
// @Failure      502         {object}  response.Response
// @Router       /onboarding/assessment/submit [post]
// @Security     BearerAuth
func (h *OnboardingHandler) SubmitAssessment(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req submitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.onboardingUC.SubmitAssessment(c.Request.Context(), userID, req.Answers)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Assessment evaluated", result)
}

// readUpload reads the "file" form field enforcing the configured size cap.
func (h *OnboardingHandler) readUpload(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, apperror.BadRequest("A file is required")
	}
	if file.Size > h.maxUploadMB*1024*1024 {
		return nil, apperror.BadRequest(fmt.Sprintf("File exceeds the %d MB limit", h.maxUploadMB))
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadMB*1024*1024+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return data, nil
}
