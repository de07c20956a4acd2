package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"masar-backend/internal/delivery/http/middleware"
	"masar-backend/internal/delivery/http/response"
	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
)

type ProfileHandler struct {
	profileUC  domain.ProfileUsecase
	passportUC domain.PassportUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase, passportUC domain.PassportUsecase) {
	handler := &ProfileHandler{profileUC: profileUC, passportUC: passportUC}

	aiLimited := middleware.RateLimitMiddleware(middleware.AIRateLimitConfig())

	profiles := protected.Group("/profiles")
	{
		profiles.GET("/me", handler.GetMe)
		profiles.PUT("/me", handler.UpdateMe)
		profiles.GET("/me/passport", handler.GetMyPassport)
		profiles.POST("/me/analysis", aiLimited, handler.GenerateAnalysis)
	}

	// Recruiter-facing marketplace views
	marketplace := protected.Group("/marketplace")
	marketplace.Use(middleware.RequireRole("recruiter"))
	{
		marketplace.GET("/candidates", handler.ListCandidates)
		marketplace.GET("/candidates/:id/passport", handler.GetCandidatePassport)
	}
}

// GetMe godoc
// @Summary      Get my profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profiles/me [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}

// UpdateMe godoc
// @Summary      Update my profile
// @Description  Merges the submitted fields into the profile. Absent fields are left untouched.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        update  body      domain.ProfileUpdate  true  "Partial profile update"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /profiles/me [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.UpdateMyProfile(c.Request.Context(), userID, &upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// GetMyPassport godoc
// @Summary      Get my career passport
// @Description  Returns the profile together with certificates, projects and social links
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/me/passport [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetMyPassport(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	passport, err := h.passportUC.GetPassport(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Career passport", passport)
}

// GenerateAnalysis godoc
// @Summary      Generate holistic profile analysis
// @Description  Runs the AI analysis over the full career passport and persists the result on the profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /profiles/me/analysis [post]
// @Security     BearerAuth
func (h *ProfileHandler) GenerateAnalysis(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	analysis, err := h.profileUC.GenerateAnalysis(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Analysis generated", analysis)
}

// ListCandidates godoc
// @Summary      List certified candidates
// @Description  Marketplace view for recruiters. Only certified candidates appear.
// @Tags         marketplace
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /marketplace/candidates [get]
// @Security     BearerAuth
func (h *ProfileHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.profileUC.ListCertifiedCandidates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Certified candidates", candidates)
}

// GetCandidatePassport godoc
// @Summary      Get a certified candidate's passport
// @Tags         marketplace
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /marketplace/candidates/{id}/passport [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetCandidatePassport(c *gin.Context) {
	passport, err := h.passportUC.GetPublicPassport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate passport", passport)
}
