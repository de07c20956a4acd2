package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"masar-backend/internal/delivery/http/response"
	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/matching", handler.ListMatching)
	}
}

// List godoc
// @Summary      List active job postings
// @Description  Marketplace job board with company details
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListPublicJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs", jobs)
}

// ListMatching godoc
// @Summary      List jobs matched to me
// @Description  Read-only view over matches produced by the external matching pipeline
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/matching [get]
// @Security     BearerAuth
func (h *JobHandler) ListMatching(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	matches, err := h.jobUC.ListMatchingJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Matched jobs", matches)
}

type jobRequest struct {
	Title          string   `json:"title" binding:"required,min=3,max=120"`
	Description    string   `json:"description" binding:"required"`
	Location       string   `json:"location"`
	RequiredSkills []string `json:"required_skills"`
	IsActive       *bool    `json:"is_active"`
}

func (r *jobRequest) toPosting() *domain.JobPosting {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return &domain.JobPosting{
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		RequiredSkills: r.RequiredSkills,
		IsActive:       isActive,
	}
}

// Recruiter job management lives under /recruiter and is role-guarded by the
// router.

// CreateJob godoc
// @Summary      Create a job posting
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Param        job  body      jobRequest  true  "Job posting"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /recruiter/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), userID, req.toPosting())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListMyJobs godoc
// @Summary      List my job postings
// @Tags         recruiter
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /recruiter/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListMyJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My jobs", jobs)
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      jobRequest  true  "Job posting"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recruiter/jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := req.toPosting()
	job.ID = c.Param("id")

	updated, err := h.jobUC.UpdateJob(c.Request.Context(), userID, job)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", updated)
}

// DeleteJob godoc
// @Summary      Delete a job posting
// @Tags         recruiter
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recruiter/jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.jobUC.DeleteJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}
