package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"masar-backend/internal/delivery/http/middleware"
	"masar-backend/internal/delivery/http/response"
	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
)

type LandingHandler struct {
	suggestionUC domain.SuggestionUsecase
}

func NewLandingHandler(public *gin.RouterGroup, suggestionUC domain.SuggestionUsecase) {
	handler := &LandingHandler{suggestionUC: suggestionUC}

	landing := public.Group("/landing")
	landing.Use(middleware.RateLimitMiddleware(middleware.LandingRateLimitConfig()))
	{
		landing.POST("/teaser", handler.Teaser)
	}
}

type teaserRequest struct {
	Input string `json:"input" binding:"required,max=2000"`
}

// Teaser godoc
// @Summary      Landing-page teaser
// @Description  Generates a short pitch for an anonymous visitor's stated need
// @Tags         landing
// @Accept       json
// @Produce      json
// @Param        input  body      teaserRequest  true  "Visitor input"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Failure      502    {object}  response.Response
// @Router       /landing/teaser [post]
func (h *LandingHandler) Teaser(c *gin.Context) {
	var req teaserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	teaser, err := h.suggestionUC.LandingTeaser(c.Request.Context(), req.Input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Teaser generated", gin.H{"teaser": teaser})
}
