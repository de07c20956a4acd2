package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"masar-backend/internal/delivery/http/response"
	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := protected.Group("/auth")
	{
		auth.GET("/me", handler.Me)
		auth.POST("/role", handler.AssignRole)
	}
}

// Me godoc
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}

type assignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=candidate recruiter"`
}

// AssignRole godoc
// @Summary      Choose account role
// @Description  Sets the user role once after signup. Candidates and recruiters share the auth flow.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  body      assignRoleRequest  true  "Role"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/role [post]
// @Security     BearerAuth
func (h *AuthHandler) AssignRole(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.AssignRole(c.Request.Context(), userID, req.Role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role assigned", gin.H{"role": req.Role})
}
