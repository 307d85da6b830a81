package v1

import (
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/verify-token", handler.VerifyToken)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Admin Login
// @Description  Verify admin credentials and issue a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
	})
}

// VerifyToken godoc
// @Summary      Verify Bearer Token
// @Description  Confirm the presented token is valid and return its claims.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/verify-token [post]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	// The auth middleware already verified the token and stored the claims.
	email := c.GetString(string(domain.KeyAdminEmail))
	role := c.GetString(string(domain.KeyAdminRole))

	response.Success(c, http.StatusOK, "Token is valid", gin.H{
		"user": gin.H{
			"email": email,
			"role":  role,
		},
	})
}
