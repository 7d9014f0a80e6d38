package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/accounts-backend/internal/domain/errors"
	"github.com/rafabene/accounts-backend/internal/handlers/dto"
	"github.com/rafabene/accounts-backend/internal/handlers/middleware"
	"github.com/rafabene/accounts-backend/internal/services"
)

// AuthHandler lida com requisições HTTP de autenticação
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login autentica por email e senha
// @Summary      Login
// @Description  Autentica e entrega o token no cookie `authorization` como `Bearer <token>`
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credenciais"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrEmailNotFound):
			c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.email_not_found"))
		case errs.Is(err, errors.ErrPasswordMismatch):
			c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.password_mismatch"))
		default:
			c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	// O token no cookie é todo o estado de autenticação; sem expiração
	c.SetCookie(middleware.AuthCookieName, "Bearer "+token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "login.success")})
}
