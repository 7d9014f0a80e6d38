package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/accounts-backend/internal/domain/errors"
	"github.com/rafabene/accounts-backend/internal/handlers/dto"
	"github.com/rafabene/accounts-backend/internal/handlers/middleware"
	"github.com/rafabene/accounts-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a contas de usuário
type UserHandler struct {
	accountService *services.AccountService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(accountService *services.AccountService) *UserHandler {
	return &UserHandler{
		accountService: accountService,
	}
}

// Register cadastra um novo usuário com perfil
// @Summary      Cadastrar usuário
// @Description  Cria o usuário e o perfil 1:1 em uma única transação
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterUserRequest true "Dados do cadastro"
// @Success      201 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	_, err := h.accountService.Register(c.Request.Context(), services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, dto.ConflictErrorResponseI18n(c, "error.email_already_exists"))
		case errs.Is(err, errors.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		default:
			// Falha transacional: as duas inserções já foram desfeitas
			c.JSON(http.StatusBadRequest, dto.BadRequestErrorResponseI18n(c, "error.user_create_failed"))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: dto.T(c, "user.created")})
}

// GetUser consulta um usuário com o perfil 1:1
// @Summary      Consultar usuário
// @Description  Retorna o usuário com o perfil; data é null quando não existe
// @Tags         users
// @Produce      json
// @Param        userId path int true "ID do usuário"
// @Success      200 {object} dto.DataResponse
// @Router       /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	response := dto.DataResponse{}

	// Contrato preservado: ausência (ou id não numérico) não é erro
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	user, err := h.accountService.GetUser(c.Request.Context(), uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	if user != nil {
		response.Data = dto.ToUserResponse(user)
	}

	c.JSON(http.StatusOK, response)
}

// ChangeName altera o nome do usuário autenticado
// @Summary      Alterar nome
// @Description  Atualiza o nome do perfil e grava o registro de auditoria em uma única transação
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.ChangeNameRequest true "Novo nome"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerCookie
// @Router       /users/name [put]
func (h *UserHandler) ChangeName(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, ""))
		return
	}

	var req dto.ChangeNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	if _, err := h.accountService.ChangeName(c.Request.Context(), userID, req.Name); err != nil {
		// Falha transacional: atualização e histórico já foram desfeitos
		c.JSON(http.StatusBadRequest, dto.BadRequestErrorResponseI18n(c, "error.name_change_failed"))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "user.name_updated")})
}

// ListHistories consulta o log de trocas de nome de um usuário
// @Summary      Consultar histórico de nomes
// @Tags         users
// @Produce      json
// @Param        userId path int true "ID do usuário"
// @Success      200 {object} dto.DataResponse
// @Router       /users/{userId}/histories [get]
func (h *UserHandler) ListHistories(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, dto.DataResponse{Data: []dto.HistoryResponse{}})
		return
	}

	histories, err := h.accountService.ListHistories(c.Request.Context(), uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToHistoryResponses(histories)})
}
