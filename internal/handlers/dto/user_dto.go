package dto

import (
	"time"

	"github.com/rafabene/accounts-backend/internal/domain/entities"
)

// RegisterUserRequest representa a requisição de cadastro
type RegisterUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Age          int    `json:"age" binding:"omitempty,gte=0"`
	Gender       string `json:"gender" binding:"required,gender"`
	ProfileImage string `json:"profileImage"`
}

// ChangeNameRequest representa a requisição de troca de nome.
// O usuário alvo vem da identidade autenticada, nunca do corpo.
type ChangeNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// UserInfoResponse representa o perfil 1:1 na resposta de consulta
type UserInfoResponse struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	ProfileImage string `json:"profileImage"`
}

// UserResponse representa a resposta da consulta de usuário
type UserResponse struct {
	UserID    uint              `json:"userId"`
	Email     string            `json:"email"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	UserInfo  *UserInfoResponse `json:"userInfo,omitempty"`
}

// HistoryResponse representa um registro de auditoria de nome
type HistoryResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	BeforeName string    `json:"beforeName"`
	AfterName  string    `json:"afterName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MessageResponse é a resposta de sucesso com mensagem
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse envelopa a resposta de consulta; Data é null quando o
// usuário não existe (ausência não é erro)
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	response := UserResponse{
		UserID:    user.UserID,
		Email:     user.Email.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.Info != nil {
		response.UserInfo = &UserInfoResponse{
			Name:         user.Info.Name,
			Age:          user.Info.Age,
			Gender:       user.Info.Gender.String(),
			ProfileImage: user.Info.ProfileImage,
		}
	}

	return response
}

// ToHistoryResponses converte registros de auditoria para a resposta
func ToHistoryResponses(histories []*entities.UserHistory) []HistoryResponse {
	responses := make([]HistoryResponse, len(histories))
	for i, history := range histories {
		responses[i] = HistoryResponse{
			ID:         history.ID,
			UserID:     history.UserID,
			BeforeName: history.BeforeName,
			AfterName:  history.AfterName,
			CreatedAt:  history.CreatedAt,
		}
	}
	return responses
}
