package services

import (
	"context"

	"github.com/rafabene/accounts-backend/internal/domain/errors"
	"github.com/rafabene/accounts-backend/internal/domain/ports"
	"github.com/rafabene/accounts-backend/internal/domain/repositories"
	"github.com/rafabene/accounts-backend/internal/domain/valueobjects"
	"github.com/rafabene/accounts-backend/internal/infrastructure/auth"
)

// AuthService contém a lógica de autenticação
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login autentica por email e senha e emite o token de acesso.
// Email desconhecido e senha incorreta produzem erros distintos,
// ambos da classe não-autorizado.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	// Normaliza o email da mesma forma que o cadastro
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return "", errors.ErrEmailNotFound
	}

	user, err := s.userRepo.FindByEmail(ctx, normalized.String())
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.ErrEmailNotFound
	}

	if !user.CheckPassword(password) {
		return "", errors.ErrPasswordMismatch
	}

	token, err := s.tokens.Sign(user.UserID)
	if err != nil {
		return "", err
	}

	s.logger.Info("user logged in", "userId", user.UserID)
	return token, nil
}
