package repositories

import (
	"context"

	"github.com/rafabene/accounts-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, userID uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// FindByIDWithInfo retorna o usuário com o perfil 1:1 carregado.
	// Retorna (nil, nil) quando não existe — ausência não é erro.
	FindByIDWithInfo(ctx context.Context, userID uint) (*entities.User, error)
}
