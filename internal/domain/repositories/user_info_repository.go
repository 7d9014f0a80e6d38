package repositories

import (
	"context"

	"github.com/rafabene/accounts-backend/internal/domain/entities"
)

// UserInfoRepository define a interface para persistência dos perfis
type UserInfoRepository interface {
	Create(ctx context.Context, info *entities.UserInfo) error
	FindByUserID(ctx context.Context, userID uint) (*entities.UserInfo, error)
	UpdateName(ctx context.Context, userID uint, name string) error
}
