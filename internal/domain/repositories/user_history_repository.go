package repositories

import (
	"context"

	"github.com/rafabene/accounts-backend/internal/domain/entities"
)

// UserHistoryRepository define a interface para o log de auditoria de nomes
type UserHistoryRepository interface {
	Create(ctx context.Context, history *entities.UserHistory) error
	ListByUserID(ctx context.Context, userID uint) ([]*entities.UserHistory, error)
}
