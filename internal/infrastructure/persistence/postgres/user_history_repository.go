package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/accounts-backend/internal/domain/entities"
	"github.com/rafabene/accounts-backend/internal/domain/repositories"
)

// UserHistoryRepository implementa repositories.UserHistoryRepository
type UserHistoryRepository struct {
	db *gorm.DB
}

// NewUserHistoryRepository cria um novo UserHistoryRepository
func NewUserHistoryRepository(db *gorm.DB) repositories.UserHistoryRepository {
	return &UserHistoryRepository{db: db}
}

func (r *UserHistoryRepository) Create(ctx context.Context, history *entities.UserHistory) error {
	model := &UserHistoryModel{
		UserID:     history.UserID,
		BeforeName: history.BeforeName,
		AfterName:  history.AfterName,
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	history.ID = model.ID
	history.CreatedAt = time.Unix(model.CreatedAt, 0)
	return nil
}

func (r *UserHistoryRepository) ListByUserID(ctx context.Context, userID uint) ([]*entities.UserHistory, error) {
	var models []*UserHistoryModel

	db := r.getDB(ctx)
	if err := db.Where("user_id = ?", userID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	histories := make([]*entities.UserHistory, 0, len(models))
	for _, model := range models {
		histories = append(histories, &entities.UserHistory{
			ID:         model.ID,
			UserID:     model.UserID,
			BeforeName: model.BeforeName,
			AfterName:  model.AfterName,
			CreatedAt:  time.Unix(model.CreatedAt, 0),
		})
	}

	return histories, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserHistoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
