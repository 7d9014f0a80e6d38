package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/accounts-backend/internal/domain/entities"
	"github.com/rafabene/accounts-backend/internal/domain/repositories"
)

// UserInfoRepository implementa repositories.UserInfoRepository
type UserInfoRepository struct {
	db *gorm.DB
}

// NewUserInfoRepository cria um novo UserInfoRepository
func NewUserInfoRepository(db *gorm.DB) repositories.UserInfoRepository {
	return &UserInfoRepository{db: db}
}

func (r *UserInfoRepository) Create(ctx context.Context, info *entities.UserInfo) error {
	model := toInfoModel(info)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	info.ID = model.ID
	return nil
}

func (r *UserInfoRepository) FindByUserID(ctx context.Context, userID uint) (*entities.UserInfo, error) {
	var model UserInfoModel

	db := r.getDB(ctx)
	if err := db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toInfoEntity(&model), nil
}

func (r *UserInfoRepository) UpdateName(ctx context.Context, userID uint, name string) error {
	db := r.getDB(ctx)
	return db.Model(&UserInfoModel{}).Where("user_id = ?", userID).Update("name", name).Error
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserInfoRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Conversores
func toInfoModel(info *entities.UserInfo) *UserInfoModel {
	return &UserInfoModel{
		ID:           info.ID,
		UserID:       info.UserID,
		Name:         info.Name,
		Age:          info.Age,
		Gender:       info.Gender.String(),
		ProfileImage: info.ProfileImage,
	}
}

func toInfoEntity(model *UserInfoModel) *entities.UserInfo {
	return &entities.UserInfo{
		ID:           model.ID,
		UserID:       model.UserID,
		Name:         model.Name,
		Age:          model.Age,
		Gender:       entities.Gender(model.Gender),
		ProfileImage: model.ProfileImage,
	}
}
