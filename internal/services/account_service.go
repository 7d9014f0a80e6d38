package services

import (
	"context"

	"github.com/rafabene/accounts-backend/internal/domain/entities"
	"github.com/rafabene/accounts-backend/internal/domain/errors"
	"github.com/rafabene/accounts-backend/internal/domain/ports"
	"github.com/rafabene/accounts-backend/internal/domain/repositories"
	"github.com/rafabene/accounts-backend/internal/domain/valueobjects"
)

// AccountService contém a lógica de negócio de contas de usuário
type AccountService struct {
	userRepo    repositories.UserRepository
	infoRepo    repositories.UserInfoRepository
	historyRepo repositories.UserHistoryRepository
	uow         ports.UnitOfWork
	notifier    ports.HistoryNotifier
	logger      ports.Logger
}

// NewAccountService cria um novo AccountService.
// notifier pode ser nil quando não há consumidores de auditoria.
func NewAccountService(
	userRepo repositories.UserRepository,
	infoRepo repositories.UserInfoRepository,
	historyRepo repositories.UserHistoryRepository,
	uow ports.UnitOfWork,
	notifier ports.HistoryNotifier,
	logger ports.Logger,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		infoRepo:    infoRepo,
		historyRepo: historyRepo,
		uow:         uow,
		notifier:    notifier,
		logger:      logger,
	}
}

// RegisterInput representa os dados para cadastrar um usuário
type RegisterInput struct {
	Email        string
	Password     string
	Name         string
	Age          int
	Gender       string
	ProfileImage string
}

// Register cadastra um novo usuário com seu perfil.
// As duas inserções (users e user_infos) acontecem dentro de uma única
// transação: qualquer falha desfaz as duas.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	s.logger.Info("registering user", "email", input.Email)

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	// Verificação amigável de duplicidade; a garantia final é o
	// índice único da coluna email
	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	user := &entities.User{
		Email:    email,
		Password: input.Password,
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		info := &entities.UserInfo{
			UserID:       user.UserID,
			Name:         input.Name,
			Age:          input.Age,
			Gender:       entities.NormalizeGender(input.Gender),
			ProfileImage: input.ProfileImage,
		}

		if err := s.infoRepo.Create(txCtx, info); err != nil {
			return err
		}

		user.Info = info
		return nil
	})
	if err != nil {
		s.logger.Error("user registration failed", "email", email.String(), "error", err)
		return nil, errors.ErrUserCreateFailed
	}

	s.logger.Info("user registered", "userId", user.UserID, "email", email.String())
	return user, nil
}

// GetUser busca um usuário com o perfil 1:1 carregado.
// Retorna (nil, nil) quando não existe — ausência não é erro.
func (s *AccountService) GetUser(ctx context.Context, userID uint) (*entities.User, error) {
	return s.userRepo.FindByIDWithInfo(ctx, userID)
}

// ChangeName altera o nome do usuário e grava o registro de auditoria.
// A atualização do perfil e a inserção do histórico acontecem dentro de
// uma única transação: qualquer falha desfaz as duas.
func (s *AccountService) ChangeName(ctx context.Context, userID uint, newName string) (*entities.UserHistory, error) {
	info, err := s.infoRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, errors.ErrUserNotFound
	}

	history := &entities.UserHistory{
		UserID:     userID,
		BeforeName: info.Name,
		AfterName:  newName,
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.infoRepo.UpdateName(txCtx, userID, newName); err != nil {
			return err
		}

		return s.historyRepo.Create(txCtx, history)
	})
	if err != nil {
		s.logger.Error("name change failed", "userId", userID, "error", err)
		return nil, errors.ErrNameChangeFailed
	}

	s.logger.Info("user name changed", "userId", userID)

	if s.notifier != nil {
		s.notifier.NotifyNameChange(ports.NameChangeEvent{
			UserID:     userID,
			BeforeName: history.BeforeName,
			AfterName:  history.AfterName,
		})
	}

	return history, nil
}

// ListHistories retorna o log de trocas de nome de um usuário
func (s *AccountService) ListHistories(ctx context.Context, userID uint) ([]*entities.UserHistory, error) {
	return s.historyRepo.ListByUserID(ctx, userID)
}
