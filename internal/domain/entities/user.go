package entities

import (
	"errors"
	"time"

	"github.com/rafabene/accounts-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa o registro de identidade de uma conta.
// Criado uma única vez no cadastro; nunca atualizado ou removido neste escopo.
type User struct {
	UserID    uint
	Email     valueobjects.Email
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Info é o perfil 1:1 do usuário (nil quando não carregado)
	Info *UserInfo
}

// CheckPassword compara a senha informada com a armazenada.
// Comparação por igualdade exata — contrato comportamental do serviço.
func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Password == "" {
		return errors.New("password is required")
	}

	return nil
}
