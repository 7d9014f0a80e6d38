package entities

import "errors"

// UserInfo é a extensão 1:1 de User com os dados de perfil.
// Criado atomicamente com o User; apenas Name é mutável depois.
type UserInfo struct {
	ID           uint
	UserID       uint
	Name         string
	Age          int
	Gender       Gender
	ProfileImage string
}

// Validate valida regras de negócio da entidade UserInfo
func (i *UserInfo) Validate() error {
	if i.Name == "" {
		return errors.New("name is required")
	}

	if i.Age < 0 {
		return errors.New("age must not be negative")
	}

	return nil
}
