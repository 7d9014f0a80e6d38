package dto

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// acceptedGenders são os valores aceitos no cadastro (qualquer caixa);
// a persistência normaliza para maiúsculas
var acceptedGenders = map[string]bool{
	"M":      true,
	"F":      true,
	"MALE":   true,
	"FEMALE": true,
	"OTHER":  true,
}

// RegisterCustomValidators registra as validações customizadas no
// engine de binding do Gin. Deve ser chamado uma vez no startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("gender", validateGender)
}

func validateGender(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return acceptedGenders[value]
}
