package entities

import "strings"

// Gender representa o gênero informado no cadastro.
// Persistido sempre em maiúsculas.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// NormalizeGender converte o valor recebido para a forma canônica (maiúsculas)
func NormalizeGender(value string) Gender {
	return Gender(strings.ToUpper(strings.TrimSpace(value)))
}

// String retorna o valor do gênero
func (g Gender) String() string {
	return string(g)
}
