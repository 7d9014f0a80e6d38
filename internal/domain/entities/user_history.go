package entities

import "time"

// UserHistory é o registro de auditoria de troca de nome.
// Append-only: exatamente um registro por troca bem-sucedida;
// nunca atualizado ou removido.
type UserHistory struct {
	ID         uint
	UserID     uint
	BeforeName string
	AfterName  string
	CreatedAt  time.Time
}
