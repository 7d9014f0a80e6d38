package postgres

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/rafabene/accounts-backend/internal/domain/ports"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// readCommitted é o nível de isolamento das operações multi-escrita
// do serviço (cadastro e troca de nome).
var readCommitted = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// UnitOfWork implementa ports.UnitOfWork sobre transações GORM
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork cria um novo UnitOfWork
func NewUnitOfWork(db *gorm.DB) ports.UnitOfWork {
	return &UnitOfWork{db: db}
}

// begin abre a transação em READ COMMITTED quando o driver suporta
// níveis de isolamento (SQLite aceita apenas o default)
func (uow *UnitOfWork) begin(ctx context.Context) *gorm.DB {
	if uow.db.Dialector.Name() == "sqlite" {
		return uow.db.WithContext(ctx).Begin()
	}
	return uow.db.WithContext(ctx).Begin(readCommitted)
}

func (uow *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := uow.begin(ctx)
	if tx.Error != nil {
		return ctx, tx.Error
	}
	return context.WithValue(ctx, txKey, tx), nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok {
		return nil
	}
	return tx.Commit().Error
}

func (uow *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok {
		return nil
	}
	return tx.Rollback().Error
}

// WithTransaction executa fn dentro de uma única transação READ COMMITTED.
// Commit apenas se fn retornar nil; qualquer erro causa rollback completo.
func (uow *UnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx := uow.begin(ctx)
	if tx.Error != nil {
		return tx.Error
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
