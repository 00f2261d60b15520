package tr

import (
	"context"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/kraftory/go-backend/pkg/e"
)

// ctxKey — приватный тип ключа контекста для объекта транзакции.
type ctxKey struct{}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(ctxKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}

// Manager управляет жизненным циклом транзакций PostgreSQL.
type Manager struct {
	pool transaction.Transactional
}

func NewManager(pool transaction.Transactional) *Manager {
	return &Manager{pool: pool}
}

// WithinTransaction выполняет fn в рамках одной транзакции.
// Объект транзакции кладётся в контекст и доступен репозиториям через TxFromCtx.
// При ошибке fn транзакция откатывается, иначе — коммитится.
func (m *Manager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "tr.Manager.WithinTransaction"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.pool)
	if err != nil {
		return e.Wrap(op, err)
	}

	defer func() {
		if tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	ctx = context.WithValue(ctx, ctxKey{}, tx.Transaction())

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
