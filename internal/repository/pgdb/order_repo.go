package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/internal/repository/pgdb/converter"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/tr"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool     *pgxpool.Pool
	conv     converter.OrderConverter
	itemConv converter.OrderItemConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter, itemConv converter.OrderItemConverter) *OrderRepo {
	return &OrderRepo{
		pool:     pool,
		conv:     conv,
		itemConv: itemConv,
	}
}

const orderColumns = `
	id, order_number, customer_name, customer_address, customer_phone,
	total_price, status, created_at, updated_at
`

// Create сохраняет заказ. Запись выполняется в транзакции вызывающего.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (
			id, order_number, customer_name, customer_address, customer_phone,
			total_price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + orderColumns + `;
	`

	var saved converter.OrderModel
	if err := tx.QueryRow(ctx, query,
		model.ID, model.OrderNumber, model.CustomerName, model.CustomerAddress,
		model.CustomerPhone, model.TotalPrice, model.Status,
	).Scan(
		&saved.ID, &saved.OrderNumber, &saved.CustomerName, &saved.CustomerAddress,
		&saved.CustomerPhone, &saved.TotalPrice, &saved.Status,
		&saved.CreatedAt, &saved.UpdatedAt,
	); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: order %s already exists", whereami.WhereAmI(), order.OrderNumber)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&saved), nil
}

// CreateItem сохраняет позицию заказа со снимками имени и цены товара.
func (o *OrderRepo) CreateItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.itemConv.ToModel(item)
	query := `
		INSERT INTO order_items (
			id, order_id, product_id, quantity, price_at_time, product_name_snapshot
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, order_id, product_id, quantity, price_at_time, product_name_snapshot;
	`

	var saved converter.OrderItemModel
	if err := tx.QueryRow(ctx, query,
		model.ID, model.OrderID, model.ProductID,
		model.Quantity, model.PriceAtTime, model.ProductNameSnapshot,
	).Scan(
		&saved.ID, &saved.OrderID, &saved.ProductID,
		&saved.Quantity, &saved.PriceAtTime, &saved.ProductNameSnapshot,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.itemConv.ToEntity(&saved), nil
}

// GetByID возвращает заказ по идентификатору.
func (o *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1;`

	var model converter.OrderModel
	if err := o.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.OrderNumber, &model.CustomerName, &model.CustomerAddress,
		&model.CustomerPhone, &model.TotalPrice, &model.Status,
		&model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model), nil
}

// List возвращает все заказы, новые — первыми.
func (o *OrderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC;`

	rows, err := o.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.OrderModel, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(
			&model.ID, &model.OrderNumber, &model.CustomerName, &model.CustomerAddress,
			&model.CustomerPhone, &model.TotalPrice, &model.Status,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToArrEntity(models), nil
}

// ListItems возвращает позиции заказа.
func (o *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price_at_time, product_name_snapshot
		FROM order_items
		WHERE order_id = $1;
	`

	rows, err := o.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.OrderItemModel, 0)
	for rows.Next() {
		var model converter.OrderItemModel
		if err := rows.Scan(
			&model.ID, &model.OrderID, &model.ProductID,
			&model.Quantity, &model.PriceAtTime, &model.ProductNameSnapshot,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.itemConv.ToArrEntity(models), nil
}

// UpdateStatus переводит заказ в новый статус. Проверка допустимости
// перехода выполняется на уровне usecase.
func (o *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns + `;
	`

	var model converter.OrderModel
	if err := o.pool.QueryRow(ctx, query, id, string(status)).Scan(
		&model.ID, &model.OrderNumber, &model.CustomerName, &model.CustomerAddress,
		&model.CustomerPhone, &model.TotalPrice, &model.Status,
		&model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model), nil
}
