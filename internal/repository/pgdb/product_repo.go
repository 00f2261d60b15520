package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/internal/repository/pgdb/converter"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/tr"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = `
	id, name, name_en, name_ar,
	description, description_en, description_ar,
	price, image_url, image_url2, image_url3,
	stock, created_at, updated_at
`

// Create сохраняет новый товар. Запись выполняется в транзакции вызывающего.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (
			id, name, name_en, name_ar,
			description, description_en, description_ar,
			price, image_url, image_url2, image_url3, stock
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns + `;
	`

	var saved converter.ProductModel
	if err := tx.QueryRow(ctx, query,
		model.ID, model.Name, model.NameEn, model.NameAr,
		model.Description, model.DescriptionEn, model.DescriptionAr,
		model.Price, model.ImageURL, model.ImageURL2, model.ImageURL3, model.Stock,
	).Scan(
		&saved.ID, &saved.Name, &saved.NameEn, &saved.NameAr,
		&saved.Description, &saved.DescriptionEn, &saved.DescriptionAr,
		&saved.Price, &saved.ImageURL, &saved.ImageURL2, &saved.ImageURL3,
		&saved.Stock, &saved.CreatedAt, &saved.UpdatedAt,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&saved), nil
}

// Update перезаписывает все редактируемые поля товара.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		UPDATE products SET
			name = $2, name_en = $3, name_ar = $4,
			description = $5, description_en = $6, description_ar = $7,
			price = $8, image_url = $9, image_url2 = $10, image_url3 = $11,
			stock = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns + `;
	`

	var saved converter.ProductModel
	if err := tx.QueryRow(ctx, query,
		model.ID, model.Name, model.NameEn, model.NameAr,
		model.Description, model.DescriptionEn, model.DescriptionAr,
		model.Price, model.ImageURL, model.ImageURL2, model.ImageURL3, model.Stock,
	).Scan(
		&saved.ID, &saved.Name, &saved.NameEn, &saved.NameAr,
		&saved.Description, &saved.DescriptionEn, &saved.DescriptionAr,
		&saved.Price, &saved.ImageURL, &saved.ImageURL2, &saved.ImageURL3,
		&saved.Stock, &saved.CreatedAt, &saved.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&saved), nil
}

// Delete удаляет товар. Исторические позиции заказов сохраняются:
// order_items не ссылается на products через FK, снимки имени и цены
// остаются в самой строке позиции.
func (p *ProductRepo) Delete(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// GetByID возвращает товар по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	var model converter.ProductModel
	if err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.NameEn, &model.NameAr,
		&model.Description, &model.DescriptionEn, &model.DescriptionAr,
		&model.Price, &model.ImageURL, &model.ImageURL2, &model.ImageURL3,
		&model.Stock, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// List возвращает каталог, новые товары — первыми.
func (p *ProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC;`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.NameEn, &model.NameAr,
			&model.Description, &model.DescriptionEn, &model.DescriptionAr,
			&model.Price, &model.ImageURL, &model.ImageURL2, &model.ImageURL3,
			&model.Stock, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// DecrementStock условно списывает остаток. Списание атомарно: строка
// обновляется только если остатка хватает, иначе возвращается
// ErrInsufficientStock и транзакция вызывающего откатывается.
func (p *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int32) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1;
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrInsufficientStock)
	}

	return nil
}
