package usecase

import (
	"context"

	"github.com/kraftory/go-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// DecrementStock выполняет атомарное условное списание:
	// UPDATE ... WHERE stock >= quantity; ноль затронутых строк — ErrInsufficientStock.
	DecrementStock(ctx context.Context, id string, quantity int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	// GetProduct возвращает nil, nil при промахе кэша.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []string) error
}

// SecurityRepository — внешнее KV-хранилище с TTL для межинстансового
// состояния безопасности (CSRF-токены, счётчики rate limit).
type SecurityRepository interface {
	IssueCSRFToken(ctx context.Context) (string, error)
	// ConsumeCSRFToken одноразово проверяет токен: валидный токен
	// инвалидируется при первом успешном использовании.
	// Неизвестный или повторно использованный токен — ErrInvalidCSRFToken.
	ConsumeCSRFToken(ctx context.Context, token string) error
	// CountAttempt увеличивает счётчик попыток для ключа в пределах
	// фиксированного окна и возвращает текущее значение.
	CountAttempt(ctx context.Context, key string) (int64, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *ProductImageObject) (string, error)
	Delete(ctx context.Context, key string) error
}
