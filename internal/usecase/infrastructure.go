package usecase

import (
	"context"

	"github.com/kraftory/go-backend/internal/domain"
)

// Notifier отправляет оператору уведомление о новом заказе.
// Ошибка отправки никогда не должна отменять уже созданный заказ.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
}

// Translator — внешний сервис перевода названий и описаний товаров.
type Translator interface {
	TranslateProductContent(ctx context.Context, name, description string) (*TranslationRes, error)
}

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// TxManager выполняет функцию в рамках одной транзакции БД.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
