package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kraftory/go-backend/pkg/e"
)

// OrderStatus — статус жизненного цикла заказа.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// ParseOrderStatus проверяет и приводит строку к статусу заказа.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered:
		return OrderStatus(s), nil
	default:
		return "", e.ErrInvalidStatus
	}
}

// CanTransitionTo разрешает только последовательное продвижение статуса:
// pending → confirmed → shipped → delivered, без пропусков и возвратов.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	default:
		return false
	}
}

// Order описывает заказ покупателя.
type Order struct {
	ID              string
	OrderNumber     string
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	TotalPrice      int64 // в миллимах
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// NewOrder создаёт заказ в статусе pending с новым идентификатором
// и человекочитаемым номером, производным от текущего времени.
func NewOrder(customerName, customerAddress, customerPhone string, totalPrice int64) *Order {
	id := uuid.NewString()

	return &Order{
		ID:              id,
		OrderNumber:     newOrderNumber(id),
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		CustomerPhone:   customerPhone,
		TotalPrice:      totalPrice,
		Status:          StatusPending,
	}
}

// newOrderNumber формирует номер вида ORD-<unix millis>-<8 hex>.
// Суффикс — первый блок UUID заказа: на четырёх символах всплеск
// в сотню заказов за миллисекунду сталкивается заметно часто,
// восьми хватает, чтобы вероятность коллизии была пренебрежимой.
func newOrderNumber(orderID string) string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), orderID[:8])
}
