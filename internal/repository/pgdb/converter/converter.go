//go:generate goverter gen github.com/kraftory/go-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOrderStatus
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []*ProductModel) []*domain.Product
}

// OrderConverter преобразует сущности Order между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOrderStatus
// goverter:extend ConvertOrderStatusToString
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	ToEntity(model *OrderModel) *domain.Order
	ToArrEntity(models []*OrderModel) []*domain.Order
}

// OrderItemConverter преобразует сущности OrderItem между domain и моделью PostgreSQL.
// goverter:converter
type OrderItemConverter interface {
	ToModel(entity *domain.OrderItem) *OrderItemModel
	ToEntity(model *OrderItemModel) *domain.OrderItem
	ToArrEntity(models []*OrderItemModel) []*domain.OrderItem
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutboxStatus
// goverter:extend ConvertOutboxStatusToString
// goverter:extend ConvertOutboxEventType
// goverter:extend ConvertOutboxEventTypeToString
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOrderStatus(s string) domain.OrderStatus {
	return domain.OrderStatus(s)
}

func ConvertOrderStatusToString(s domain.OrderStatus) string {
	return string(s)
}

func ConvertOutboxStatus(s string) usecase.OutboxStatus {
	return usecase.OutboxStatus(s)
}

func ConvertOutboxStatusToString(s usecase.OutboxStatus) string {
	return string(s)
}

func ConvertOutboxEventType(t string) usecase.OutboxEventType {
	return usecase.OutboxEventType(t)
}

func ConvertOutboxEventTypeToString(t usecase.OutboxEventType) string {
	return string(t)
}
