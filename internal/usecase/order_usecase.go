package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/internal/validation"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
)

// MinOrderTotalMillimes — минимальная сумма заказа (стоимость доставки, 10 TND).
// Отсекает подделанную на клиенте нулевую сумму.
const MinOrderTotalMillimes = 10_000

// OrderUseCase реализует конвейер оформления заказа и админские операции над заказами.
type OrderUseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	txManager   TxManager
	notifier    Notifier
	logger      logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	txManager TxManager,
	notifier Notifier,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateOrder проверяет форму чекаута, атомарно создаёт заказ с позициями
// и списанием остатков, затем отправляет уведомление (best-effort).
//
// Порядок предусловий фиксирован, отказ — на первом нарушении:
// валидаторы полей → непустой список позиций → валидаторы позиций →
// существование товара и остаток → заявленная сумма не ниже минимальной.
func (o *OrderUseCase) CreateOrder(ctx context.Context, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.CreateOrder"

	if err := o.validateCustomer(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(req.Items) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyOrder)
	}

	for _, item := range req.Items {
		if err := validation.ProductID(item.ProductID); err != nil {
			return nil, e.Wrap(op, err)
		}
		if err := validation.Quantity(item.Quantity); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	// Предварительная проверка существования и остатков — для быстрого
	// отказа с конкретной причиной. Авторитетная защита от гонки —
	// условное списание внутри транзакции ниже.
	products := make(map[string]*domain.Product, len(req.Items))
	for _, item := range req.Items {
		product, err := o.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if int64(product.Stock) < item.Quantity {
			return nil, e.Wrap(op, e.ErrInsufficientStock)
		}
		products[item.ProductID] = product
	}

	if req.TotalPrice < MinOrderTotalMillimes {
		return nil, e.Wrap(op, e.ErrInvalidTotal)
	}

	order := domain.NewOrder(req.FullName, req.Address, req.Phone, req.TotalPrice)

	var items []*domain.OrderItem
	err := o.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := o.orderRepo.Create(ctx, order)
		if err != nil {
			return err
		}
		order = created

		for _, itemReq := range req.Items {
			product := products[itemReq.ProductID]

			// Снимки имени и цены берутся из строки товара, а не из
			// клиентского payload: последующие правки товара не меняют
			// исторические заказы, а клиент не может навязать цену.
			item := domain.NewOrderItem(
				uuid.NewString(),
				order.ID,
				product.ID,
				int32(itemReq.Quantity),
				product.Price,
				product.Name,
			)

			createdItem, err := o.orderRepo.CreateItem(ctx, item)
			if err != nil {
				return err
			}
			items = append(items, createdItem)

			if err := o.productRepo.DecrementStock(ctx, product.ID, int32(itemReq.Quantity)); err != nil {
				return err
			}
		}

		return o.appendOrderCreatedEvent(ctx, order, items)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Уведомление — строго best-effort: заказ уже зафиксирован.
	if err := o.notifier.SendOrderConfirmation(ctx, order, items); err != nil {
		o.logger.Warnf("order %s: confirmation email failed: %v", order.OrderNumber, e.Wrap(op, err))
	}

	o.invalidateProducts(ctx, op, req.Items)

	return order, nil
}

// ListOrders возвращает заказы для админской панели, новые — первыми.
func (o *OrderUseCase) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// GetOrderItems возвращает позиции заказа.
func (o *OrderUseCase) GetOrderItems(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	const op = "OrderUseCase.GetOrderItems"

	if _, err := o.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, e.Wrap(op, err)
	}

	items, err := o.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return items, nil
}

// UpdateOrderStatus продвигает статус заказа строго по цепочке
// pending → confirmed → shipped → delivered.
func (o *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID string, status string) (*domain.Order, error) {
	const op = "OrderUseCase.UpdateOrderStatus"

	newStatus, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, e.Wrap(op, e.ErrInvalidStatusTransition)
	}

	updated, err := o.orderRepo.UpdateStatus(ctx, orderID, newStatus)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// validateCustomer прогоняет поля покупателя через общие валидаторы.
func (o *OrderUseCase) validateCustomer(req *CreateOrderReq) error {
	if err := validation.FullName(req.FullName); err != nil {
		return err
	}
	if err := validation.Phone(req.Phone); err != nil {
		return err
	}
	return validation.Address(req.Address)
}

// appendOrderCreatedEvent записывает интеграционное событие в outbox
// в той же транзакции, что и заказ.
func (o *OrderUseCase) appendOrderCreatedEvent(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	type eventItem struct {
		ProductID string `json:"product_id"`
		Quantity  int32  `json:"quantity"`
		Price     int64  `json:"price_at_time"`
	}

	payload := struct {
		OrderID     string      `json:"order_id"`
		OrderNumber string      `json:"order_number"`
		TotalPrice  int64       `json:"total_price"`
		CreatedAt   time.Time   `json:"created_at"`
		Items       []eventItem `json:"items"`
	}{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalPrice:  order.TotalPrice,
		CreatedAt:   time.Now().UTC(),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, eventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.PriceAtTime,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), OrderCreatedEvent, order.ID, data))
	return err
}

// invalidateProducts сбрасывает кэш затронутых товаров (остатки изменились).
func (o *OrderUseCase) invalidateProducts(ctx context.Context, op string, items []OrderItemReq) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	if err := o.cacheRepo.DeleteProducts(ctx, ids); err != nil {
		o.logger.Warnf("failed to invalidate product cache: %v", e.Wrap(op, err))
	}
}
