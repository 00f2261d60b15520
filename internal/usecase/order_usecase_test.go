package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/pkg/e"
)

// nopLogger — заглушка логгера для тестов.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeProductRepo хранит товары в памяти и имитирует условное списание остатков.
type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if _, ok := f.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	result := make([]*domain.Product, 0, len(f.products))
	for _, p := range f.products {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, id string, quantity int32) error {
	product, ok := f.products[id]
	if !ok || product.Stock < quantity {
		return e.ErrInsufficientStock
	}
	product.Stock -= quantity
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	items  map[string][]*domain.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[string]*domain.Order),
		items:  make(map[string][]*domain.OrderItem),
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) CreateItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	f.items[item.OrderID] = append(f.items[item.OrderID], item)
	return item, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	result := make([]*domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		result = append(result, o)
	}
	return result, nil
}

func (f *fakeOrderRepo) ListItems(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	order.Status = status
	return order, nil
}

type fakeOutboxRepo struct {
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

// fakeCacheRepo защищён мьютексом: GetProduct в usecase дозаполняет кэш
// из фоновой горутины.
type fakeCacheRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	deleted  []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeCacheRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id], nil
}

func (f *fakeCacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = product
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids...)
	for _, id := range ids {
		delete(f.products, id)
	}
	return nil
}

// fakeTxManager исполняет fn без настоящей транзакции, но фиксирует
// снимок остатков для имитации отката.
type fakeTxManager struct {
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	stockSnapshot := make(map[string]int32, len(f.productRepo.products))
	for id, p := range f.productRepo.products {
		stockSnapshot[id] = p.Stock
	}

	err := fn(ctx)
	if err != nil {
		// откат: возвращаем остатки и выбрасываем созданные заказы
		for id, stock := range stockSnapshot {
			if p, ok := f.productRepo.products[id]; ok {
				p.Stock = stock
			}
		}
		f.orderRepo.orders = make(map[string]*domain.Order)
		f.orderRepo.items = make(map[string][]*domain.OrderItem)
	}
	return err
}

type fakeNotifier struct {
	sent []*domain.Order
	err  error
}

func (f *fakeNotifier) SendOrderConfirmation(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, order)
	return nil
}

func newTestProduct(name string, price int64, stock int32) *domain.Product {
	return domain.NewProduct(uuid.NewString(), name, "description "+name, price, "https://cdn.example/"+name+".jpg", stock)
}

type orderFixture struct {
	uc          *OrderUseCase
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
	outboxRepo  *fakeOutboxRepo
	cacheRepo   *fakeCacheRepo
	notifier    *fakeNotifier
}

func newOrderFixture(products ...*domain.Product) *orderFixture {
	productRepo := newFakeProductRepo(products...)
	orderRepo := newFakeOrderRepo()
	outboxRepo := &fakeOutboxRepo{}
	cacheRepo := newFakeCacheRepo()
	notifier := &fakeNotifier{}
	txManager := &fakeTxManager{productRepo: productRepo, orderRepo: orderRepo}

	return &orderFixture{
		uc:          NewOrderUC(orderRepo, productRepo, outboxRepo, cacheRepo, txManager, notifier, nopLogger{}),
		productRepo: productRepo,
		orderRepo:   orderRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		notifier:    notifier,
	}
}

func validOrderReq(productID string, quantity int64, total int64) *CreateOrderReq {
	return NewCreateOrderReq(
		"Omar Khalil",
		"12 Rue de Carthage, Tunis",
		"+216 22345678",
		[]OrderItemReq{{ProductID: productID, Quantity: quantity}},
		total,
	)
}

func TestCreateOrder_Success(t *testing.T) {
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)

	order, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 3, 179_700))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Contains(t, order.OrderNumber, "ORD-")
	assert.Equal(t, int32(2), product.Stock, "остаток должен уменьшиться с 5 до 2")

	items := f.orderRepo.items[order.ID]
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, int32(3), items[0].Quantity)
	assert.Equal(t, product.Price, items[0].PriceAtTime)
	assert.Equal(t, product.Name, items[0].ProductNameSnapshot)

	require.Len(t, f.outboxRepo.events, 1)
	assert.Equal(t, OrderCreatedEvent, f.outboxRepo.events[0].EventType)
	assert.Equal(t, order.ID, f.outboxRepo.events[0].AggregateID)

	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.cacheRepo.deleted, product.ID)
}

func TestCreateOrder_SnapshotIgnoresClientPrice(t *testing.T) {
	product := newTestProduct("poterie", 25_000, 10)
	f := newOrderFixture(product)

	order, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 1, 25_000))
	require.NoError(t, err)

	// снимок цены — из строки товара, что бы клиент ни прислал в total
	assert.Equal(t, int64(25_000), f.orderRepo.items[order.ID][0].PriceAtTime)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)

	_, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 6, 359_400))
	assert.ErrorIs(t, err, e.ErrInsufficientStock)

	assert.Equal(t, int32(5), product.Stock, "остаток не должен меняться")
	assert.Empty(t, f.orderRepo.orders)
	assert.Empty(t, f.outboxRepo.events)
	assert.Empty(t, f.notifier.sent)
}

func TestCreateOrder_RaceLostInsideTransaction(t *testing.T) {
	// Предварительная проверка проходит, но списание внутри транзакции
	// проигрывает гонку — заказ целиком откатывается.
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)

	raced := false
	f.uc.txManager = &hookTxManager{
		inner: &fakeTxManager{productRepo: f.productRepo, orderRepo: f.orderRepo},
		before: func() {
			if !raced {
				raced = true
				product.Stock = 1 // конкурирующий заказ успел раньше
			}
		},
	}

	_, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 3, 179_700))
	assert.ErrorIs(t, err, e.ErrInsufficientStock)
	assert.Empty(t, f.orderRepo.orders)
}

type hookTxManager struct {
	inner  TxManager
	before func()
}

func (h *hookTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	h.before()
	return h.inner.WithinTransaction(ctx, fn)
}

func TestCreateOrder_ValidationOrder(t *testing.T) {
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)

	tests := []struct {
		name    string
		mutate  func(req *CreateOrderReq)
		wantErr error
	}{
		{"bad name first", func(r *CreateOrderReq) { r.FullName = "Om"; r.Phone = "bad" }, e.ErrFullNameLength},
		{"bad phone before address", func(r *CreateOrderReq) { r.Phone = "123"; r.Address = "x" }, e.ErrPhoneFormat},
		{"bad address", func(r *CreateOrderReq) { r.Address = "ab" }, e.ErrAddressLength},
		{"empty items", func(r *CreateOrderReq) { r.Items = nil }, e.ErrEmptyOrder},
		{"bad product id", func(r *CreateOrderReq) { r.Items[0].ProductID = "id with spaces!" }, e.ErrProductIDFormat},
		{"zero quantity", func(r *CreateOrderReq) { r.Items[0].Quantity = 0 }, e.ErrQuantityRange},
		{"huge quantity", func(r *CreateOrderReq) { r.Items[0].Quantity = 1001 }, e.ErrQuantityRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validOrderReq(product.ID, 1, 59_900)
			tc.mutate(req)

			_, err := f.uc.CreateOrder(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Empty(t, f.orderRepo.orders, "невалидные запросы не должны создавать заказы")
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.CreateOrder(context.Background(), validOrderReq(uuid.NewString(), 1, 59_900))
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCreateOrder_TotalBelowMinimum(t *testing.T) {
	product := newTestProduct("savon", 3_000, 10)
	f := newOrderFixture(product)

	_, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 1, 3_000))
	assert.ErrorIs(t, err, e.ErrInvalidTotal)

	_, err = f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 4, MinOrderTotalMillimes))
	assert.NoError(t, err, "ровно минимальная сумма должна проходить")
}

func TestCreateOrder_NotifierFailureDoesNotFailOrder(t *testing.T) {
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)
	f.notifier.err = errors.New("smtp down")

	order, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 1, 59_900))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, f.orderRepo.orders, 1)
}

func TestGetOrderItems(t *testing.T) {
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)

	order, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 2, 119_800))
	require.NoError(t, err)

	items, err := f.uc.GetOrderItems(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = f.uc.GetOrderItems(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)

	order, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 1, 59_900))
	require.NoError(t, err)

	// полный проход по цепочке
	for _, next := range []string{"confirmed", "shipped", "delivered"} {
		updated, err := f.uc.UpdateOrderStatus(context.Background(), order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatus(next), updated.Status)
	}

	// из терминального статуса пути нет
	_, err = f.uc.UpdateOrderStatus(context.Background(), order.ID, "pending")
	assert.ErrorIs(t, err, e.ErrInvalidStatusTransition)
}

func TestUpdateOrderStatus_RejectsSkips(t *testing.T) {
	product := newTestProduct("tapis", 59_900, 5)
	f := newOrderFixture(product)

	order, err := f.uc.CreateOrder(context.Background(), validOrderReq(product.ID, 1, 59_900))
	require.NoError(t, err)

	_, err = f.uc.UpdateOrderStatus(context.Background(), order.ID, "shipped")
	assert.ErrorIs(t, err, e.ErrInvalidStatusTransition)

	_, err = f.uc.UpdateOrderStatus(context.Background(), order.ID, "delivered")
	assert.ErrorIs(t, err, e.ErrInvalidStatusTransition)

	_, err = f.uc.UpdateOrderStatus(context.Background(), order.ID, "cancelled")
	assert.ErrorIs(t, err, e.ErrInvalidStatus)

	_, err = f.uc.UpdateOrderStatus(context.Background(), uuid.NewString(), "confirmed")
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}
