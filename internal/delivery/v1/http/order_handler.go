package http

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/kraftory/go-backend/internal/usecase"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderHandler обслуживает публичное оформление заказа.
type OrderHandler struct {
	orderUsecase usecase.OrderUC
	securityRepo usecase.SecurityRepository
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, securityRepo usecase.SecurityRepository, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, securityRepo: securityRepo, logger: logger}
}

type createOrderItemPayload struct {
	ProductID string      `json:"product_id"`
	Quantity  json.Number `json:"quantity"`
}

type createOrderPayload struct {
	FullName   string                   `json:"full_name"`
	Address    string                   `json:"address"`
	Phone      string                   `json:"phone"`
	Items      []createOrderItemPayload `json:"items"`
	TotalPrice json.Number              `json:"total_price"` // в динарах
}

// createOrder
//
//	@Summary		Оформление заказа
//	@Description	Создаёт заказ с позициями, атомарно списывая остатки
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		createOrderPayload	true	"Форма чекаута"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse	"Недостаточно остатков"
//	@Failure		429		{object}	ErrorResponse	"Слишком много запросов"
//	@Router			/orders [post]
func (o *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload createOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		o.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	req, err := toCreateOrderReq(&payload)
	if err != nil {
		o.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	order, err := o.orderUsecase.CreateOrder(r.Context(), req)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toOrderResponse(order))
}

// issueCSRFToken
//
//	@Summary		Выдача CSRF-токена
//	@Description	Выдаёт одноразовый токен для формы чекаута
//	@Tags			security
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/security/csrf [get]
func (o *OrderHandler) issueCSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := o.securityRepo.IssueCSRFToken(r.Context())
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]string{"csrf_token": token})
}

// toCreateOrderReq приводит JSON-payload к запросу usecase.
// Количество принимается и числом, и числовой строкой, но обязано быть
// целым. Сумма — в динарах, конвертируется в миллимы.
func toCreateOrderReq(payload *createOrderPayload) (*usecase.CreateOrderReq, error) {
	items := make([]usecase.OrderItemReq, 0, len(payload.Items))
	for _, item := range payload.Items {
		qty, err := parseQuantity(item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, usecase.OrderItemReq{ProductID: item.ProductID, Quantity: qty})
	}

	total, err := parsePriceToMillimes(payload.TotalPrice.String())
	if err != nil {
		return nil, e.ErrInvalidTotal
	}

	return usecase.NewCreateOrderReq(payload.FullName, payload.Address, payload.Phone, items, total), nil
}

func parseQuantity(n json.Number) (int64, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil || !d.IsInteger() {
		return 0, e.ErrQuantityRange
	}

	// IntPart молча заворачивается за пределами int64, поэтому значения
	// вне диапазона отбрасываем до преобразования.
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || d.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, e.ErrQuantityRange
	}

	return d.IntPart(), nil
}
