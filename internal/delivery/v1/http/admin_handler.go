package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kraftory/go-backend/internal/usecase"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
)

// AdminHandler обслуживает бэк-офис: CRUD товаров и управление заказами.
// Все маршруты закрыты basic auth.
type AdminHandler struct {
	productUsecase usecase.ProductUC
	orderUsecase   usecase.OrderUC
	logger         logger.Logger
}

func NewAdminHandler(productUsecase usecase.ProductUC, orderUsecase usecase.OrderUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		productUsecase: productUsecase,
		orderUsecase:   orderUsecase,
		logger:         logger,
	}
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создаёт товар из админской формы, контент переводится на en/ar
//	@Tags			admin
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			name		formData	string	true	"Название"
//	@Param			description	formData	string	true	"Описание"
//	@Param			price		formData	string	true	"Цена в динарах"
//	@Param			image_url	formData	string	true	"Основное изображение"
//	@Param			stock		formData	integer	false	"Остаток"
//	@Success		201			{object}	ProductResponse
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Security		BasicAuth
//	@Router			/admin/products [post]
func (a *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := a.parseSaveProductRequest(r)
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := a.productUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Tags			admin
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			id	path		string	true	"ID товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Security		BasicAuth
//	@Router			/admin/products/{id} [put]
func (a *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := a.parseSaveProductRequest(r)
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := a.productUsecase.UpdateProduct(r.Context(), id, req)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Удаляет товар, исторические позиции заказов сохраняются
//	@Tags			admin
//	@Produce		json
//	@Param			id	path		string	true	"ID товара"
//	@Success		204	"Удалено"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Security		BasicAuth
//	@Router			/admin/products/{id} [delete]
func (a *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadProductImages
//
//	@Summary		Загрузка изображений товара
//	@Description	Загружает изображения в объектное хранилище и возвращает их ключи
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			product_name	formData	string	true	"Название товара"
//	@Param			images			formData	file	true	"Изображения"
//	@Success		201				{object}	map[string]interface{}
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Security		BasicAuth
//	@Router			/admin/products/images [post]
func (a *AdminHandler) uploadProductImages(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	productName := r.FormValue("product_name")
	if productName == "" {
		a.logger.Warnf("%d %s: missing product_name", http.StatusBadRequest, e.ErrStatusBadRequest.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := a.productUsecase.UploadProductImages(r.Context(), usecase.NewUploadImagesReq(productName, images))
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"images_keys": res.ImagesKeys,
	})
}

// listOrders
//
//	@Summary		Список заказов
//	@Tags			admin
//	@Produce		json
//	@Success		200	{array}		OrderResponse
//	@Security		BasicAuth
//	@Router			/admin/orders [get]
func (a *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orderUsecase.ListOrders(r.Context())
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrOrderResponse(orders))
}

// getOrderItems
//
//	@Summary		Позиции заказа
//	@Tags			admin
//	@Produce		json
//	@Param			id	path		string	true	"ID заказа"
//	@Success		200	{array}		OrderItemResponse
//	@Failure		404	{object}	ErrorResponse	"Заказ не найден"
//	@Security		BasicAuth
//	@Router			/admin/orders/{id}/items [get]
func (a *AdminHandler) getOrderItems(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := a.orderUsecase.GetOrderItems(r.Context(), id)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrOrderItemResponse(items))
}

type updateOrderStatusPayload struct {
	Status string `json:"status"`
}

// updateOrderStatus
//
//	@Summary		Смена статуса заказа
//	@Description	Продвигает статус строго по цепочке pending → confirmed → shipped → delivered
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"ID заказа"
//	@Param			status	body		updateOrderStatusPayload	true	"Новый статус"
//	@Success		200		{object}	OrderResponse
//	@Failure		409		{object}	ErrorResponse	"Недопустимый переход"
//	@Security		BasicAuth
//	@Router			/admin/orders/{id}/status [patch]
func (a *AdminHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload updateOrderStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	order, err := a.orderUsecase.UpdateOrderStatus(r.Context(), id, payload.Status)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// parseSaveProductRequest принимает и form-urlencoded, и multipart формы.
func (a *AdminHandler) parseSaveProductRequest(r *http.Request) (*usecase.SaveProductReq, error) {
	const maxMemory = 32 << 20

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, e.ErrStatusBadRequest
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, e.ErrStatusBadRequest
		}
	}

	return parseProductForm(r)
}
