package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/internal/usecase"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// badRequestErrs — ошибки валидации и разбора формы, отражаемые как 400.
var badRequestErrs = []error{
	e.ErrFullNameRequired,
	e.ErrFullNameLength,
	e.ErrFullNameCharset,
	e.ErrFullNameSpaces,
	e.ErrFullNameSuspicious,
	e.ErrPhoneRequired,
	e.ErrPhoneFormat,
	e.ErrPhonePrefix,
	e.ErrPhoneDigits,
	e.ErrPhoneOperator,
	e.ErrPhoneDenylisted,
	e.ErrAddressRequired,
	e.ErrAddressLength,
	e.ErrAddressCharset,
	e.ErrProductIDRequired,
	e.ErrProductIDLength,
	e.ErrProductIDFormat,
	e.ErrQuantityRange,
	e.ErrEmptyOrder,
	e.ErrInvalidTotal,
	e.ErrProductNameRequired,
	e.ErrDescriptionRequired,
	e.ErrImageURLRequired,
	e.ErrPriceMustBePositive,
	e.ErrNegativeStock,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrInvalidStatus,
	e.ErrMissingFields,
	e.ErrStatusBadRequest,
	e.ErrExpectedMultipart,
	e.ErrNoImages,
	e.ErrTooManyImages,
}

// ToHTTPResponse сопоставляет доменную ошибку с HTTP-статусом и сообщением.
func ToHTTPResponse(err error) (int, string) {
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	switch {
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrInvalidCSRFToken):
		return http.StatusForbidden, e.ErrInvalidCSRFToken.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, e.ErrOrderNotFound.Error()
	case errors.Is(err, e.ErrInsufficientStock):
		return http.StatusConflict, e.ErrInsufficientStock.Error()
	case errors.Is(err, e.ErrInvalidStatusTransition):
		return http.StatusConflict, e.ErrInvalidStatusTransition.Error()
	case errors.Is(err, e.ErrRateLimited):
		return http.StatusTooManyRequests, e.ErrRateLimited.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ProductResponse — JSON-представление товара. Цена — строка в динарах ("59.900").
type ProductResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	NameEn        string     `json:"name_en,omitempty"`
	NameAr        string     `json:"name_ar,omitempty"`
	Description   string     `json:"description"`
	DescriptionEn string     `json:"description_en,omitempty"`
	DescriptionAr string     `json:"description_ar,omitempty"`
	Price         string     `json:"price"`
	ImageURL      string     `json:"image_url"`
	ImageURL2     *string    `json:"image_url2,omitempty"`
	ImageURL3     *string    `json:"image_url3,omitempty"`
	Stock         int32      `json:"stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type OrderResponse struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"order_number"`
	CustomerName    string     `json:"customer_name"`
	CustomerAddress string     `json:"customer_address"`
	CustomerPhone   string     `json:"customer_phone"`
	TotalPrice      string     `json:"total_price"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type OrderItemResponse struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	Quantity    int32  `json:"quantity"`
	PriceAtTime string `json:"price_at_time"`
	ProductName string `json:"product_name"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		NameEn:        p.NameEn,
		NameAr:        p.NameAr,
		Description:   p.Description,
		DescriptionEn: p.DescriptionEn,
		DescriptionAr: p.DescriptionAr,
		Price:         millimesToDinars(p.Price),
		ImageURL:      p.ImageURL,
		ImageURL2:     p.ImageURL2,
		ImageURL3:     p.ImageURL3,
		Stock:         p.Stock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toArrProductResponse(products []*domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		CustomerPhone:   o.CustomerPhone,
		TotalPrice:      millimesToDinars(o.TotalPrice),
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toArrOrderResponse(orders []*domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderResponse(o))
	}
	return result
}

func toArrOrderItemResponse(items []*domain.OrderItem) []OrderItemResponse {
	result := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, OrderItemResponse{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtTime: millimesToDinars(item.PriceAtTime),
			ProductName: item.ProductNameSnapshot,
		})
	}
	return result
}

// parsePriceToMillimes конвертирует строку вида "59.9" или "60" в int64 миллимов.
// Возвращает ошибку при:
// - неверном формате
// - более чем 3 знаках после запятой (миллим — минимальная единица TND)
// - отрицательном или нулевом значении после округления границ
// - превышении разумного потолка (1 млн динаров)
func parsePriceToMillimes(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -3 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(1000)).Round(0).IntPart(), nil
}

// millimesToDinars форматирует цену в динарах для JSON-ответов.
func millimesToDinars(millimes int64) string {
	return decimal.New(millimes, -3).String()
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseProductForm читает поля админской формы товара.
func parseProductForm(r *http.Request) (*usecase.SaveProductReq, error) {
	name := r.FormValue("name")
	description := r.FormValue("description")
	priceStr := r.FormValue("price")
	imageURL := r.FormValue("image_url")
	stockStr := r.FormValue("stock")

	if name == "" || description == "" || priceStr == "" || imageURL == "" {
		return nil, e.Wrap(fmt.Sprintf("name: %s, price: %s, image_url: %s\n", name, priceStr, imageURL), e.ErrMissingFields)
	}

	price, err := parsePriceToMillimes(priceStr)
	if err != nil {
		return nil, err
	}

	stock, err := parseStock(stockStr)
	if err != nil {
		return nil, err
	}

	var imageURL2, imageURL3 *string
	if v := r.FormValue("image_url2"); v != "" {
		imageURL2 = &v
	}
	if v := r.FormValue("image_url3"); v != "" {
		imageURL3 = &v
	}

	return usecase.NewSaveProductReq(name, description, price, imageURL, imageURL2, imageURL3, stock), nil
}

// parseStock принимает целое неотрицательное количество. Пустое поле — ноль.
func parseStock(s string) (int32, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, e.ErrStatusBadRequest
	}
	if d.LessThan(decimal.Zero) {
		return 0, e.ErrNegativeStock
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, e.ErrStatusBadRequest
	}

	return int32(d.IntPart()), nil
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
