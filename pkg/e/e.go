package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request — валидация входных данных
	ErrFullNameRequired     = fmt.Errorf("full name is required")
	ErrFullNameLength       = fmt.Errorf("full name must be between 3 and 100 characters")
	ErrFullNameCharset      = fmt.Errorf("full name can only contain letters, spaces, and hyphens")
	ErrFullNameSpaces       = fmt.Errorf("multiple consecutive spaces are not allowed")
	ErrFullNameSuspicious   = fmt.Errorf("invalid characters detected")
	ErrPhoneRequired        = fmt.Errorf("phone is required")
	ErrPhoneFormat          = fmt.Errorf("invalid phone format")
	ErrPhonePrefix          = fmt.Errorf("phone must start with +216")
	ErrPhoneDigits          = fmt.Errorf("phone must contain 8 digits after +216")
	ErrPhoneOperator        = fmt.Errorf("invalid tunisian phone number")
	ErrPhoneDenylisted      = fmt.Errorf("phone number appears invalid")
	ErrAddressRequired      = fmt.Errorf("address is required")
	ErrAddressLength        = fmt.Errorf("address must be between 5 and 255 characters")
	ErrAddressCharset       = fmt.Errorf("address contains invalid characters")
	ErrProductIDRequired    = fmt.Errorf("product id is required")
	ErrProductIDLength      = fmt.Errorf("invalid product id length")
	ErrProductIDFormat      = fmt.Errorf("invalid product id format")
	ErrQuantityRange        = fmt.Errorf("quantity must be between 1 and 1000")
	ErrEmptyOrder           = fmt.Errorf("order must contain at least one item")
	ErrInvalidTotal         = fmt.Errorf("invalid total price")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrDescriptionRequired  = fmt.Errorf("product description is required")
	ErrImageURLRequired     = fmt.Errorf("image url is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrNegativeStock        = fmt.Errorf("stock must not be negative")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 3 decimal places")
	ErrInvalidStatus        = fmt.Errorf("unknown order status")
	ErrMissingFields        = fmt.Errorf("required fields are missing")
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrInvalidCSRFToken     = fmt.Errorf("invalid or expired csrf token")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrOrderNotFound   = fmt.Errorf("order not found")

	// 409 Conflict — конфликты состояния
	ErrInsufficientStock       = fmt.Errorf("insufficient stock")
	ErrInvalidStatusTransition = fmt.Errorf("invalid order status transition")

	// 401 Unauthorized
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// 429 Too Many Requests
	ErrRateLimited = fmt.Errorf("too many requests")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
