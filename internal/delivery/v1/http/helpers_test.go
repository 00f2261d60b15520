package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftory/go-backend/pkg/e"
)

func TestParsePriceToMillimes(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "59.9", want: 59_900},
		{in: "60", want: 60_000},
		{in: "59.999", want: 59_999},
		{in: "0.005", want: 5},
		{in: "1000000", want: 1_000_000_000},

		{in: "59.9999", wantErr: e.ErrPricePrecision},
		{in: "", wantErr: e.ErrInvalidPrice},
		{in: "   ", wantErr: e.ErrInvalidPrice},
		{in: "abc", wantErr: e.ErrInvalidPrice},
		{in: "-5", wantErr: e.ErrInvalidPrice},
		{in: "1000000.001", wantErr: e.ErrInvalidPrice},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parsePriceToMillimes(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMillimesToDinars(t *testing.T) {
	assert.Equal(t, "59.9", millimesToDinars(59_900))
	assert.Equal(t, "60", millimesToDinars(60_000))
	assert.Equal(t, "59.999", millimesToDinars(59_999))
	assert.Equal(t, "0.005", millimesToDinars(5))
	assert.Equal(t, "0", millimesToDinars(0))
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", e.ErrFullNameLength, http.StatusBadRequest},
		{"empty order", e.ErrEmptyOrder, http.StatusBadRequest},
		{"bad price", e.ErrInvalidPrice, http.StatusBadRequest},
		{"unauthorized", e.ErrUnauthorized, http.StatusUnauthorized},
		{"bad csrf token", e.ErrInvalidCSRFToken, http.StatusForbidden},
		{"product not found", e.ErrProductNotFound, http.StatusNotFound},
		{"order not found", e.ErrOrderNotFound, http.StatusNotFound},
		{"insufficient stock", e.ErrInsufficientStock, http.StatusConflict},
		{"bad transition", e.ErrInvalidStatusTransition, http.StatusConflict},
		{"file too large", e.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"bad media type", e.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"rate limited", e.ErrRateLimited, http.StatusTooManyRequests},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := ToHTTPResponse(tc.err)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestToHTTPResponse_UnwrapsOperationContext(t *testing.T) {
	// Ошибки приходят обёрнутыми в op-контекст юзкейсов.
	wrapped := e.Wrap("OrderUseCase.CreateOrder", e.ErrInsufficientStock)

	code, msg := ToHTTPResponse(wrapped)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, e.ErrInsufficientStock.Error(), msg, "внутренний op-контекст не должен утекать клиенту")
}

func TestParseStock(t *testing.T) {
	got, err := parseStock("")
	require.NoError(t, err)
	assert.Equal(t, int32(0), got)

	got, err = parseStock("7")
	require.NoError(t, err)
	assert.Equal(t, int32(7), got)

	_, err = parseStock("7.5")
	assert.ErrorIs(t, err, e.ErrStatusBadRequest)

	_, err = parseStock("abc")
	assert.ErrorIs(t, err, e.ErrStatusBadRequest)

	_, err = parseStock("-1")
	assert.ErrorIs(t, err, e.ErrNegativeStock)

	got, err = parseStock("2147483647")
	require.NoError(t, err)
	assert.Equal(t, int32(2147483647), got)

	// За пределами int32 преобразование заворачивается — отклоняем до каста.
	_, err = parseStock("2147483648")
	assert.ErrorIs(t, err, e.ErrStatusBadRequest)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"simple", "3", 3, false},
		{"upper bound", "1000", 1000, false},
		{"zero decodes, range checked later", "0", 0, false},
		{"fractional", "2.5", 0, true},
		{"not a number", "abc", 0, true},
		{"max int64", "9223372036854775807", 9223372036854775807, false},
		// IntPart без проверки границ превратил бы эти значения в 1 и MinInt64.
		{"uint64 overflow", "18446744073709551617", 0, true},
		{"just past max int64", "9223372036854775808", 0, true},
		{"past min int64", "-9223372036854775809", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseQuantity(json.Number(tc.input))
			if tc.wantErr {
				assert.ErrorIs(t, err, e.ErrQuantityRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
