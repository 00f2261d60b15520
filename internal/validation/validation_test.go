package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftory/go-backend/pkg/e"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple", "Omar Khalil", nil},
		{"accented", "Amélie Durand", nil},
		{"hyphenated", "Jean-Pierre Martin", nil},
		{"trimmed to valid", "  Omar Khalil  ", nil},
		{"empty", "", e.ErrFullNameRequired},
		{"whitespace only", "   ", e.ErrFullNameRequired},
		{"too short", "Om", e.ErrFullNameLength},
		{"too long", strings.Repeat("a", 101), e.ErrFullNameLength},
		{"digits", "Omar 2", e.ErrFullNameCharset},
		{"double space", "Omar  Khalil", e.ErrFullNameSpaces},
		{"sql keyword", "Robert drop tables", e.ErrFullNameSuspicious},
		{"standalone or", "Omar or Khalil", e.ErrFullNameSuspicious},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := FullName(tc.input)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestFullName_MaxBoundary(t *testing.T) {
	require.NoError(t, FullName(strings.Repeat("a", 100)))
	require.NoError(t, FullName("Oma"))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid mobile", "+216 22345678", nil},
		{"valid landline", "+216 71234567", nil},
		{"valid nine prefix", "+216 98123456", nil},
		{"empty", "", e.ErrPhoneRequired},
		{"too short", "+216 1234567", e.ErrPhoneFormat},
		{"too long", "+216 123456789", e.ErrPhoneFormat},
		{"wrong country", "+217 22345678", e.ErrPhonePrefix},
		{"no space", "+21622345678 ", e.ErrPhonePrefix},
		{"letters in digits", "+216 2234567a", e.ErrPhoneDigits},
		{"bad operator prefix", "+216 32345678", e.ErrPhoneOperator},
		{"denylisted ascending", "+216 22222222", e.ErrPhoneDenylisted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Phone(tc.input)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestPhone_DenylistedButBadPrefixFailsOnPrefixFirst(t *testing.T) {
	// 12345678 начинается с 1 — отклоняется оператором раньше денилиста.
	assert.ErrorIs(t, Phone("+216 12345678"), e.ErrPhoneOperator)
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"street", "12 Rue de la Paix, Tunis", nil},
		{"with parens", "Résidence El Ferdaws (Bloc B)", nil},
		{"empty", "", e.ErrAddressRequired},
		{"too short", "Rue", e.ErrAddressLength},
		{"too long", strings.Repeat("a", 256), e.ErrAddressLength},
		{"angle brackets", "12 Rue <script>", e.ErrAddressCharset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Address(tc.input)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestProductID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"seed id", "p1", nil},
		{"uuid v4", "0c6d21ea-0e2e-4e5e-8f3b-1a2b3c4d5e6f", nil},
		{"underscore", "promo_item-2", nil},
		{"empty", "", e.ErrProductIDRequired},
		{"too long", strings.Repeat("x", 51), e.ErrProductIDLength},
		{"spaces", "p 1", e.ErrProductIDFormat},
		{"quote", "p1'", e.ErrProductIDFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ProductID(tc.input)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestQuantity(t *testing.T) {
	assert.NoError(t, Quantity(1))
	assert.NoError(t, Quantity(500))
	assert.NoError(t, Quantity(1000))
	assert.ErrorIs(t, Quantity(0), e.ErrQuantityRange)
	assert.ErrorIs(t, Quantity(-3), e.ErrQuantityRange)
	assert.ErrorIs(t, Quantity(1001), e.ErrQuantityRange)
}
