// Package validation содержит чистые валидаторы полей оформления заказа.
// Один и тот же набор правил вызывается и клиентской, и серверной стороной;
// серверная проверка — авторитетная.
package validation

import (
	"regexp"
	"strings"

	"github.com/kraftory/go-backend/pkg/e"
)

var (
	nameRe    = regexp.MustCompile(`^[a-zA-Z\s\-àâäéèêëïîôöùûüœæÀÂÄÉÈÊËÏÎÔÖÙÛÜŒÆ]+$`)
	spacesRe  = regexp.MustCompile(`\s{2,}`)
	addressRe = regexp.MustCompile(`^[a-zA-Z0-9\s,.\-'àâäéèêëïîôöùûüœæÀÂÄÉÈÊËÏÎÔÖÙÛÜŒÆ()]+$`)
	digitsRe  = regexp.MustCompile(`^\d{8}$`)
	uuidV4Re  = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	simpleRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// Глубокоэшелонированная защита от инъекций; параметризованные запросы
	// остаются основной мерой.
	suspiciousRe = regexp.MustCompile(`(?i)(\bor\b|\band\b|--|;|/\*|\*/|\b(select|insert|update|delete|drop|union|exec|script)\b)`)
)

// fakePhoneSuffixes — заведомо фиктивные последовательности из 8 цифр.
var fakePhoneSuffixes = map[string]struct{}{
	"12345678": {}, "87654321": {}, "00000000": {}, "11111111": {},
	"22222222": {}, "33333333": {}, "44444444": {}, "55555555": {},
	"66666666": {}, "77777777": {}, "88888888": {}, "99999999": {},
}

// validMobilePrefixes — допустимые первые цифры тунисских номеров.
var validMobilePrefixes = map[byte]struct{}{
	'2': {}, '4': {}, '5': {}, '7': {}, '9': {},
}

// FullName проверяет полное имя: длина после trim в [3,100], только буквы
// (включая акцентированные), пробелы и дефисы, без повторных пробелов.
func FullName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return e.ErrFullNameRequired
	}

	if n := len([]rune(trimmed)); n < 3 || n > 100 {
		return e.ErrFullNameLength
	}

	if !nameRe.MatchString(trimmed) {
		return e.ErrFullNameCharset
	}

	if spacesRe.MatchString(trimmed) {
		return e.ErrFullNameSpaces
	}

	if suspiciousRe.MatchString(trimmed) {
		return e.ErrFullNameSuspicious
	}

	return nil
}

// Phone проверяет номер телефона: строго "+216 " и 8 цифр (итого 13 символов),
// первая цифра из {2,4,5,7,9}, суффикс не входит в список фиктивных номеров.
func Phone(phone string) error {
	if phone == "" {
		return e.ErrPhoneRequired
	}

	if len(phone) != 13 {
		return e.ErrPhoneFormat
	}

	if !strings.HasPrefix(phone, "+216 ") {
		return e.ErrPhonePrefix
	}

	digits := phone[5:]
	if !digitsRe.MatchString(digits) {
		return e.ErrPhoneDigits
	}

	if _, ok := validMobilePrefixes[digits[0]]; !ok {
		return e.ErrPhoneOperator
	}

	if _, ok := fakePhoneSuffixes[digits]; ok {
		return e.ErrPhoneDenylisted
	}

	return nil
}

// Address проверяет адрес доставки: длина после trim в [5,255],
// буквы/цифры/пробелы и ограниченный набор пунктуации.
func Address(address string) error {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return e.ErrAddressRequired
	}

	if n := len([]rune(trimmed)); n < 5 || n > 255 {
		return e.ErrAddressLength
	}

	if !addressRe.MatchString(trimmed) {
		return e.ErrAddressCharset
	}

	return nil
}

// ProductID принимает либо UUIDv4, либо простой идентификатор из
// букв/цифр/подчёркиваний/дефисов (сидовые товары вида "p1", "v1").
func ProductID(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return e.ErrProductIDRequired
	}

	if len(trimmed) > 50 {
		return e.ErrProductIDLength
	}

	if !uuidV4Re.MatchString(trimmed) && !simpleRe.MatchString(trimmed) {
		return e.ErrProductIDFormat
	}

	return nil
}

// Quantity проверяет количество: целое в диапазоне [1,1000].
// Нецелочисленные значения отбрасываются при декодировании JSON на границе.
func Quantity(quantity int64) error {
	if quantity < 1 || quantity > 1000 {
		return e.ErrQuantityRange
	}

	return nil
}
