package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeSecurityRepo имитирует redis-хранилище токенов и счётчиков.
type fakeSecurityRepo struct {
	tokens   map[string]bool
	attempts map[string]int64
	err      error
}

func newFakeSecurityRepo() *fakeSecurityRepo {
	return &fakeSecurityRepo{
		tokens:   make(map[string]bool),
		attempts: make(map[string]int64),
	}
}

func (f *fakeSecurityRepo) IssueCSRFToken(ctx context.Context) (string, error) {
	token := "test-token"
	f.tokens[token] = true
	return token, nil
}

func (f *fakeSecurityRepo) ConsumeCSRFToken(ctx context.Context, token string) error {
	if !f.tokens[token] {
		return e.ErrInvalidCSRFToken
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeSecurityRepo) CountAttempt(ctx context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.attempts[key]++
	return f.attempts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	h := rec.Header()
	assert.Equal(t, "max-age=31536000; includeSubDomains; preload", h.Get("Strict-Transport-Security"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", h.Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=(), microphone=(), camera=()", h.Get("Permissions-Policy"))
	assert.Contains(t, h.Get("Content-Security-Policy"), "frame-ancestors 'none'")
}

func TestBasicAuth(t *testing.T) {
	adminCfg := &cfg.AdminCfg{User: "admin", Password: "s3cret"}
	handler := BasicAuth(adminCfg, nopLogger{})(okHandler())

	t.Run("no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, `Basic realm="Secure Admin Area"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.SetBasicAuth("admin", "wrong")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.SetBasicAuth("root", "s3cret")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.SetBasicAuth("admin", "s3cret")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	securityCfg := &cfg.SecurityCfg{RateLimitMax: 3}

	t.Run("blocks after limit", func(t *testing.T) {
		repo := newFakeSecurityRepo()
		handler := RateLimit(repo, securityCfg, nopLogger{})(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = "203.0.113.7:4321"

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "request %d within limit", i+1)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("counts per ip", func(t *testing.T) {
		repo := newFakeSecurityRepo()
		handler := RateLimit(repo, securityCfg, nopLogger{})(okHandler())

		blocked := httptest.NewRequest(http.MethodPost, "/orders", nil)
		blocked.RemoteAddr = "203.0.113.7:4321"
		for i := 0; i < 4; i++ {
			handler.ServeHTTP(httptest.NewRecorder(), blocked)
		}

		other := httptest.NewRequest(http.MethodPost, "/orders", nil)
		other.RemoteAddr = "198.51.100.2:1111"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("prefers x-real-ip", func(t *testing.T) {
		repo := newFakeSecurityRepo()
		handler := RateLimit(repo, securityCfg, nopLogger{})(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = "10.0.0.1:80"
		req.Header.Set("X-Real-IP", "203.0.113.7")

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, int64(1), repo.attempts["203.0.113.7"])
	})

	t.Run("fails open when store unavailable", func(t *testing.T) {
		repo := newFakeSecurityRepo()
		repo.err = errors.New("redis down")
		handler := RateLimit(repo, securityCfg, nopLogger{})(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "недоступный Redis не должен блокировать покупателей")
	})
}

func TestVerifyCSRF(t *testing.T) {
	t.Run("disabled passes through", func(t *testing.T) {
		repo := newFakeSecurityRepo()
		handler := VerifyCSRF(repo, &cfg.SecurityCfg{CSRFEnabled: false}, nopLogger{})(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		repo := newFakeSecurityRepo()
		handler := VerifyCSRF(repo, &cfg.SecurityCfg{CSRFEnabled: true}, nopLogger{})(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("token is single use", func(t *testing.T) {
		repo := newFakeSecurityRepo()
		handler := VerifyCSRF(repo, &cfg.SecurityCfg{CSRFEnabled: true}, nopLogger{})(okHandler())

		token, err := repo.IssueCSRFToken(context.Background())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set("X-CSRF-Token", token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, "повторное использование токена запрещено")
	})
}
