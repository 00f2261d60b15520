package http

import (
	"crypto/subtle"
	"net"
	"net/http"

	"github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/internal/usecase"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
)

// SecurityHeaders выставляет защитные заголовки на каждый ответ.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		h.Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self'; connect-src 'self'; frame-ancestors 'none'")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		next.ServeHTTP(w, r)
	})
}

// BasicAuth защищает админские маршруты единственной парой логин/пароль.
// Сравнение — за константное время, чтобы не давать тайминговый оракул.
func BasicAuth(cfg *cfg.AdminCfg, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if ok {
				userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.User)) == 1
				passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
				if userMatch && passMatch {
					logger.Infof("[AUTH] Successful admin login from %s", clientIP(r))
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warnf("[AUTH] Failed admin login attempt from %s", clientIP(r))
			w.Header().Set("WWW-Authenticate", `Basic realm="Secure Admin Area"`)
			WriteError(w, e.ErrUnauthorized)
		})
	}
}

// RateLimit ограничивает число запросов с одного IP в пределах окна.
// Счётчики живут в Redis, поэтому лимит общий для всех инстансов.
func RateLimit(securityRepo usecase.SecurityRepository, cfg *cfg.SecurityCfg, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			count, err := securityRepo.CountAttempt(r.Context(), ip)
			if err != nil {
				// Недоступный Redis не должен блокировать покупателей
				logger.Warnf("rate limit check failed for %s: %v", ip, err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(cfg.RateLimitMax) {
				logger.Warnf("[RATE] Too many requests from %s (%d)", ip, count)
				WriteError(w, e.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// VerifyCSRF одноразово проверяет токен из заголовка X-CSRF-Token.
// Проверка включается флагом конфигурации.
func VerifyCSRF(securityRepo usecase.SecurityRepository, cfg *cfg.SecurityCfg, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.CSRFEnabled {
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get("X-CSRF-Token")
			if err := securityRepo.ConsumeCSRFToken(r.Context(), token); err != nil {
				logger.Warnf("[CSRF] rejected request from %s: %v", clientIP(r), err)
				WriteError(w, e.ErrInvalidCSRFToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP извлекает IP клиента с учётом реверс-прокси.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Real-IP"); xff != "" {
		return xff
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
