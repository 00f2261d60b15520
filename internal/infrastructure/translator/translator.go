package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/internal/usecase"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/jitter"
	"github.com/kraftory/go-backend/pkg/logger"
)

// TranslatorService — клиент внешнего сервиса перевода карточек товаров.
// Переводит французские название и описание на английский и арабский.
// Отказ сервиса не фатален: вызывающий подставляет исходный текст.
type TranslatorService struct {
	client     *http.Client
	cfg        *cfg.TranslatorCfg
	maxRetries int
	logger     logger.Logger
}

func NewTranslatorService(cfg *cfg.TranslatorCfg, logger logger.Logger) *TranslatorService {
	return &TranslatorService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg:        cfg,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

type translateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type translateResponse struct {
	NameEn        string `json:"name_en"`
	NameAr        string `json:"name_ar"`
	DescriptionEn string `json:"description_en"`
	DescriptionAr string `json:"description_ar"`
}

// TranslateProductContent переводит контент товара с retry-логикой и экспоненциальной задержкой.
func (t *TranslatorService) TranslateProductContent(ctx context.Context, name, description string) (*usecase.TranslationRes, error) {
	const (
		op         = "TranslatorService.TranslateProductContent"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	if !t.cfg.Enabled {
		return nil, e.Wrap(op, fmt.Errorf("translator is disabled"))
	}

	for attempt := 0; attempt < t.maxRetries; attempt++ {
		res, err := t.translate(ctx, name, description)
		if err == nil {
			return res, nil
		}

		if attempt == t.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", t.maxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		t.logger.Warnf("translation failed, retrying in %v (attempt %d)", sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

// translate выполняет один запрос к сервису перевода.
func (t *TranslatorService) translate(ctx context.Context, name, description string) (*usecase.TranslationRes, error) {
	const op = "TranslatorService.translate"

	body, err := json.Marshal(translateRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.Wrap(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var res translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return usecase.NewTranslationRes(res.NameEn, res.NameAr, res.DescriptionEn, res.DescriptionAr), nil
}
