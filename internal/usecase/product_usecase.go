package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
)

// ProductUseCase реализует каталог и админское управление товарами.
type ProductUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	txManager   TxManager
	translator  Translator
	imagesInfra ImagesInfra
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	txManager TxManager,
	translator Translator,
	imagesInfra ImagesInfra,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		txManager:   txManager,
		translator:  translator,
		imagesInfra: imagesInfra,
		logger:      logger,
	}
}

// ListProducts возвращает каталог, новые товары — первыми.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает товар по идентификатору через кэш (cache-aside).
func (p *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	cached, err := p.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		p.logger.Warnf("product cache read failed: %v", e.Wrap(op, err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление товара в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
			p.logger.Warnf("failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// CreateProduct создаёт товар из админской формы. Название и описание
// дополнительно отправляются на перевод; отказ переводчика не блокирует
// сохранение — в локализованные поля попадает исходный текст.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(uuid.NewString(), req.Name, req.Description, req.Price, req.ImageURL, req.Stock)
	product.ImageURL2 = req.ImageURL2
	product.ImageURL3 = req.ImageURL3
	p.applyTranslations(ctx, op, product)

	var created *domain.Product
	err := p.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = p.productRepo.Create(ctx, product)
		if err != nil {
			return err
		}

		return p.appendProductEvent(ctx, ProductCreatedEvent, created.ID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateProduct(ctx, op, created.ID)

	return created, nil
}

// UpdateProduct обновляет товар целиком по данным админской формы.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id string, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	existing, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(existing.ID, req.Name, req.Description, req.Price, req.ImageURL, req.Stock)
	product.ImageURL2 = req.ImageURL2
	product.ImageURL3 = req.ImageURL3
	p.applyTranslations(ctx, op, product)

	var updated *domain.Product
	err = p.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = p.productRepo.Update(ctx, product)
		if err != nil {
			return err
		}

		return p.appendProductEvent(ctx, ProductUpdatedEvent, updated.ID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateProduct(ctx, op, updated.ID)

	return updated, nil
}

// DeleteProduct удаляет товар. Исторические позиции заказов сохраняют
// ссылку и снимки имени/цены.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductUseCase.DeleteProduct"

	err := p.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := p.productRepo.Delete(ctx, id); err != nil {
			return err
		}

		return p.appendProductEvent(ctx, ProductDeletedEvent, id)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateProduct(ctx, op, id)

	return nil
}

// UploadProductImages загружает изображения товара в объектное хранилище
// и возвращает их ключи для подстановки в форму.
func (p *ProductUseCase) UploadProductImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	const op = "ProductUseCase.UploadProductImages"

	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	res, err := p.imagesInfra.UploadImages(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// validateProduct проверяет корректность данных админской формы товара.
func (p *ProductUseCase) validateProduct(req *SaveProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if strings.TrimSpace(req.Description) == "" {
		return e.ErrDescriptionRequired
	}

	if req.Price <= 0 {
		return e.ErrPriceMustBePositive
	}

	if strings.TrimSpace(req.ImageURL) == "" {
		return e.ErrImageURLRequired
	}

	if req.Stock < 0 {
		return e.ErrNegativeStock
	}

	return nil
}

// applyTranslations запрашивает en/ar варианты; при отказе коллаборатора
// используется исходный текст.
func (p *ProductUseCase) applyTranslations(ctx context.Context, op string, product *domain.Product) {
	translations, err := p.translator.TranslateProductContent(ctx, product.Name, product.Description)
	if err != nil {
		p.logger.Warnf("translation failed, falling back to original text: %v", e.Wrap(op, err))
		translations = NewTranslationRes(product.Name, product.Name, product.Description, product.Description)
	}

	product.NameEn = translations.NameEn
	product.NameAr = translations.NameAr
	product.DescriptionEn = translations.DescriptionEn
	product.DescriptionAr = translations.DescriptionAr
}

func (p *ProductUseCase) appendProductEvent(ctx context.Context, eventType OutboxEventType, productID string) error {
	payload, err := json.Marshal(struct {
		ProductID string    `json:"product_id"`
		OccuredAt time.Time `json:"occured_at"`
	}{
		ProductID: productID,
		OccuredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), eventType, productID, payload))
	return err
}

func (p *ProductUseCase) invalidateProduct(ctx context.Context, op string, id string) {
	if err := p.cacheRepo.DeleteProducts(ctx, []string{id}); err != nil {
		p.logger.Warnf("failed to invalidate product cache: %v", e.Wrap(op, err))
	}
}
