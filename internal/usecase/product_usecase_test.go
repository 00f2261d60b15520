package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/pkg/e"
)

type fakeTranslator struct {
	err   error
	calls int
}

func (f *fakeTranslator) TranslateProductContent(ctx context.Context, name, description string) (*TranslationRes, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return NewTranslationRes(name+" (en)", name+" (ar)", description+" (en)", description+" (ar)"), nil
}

type fakeImagesInfra struct {
	uploaded []*UploadImagesReq
	err      error
}

func (f *fakeImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploaded = append(f.uploaded, req)
	keys := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		keys = append(keys, req.ProductName+"/"+img.Name)
	}
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {}

type productFixture struct {
	uc          *ProductUseCase
	productRepo *fakeProductRepo
	outboxRepo  *fakeOutboxRepo
	cacheRepo   *fakeCacheRepo
	translator  *fakeTranslator
	imagesInfra *fakeImagesInfra
}

func newProductFixture(products ...*domain.Product) *productFixture {
	productRepo := newFakeProductRepo(products...)
	outboxRepo := &fakeOutboxRepo{}
	cacheRepo := newFakeCacheRepo()
	translator := &fakeTranslator{}
	imagesInfra := &fakeImagesInfra{}
	txManager := &fakeTxManager{productRepo: productRepo, orderRepo: newFakeOrderRepo()}

	return &productFixture{
		uc:          NewProductUC(productRepo, outboxRepo, cacheRepo, txManager, translator, imagesInfra, nopLogger{}),
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		translator:  translator,
		imagesInfra: imagesInfra,
	}
}

func validSaveProductReq() *SaveProductReq {
	return NewSaveProductReq("Tapis berbère", "Tapis artisanal en laine", 59_900, "https://cdn.example/tapis.jpg", nil, nil, 5)
}

func TestCreateProduct_Success(t *testing.T) {
	f := newProductFixture()

	product, err := f.uc.CreateProduct(context.Background(), validSaveProductReq())
	require.NoError(t, err)

	require.NotEmpty(t, product.ID)
	assert.Equal(t, "Tapis berbère", product.Name)
	assert.Equal(t, "Tapis berbère (en)", product.NameEn)
	assert.Equal(t, "Tapis berbère (ar)", product.NameAr)
	assert.Equal(t, "Tapis artisanal en laine (en)", product.DescriptionEn)
	assert.Equal(t, int64(59_900), product.Price)
	assert.Equal(t, int32(5), product.Stock)

	require.Len(t, f.outboxRepo.events, 1)
	assert.Equal(t, ProductCreatedEvent, f.outboxRepo.events[0].EventType)
	assert.Equal(t, product.ID, f.outboxRepo.events[0].AggregateID)
}

func TestCreateProduct_TranslatorFailureFallsBackToOriginal(t *testing.T) {
	f := newProductFixture()
	f.translator.err = errors.New("translator unavailable")

	product, err := f.uc.CreateProduct(context.Background(), validSaveProductReq())
	require.NoError(t, err, "отказ переводчика не должен блокировать сохранение")

	assert.Equal(t, product.Name, product.NameEn)
	assert.Equal(t, product.Name, product.NameAr)
	assert.Equal(t, product.Description, product.DescriptionEn)
	assert.Equal(t, product.Description, product.DescriptionAr)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newProductFixture()

	tests := []struct {
		name    string
		mutate  func(req *SaveProductReq)
		wantErr error
	}{
		{"empty name", func(r *SaveProductReq) { r.Name = "   " }, e.ErrProductNameRequired},
		{"empty description", func(r *SaveProductReq) { r.Description = "" }, e.ErrDescriptionRequired},
		{"zero price", func(r *SaveProductReq) { r.Price = 0 }, e.ErrPriceMustBePositive},
		{"negative price", func(r *SaveProductReq) { r.Price = -100 }, e.ErrPriceMustBePositive},
		{"empty image url", func(r *SaveProductReq) { r.ImageURL = " " }, e.ErrImageURLRequired},
		{"negative stock", func(r *SaveProductReq) { r.Stock = -1 }, e.ErrNegativeStock},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validSaveProductReq()
			tc.mutate(req)

			_, err := f.uc.CreateProduct(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Empty(t, f.productRepo.products)
	assert.Empty(t, f.outboxRepo.events)
	assert.Zero(t, f.translator.calls, "невалидная форма не должна доходить до переводчика")
}

func TestUpdateProduct(t *testing.T) {
	existing := newTestProduct("tapis", 59_900, 5)
	f := newProductFixture(existing)

	req := validSaveProductReq()
	req.Price = 64_500
	req.Stock = 7

	updated, err := f.uc.UpdateProduct(context.Background(), existing.ID, req)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, int64(64_500), updated.Price)
	assert.Equal(t, int32(7), updated.Stock)

	require.Len(t, f.outboxRepo.events, 1)
	assert.Equal(t, ProductUpdatedEvent, f.outboxRepo.events[0].EventType)
	assert.Contains(t, f.cacheRepo.deleted, existing.ID)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.UpdateProduct(context.Background(), uuid.NewString(), validSaveProductReq())
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	assert.Empty(t, f.outboxRepo.events)
}

func TestDeleteProduct(t *testing.T) {
	existing := newTestProduct("tapis", 59_900, 5)
	f := newProductFixture(existing)

	require.NoError(t, f.uc.DeleteProduct(context.Background(), existing.ID))
	assert.Empty(t, f.productRepo.products)

	require.Len(t, f.outboxRepo.events, 1)
	assert.Equal(t, ProductDeletedEvent, f.outboxRepo.events[0].EventType)
	assert.Contains(t, f.cacheRepo.deleted, existing.ID)

	err := f.uc.DeleteProduct(context.Background(), existing.ID)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestGetProduct_CacheHit(t *testing.T) {
	cached := newTestProduct("tapis", 59_900, 5)
	f := newProductFixture() // репозиторий пуст
	f.cacheRepo.products[cached.ID] = cached

	product, err := f.uc.GetProduct(context.Background(), cached.ID)
	require.NoError(t, err)
	assert.Equal(t, cached, product, "при попадании в кэш репозиторий не опрашивается")
}

func TestGetProduct_CacheMiss(t *testing.T) {
	existing := newTestProduct("tapis", 59_900, 5)
	f := newProductFixture(existing)

	product, err := f.uc.GetProduct(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, product.ID)

	_, err = f.uc.GetProduct(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestUploadProductImages(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.UploadProductImages(context.Background(), NewUploadImagesReq("tapis", nil))
	assert.ErrorIs(t, err, e.ErrNoImages)

	images := []ProductImage{*NewProductImage([]byte{0xFF, 0xD8}, "image/jpeg", 2, "front.jpg")}
	res, err := f.uc.UploadProductImages(context.Background(), NewUploadImagesReq("tapis", images))
	require.NoError(t, err)
	assert.Equal(t, []string{"tapis/front.jpg"}, res.ImagesKeys)
}
