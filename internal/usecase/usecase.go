package usecase

import (
	"context"

	"github.com/kraftory/go-backend/internal/domain"
)

type OrderUC interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]*domain.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) (*domain.Order, error)
}

type ProductUC interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req *SaveProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadProductImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
}
