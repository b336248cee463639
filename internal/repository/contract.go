package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
)

type MongoDBProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error)
	GetProducts(ctx context.Context, filter domain.ProductFilter) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	GetRandomProducts(ctx context.Context, size int) (data []domain.Product, err error)
	UpdateProductFeatured(ctx context.Context, data domain.Product) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

// CacheRepository is a plain key-value store. Get reports a miss with
// found == false and a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) (err error)
}

type ImageRepository interface {
	// UploadImage stores payload under folder and returns its durable URL.
	UploadImage(ctx context.Context, payload string, folder string) (url string, err error)
	DeleteImage(ctx context.Context, publicID string) (err error)
}
