package service

import (
	"context"
	"encoding/json"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	"github.com/segmentio/kafka-go"
)

type ProductService interface {
	GetProducts(ctx context.Context) (resp dto.ProductsResponse, err error)
	GetFeaturedProducts(ctx context.Context) (snapshot json.RawMessage, sideEffects SideEffects, err error)
	AddProduct(ctx context.Context, data dto.ProductRequest) (product dto.ProductResponse, sideEffects SideEffects, err error)
	DeleteProduct(ctx context.Context, id string) (sideEffects SideEffects, err error)
	GetRecommendedProducts(ctx context.Context) (products []dto.RecommendationResponse, err error)
	GetProductsByCategory(ctx context.Context, category string) (resp dto.ProductsResponse, err error)
	ToggleFeaturedProduct(ctx context.Context, id string) (product dto.ProductResponse, sideEffects SideEffects, err error)
	RefreshFeaturedProductsCache(ctx context.Context) SideEffect
	ConsumeEvent(ctx context.Context)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type EventReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}
