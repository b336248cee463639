package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/repository"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/utils"
)

const (
	FeaturedProductsCacheKey = "featured_products"
	RecommendationSampleSize = 4
)

type ProductServiceImpl struct {
	mongoDBRepo repository.MongoDBProductRepository
	cacheRepo   repository.CacheRepository
	imageRepo   repository.ImageRepository
	publisher   EventPublisher
	eventReader EventReader
	config      config.Config
	now         func() time.Time
}

// CreateProductService wires the catalog. cacheRepo, publisher and
// eventReader may be nil to run without a featured cache or without events.
func CreateProductService(mongoDBRepo repository.MongoDBProductRepository, cacheRepo repository.CacheRepository, imageRepo repository.ImageRepository, publisher EventPublisher, eventReader EventReader, config config.Config) ProductService {
	return &ProductServiceImpl{
		mongoDBRepo: mongoDBRepo,
		cacheRepo:   cacheRepo,
		imageRepo:   imageRepo,
		publisher:   publisher,
		eventReader: eventReader,
		config:      config,
		now:         time.Now,
	}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context) (resp dto.ProductsResponse, err error) {
	products, err := s.mongoDBRepo.GetProducts(ctx, domain.ProductFilter{})
	if err != nil {
		return
	}

	resp.Products = s.toProductResponses(products)
	return
}

// GetFeaturedProducts returns the featured products as a JSON array. A cached
// snapshot is returned byte for byte.
func (s *ProductServiceImpl) GetFeaturedProducts(ctx context.Context) (snapshot json.RawMessage, sideEffects SideEffects, err error) {
	if s.cacheRepo != nil {
		var hit bool
		snapshot, hit, sideEffects = s.readFeaturedSnapshot(ctx)
		if hit {
			return snapshot, sideEffects, nil
		}
	}

	products, err := s.queryFeaturedProducts(ctx)
	if err != nil {
		return nil, sideEffects, err
	}

	if len(products) == 0 {
		return nil, sideEffects, errs.ErrNoFeatured
	}

	snapshot, err = json.Marshal(products)
	if err != nil {
		return nil, sideEffects, fmt.Errorf("failed to encode featured products: %w", err)
	}

	if s.cacheRepo != nil {
		sideEffects = append(sideEffects, SideEffect{
			Name: SideEffectCacheWrite,
			Err:  s.cacheRepo.Set(ctx, FeaturedProductsCacheKey, snapshot),
		})
	}

	return snapshot, sideEffects, nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (product dto.ProductResponse, sideEffects SideEffects, err error) {
	image := ""
	switch {
	case utils.IsLocalUpload(data.Image):
		image = data.Image
	case data.Image != "":
		image, err = s.imageRepo.UploadImage(ctx, data.Image, s.config.CloudinaryConfig.Folder)
		if err != nil {
			return
		}
	}

	now := s.now().UTC()
	created, err := s.mongoDBRepo.AddProduct(ctx, domain.Product{
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category,
		Image:       image,
		IsFeatured:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return
	}

	product = s.toProductResponse(created)
	sideEffects = append(sideEffects, s.publishEvent(ctx, dto.EventProductCreated, product.ID, product)...)

	return product, sideEffects, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (sideEffects SideEffects, err error) {
	product, err := s.mongoDBRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	if utils.IsHostedImage(product.Image) {
		publicID := fmt.Sprintf("%s/%s", s.config.CloudinaryConfig.Folder, utils.HostedImagePublicID(product.Image))
		sideEffects = append(sideEffects, SideEffect{
			Name: SideEffectImageDelete,
			Err:  s.imageRepo.DeleteImage(ctx, publicID),
		})
	}

	err = s.mongoDBRepo.DeleteProduct(ctx, id)
	if err != nil {
		return sideEffects, err
	}

	if product.IsFeatured {
		sideEffects = append(sideEffects, s.RefreshFeaturedProductsCache(ctx))
	}

	sideEffects = append(sideEffects, s.publishEvent(ctx, dto.EventProductDeleted, id, dto.ProductResponse{ID: id})...)

	return sideEffects, nil
}

func (s *ProductServiceImpl) GetRecommendedProducts(ctx context.Context) (products []dto.RecommendationResponse, err error) {
	sampled, err := s.mongoDBRepo.GetRandomProducts(ctx, RecommendationSampleSize)
	if err != nil {
		return
	}

	products = make([]dto.RecommendationResponse, 0, len(sampled))
	for _, product := range sampled {
		products = append(products, dto.RecommendationResponse{
			ID:          product.ID.Hex(),
			Name:        product.Name,
			Description: product.Description,
			Image:       utils.NormalizeImageURL(s.config.BaseURL, product.Image),
			Price:       product.Price,
		})
	}

	return products, nil
}

func (s *ProductServiceImpl) GetProductsByCategory(ctx context.Context, category string) (resp dto.ProductsResponse, err error) {
	products, err := s.mongoDBRepo.GetProducts(ctx, domain.ProductFilter{Category: &category})
	if err != nil {
		return
	}

	resp.Products = s.toProductResponses(products)
	return
}

func (s *ProductServiceImpl) ToggleFeaturedProduct(ctx context.Context, id string) (product dto.ProductResponse, sideEffects SideEffects, err error) {
	existing, err := s.mongoDBRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	existing.IsFeatured = !existing.IsFeatured
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.mongoDBRepo.UpdateProductFeatured(ctx, existing)
	if err != nil {
		return
	}

	sideEffects = append(sideEffects, s.RefreshFeaturedProductsCache(ctx))

	product = s.toProductResponse(updated)
	sideEffects = append(sideEffects, s.publishEvent(ctx, dto.EventProductFeaturedToggled, product.ID, product)...)

	return product, sideEffects, nil
}

// RefreshFeaturedProductsCache overwrites the featured snapshot with the
// store's current featured products. It is a no-op without a cache.
func (s *ProductServiceImpl) RefreshFeaturedProductsCache(ctx context.Context) SideEffect {
	if s.cacheRepo == nil {
		return SideEffect{Name: SideEffectCacheRefresh}
	}

	products, err := s.queryFeaturedProducts(ctx)
	if err != nil {
		return SideEffect{Name: SideEffectCacheRefresh, Err: err}
	}

	return s.writeFeaturedSnapshot(ctx, SideEffectCacheRefresh, products)
}

func (s *ProductServiceImpl) queryFeaturedProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	isFeatured := true
	products, err := s.mongoDBRepo.GetProducts(ctx, domain.ProductFilter{IsFeatured: &isFeatured})
	if err != nil {
		return nil, err
	}

	return s.toProductResponses(products), nil
}

// readFeaturedSnapshot reports a hit only for well-formed JSON. Anything else
// is served as a miss.
func (s *ProductServiceImpl) readFeaturedSnapshot(ctx context.Context) (snapshot json.RawMessage, hit bool, sideEffects SideEffects) {
	cached, found, err := s.cacheRepo.Get(ctx, FeaturedProductsCacheKey)
	if err != nil {
		return nil, false, SideEffects{{Name: SideEffectCacheRead, Err: err}}
	}

	if !found {
		return nil, false, nil
	}

	if !json.Valid(cached) {
		return nil, false, SideEffects{{Name: SideEffectCacheRead, Err: errors.New("featured snapshot is not valid JSON")}}
	}

	return cached, true, nil
}

func (s *ProductServiceImpl) writeFeaturedSnapshot(ctx context.Context, name string, products []dto.ProductResponse) SideEffect {
	snapshot, err := json.Marshal(products)
	if err != nil {
		return SideEffect{Name: name, Err: fmt.Errorf("failed to encode featured snapshot: %w", err)}
	}

	return SideEffect{Name: name, Err: s.cacheRepo.Set(ctx, FeaturedProductsCacheKey, snapshot)}
}

func (s *ProductServiceImpl) publishEvent(ctx context.Context, eventType string, key string, data interface{}) SideEffects {
	if s.publisher == nil {
		return nil
	}

	jsonMsg, err := json.Marshal(dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		return SideEffects{{Name: SideEffectEventPublish, Err: fmt.Errorf("failed to marshal Kafka message: %w", err)}}
	}

	err = s.publisher.Publish(ctx, key, jsonMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Str("event_type", eventType).Msg("")
		err = fmt.Errorf("failed to write Kafka message: %w", err)
	}

	return SideEffects{{Name: SideEffectEventPublish, Err: err}}
}

func (s *ProductServiceImpl) toProductResponses(products []domain.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, s.toProductResponse(product))
	}

	return resp
}

func (s *ProductServiceImpl) toProductResponse(product domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Image:       utils.NormalizeImageURL(s.config.BaseURL, product.Image),
		IsFeatured:  product.IsFeatured,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
