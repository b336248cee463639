package service

import (
	"context"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]domain.Product
	order    []primitive.ObjectID

	getProductsCalls int
	mutations        int

	getProductsErr error
	addErr         error
	updateErr      error
	deleteErr      error
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[primitive.ObjectID]domain.Product{}}
	for _, product := range products {
		if product.ID.IsZero() {
			product.ID = primitive.NewObjectID()
		}
		repo.products[product.ID] = product
		repo.order = append(repo.order, product.ID)
	}
	return repo
}

func (r *fakeProductRepo) AddProduct(_ context.Context, data domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.addErr != nil {
		return domain.Product{}, r.addErr
	}

	r.mutations++
	data.ID = primitive.NewObjectID()
	r.products[data.ID] = data
	r.order = append(r.order, data.ID)
	return data, nil
}

func (r *fakeProductRepo) GetProducts(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.getProductsCalls++
	if r.getProductsErr != nil {
		return nil, r.getProductsErr
	}

	data := []domain.Product{}
	for _, id := range r.order {
		product, ok := r.products[id]
		if !ok {
			continue
		}
		if filter.Category != nil && product.Category != *filter.Category {
			continue
		}
		if filter.IsFeatured != nil && product.IsFeatured != *filter.IsFeatured {
			continue
		}
		data = append(data, product)
	}
	return data, nil
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, id string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrProductNotFound
	}

	product, ok := r.products[objectID]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) GetRandomProducts(_ context.Context, size int) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getProductsErr != nil {
		return nil, r.getProductsErr
	}

	data := []domain.Product{}
	for _, id := range r.order {
		if len(data) == size {
			break
		}
		product, ok := r.products[id]
		if !ok {
			continue
		}
		data = append(data, domain.Product{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Image:       product.Image,
			Price:       product.Price,
		})
	}
	return data, nil
}

func (r *fakeProductRepo) UpdateProductFeatured(_ context.Context, data domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return domain.Product{}, r.updateErr
	}

	product, ok := r.products[data.ID]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}

	r.mutations++
	product.IsFeatured = data.IsFeatured
	product.UpdatedAt = data.UpdatedAt
	r.products[data.ID] = product
	return product, nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleteErr != nil {
		return r.deleteErr
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrProductNotFound
	}
	if _, ok := r.products[objectID]; !ok {
		return errs.ErrProductNotFound
	}

	r.mutations++
	delete(r.products, objectID)
	return nil
}

func (r *fakeProductRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products)
}

type fakeCache struct {
	mu       sync.Mutex
	values   map[string][]byte
	getErr   error
	setErr   error
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return nil, false, c.getErr
	}
	value, ok := c.values[key]
	return value, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}

func (c *fakeCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = map[string][]byte{}
}

type fakeImageRepo struct {
	uploadURL     string
	uploadErr     error
	deleteErr     error
	uploads       []string
	uploadFolders []string
	deletedIDs    []string
}

func (r *fakeImageRepo) UploadImage(_ context.Context, payload string, folder string) (string, error) {
	r.uploads = append(r.uploads, payload)
	r.uploadFolders = append(r.uploadFolders, folder)
	if r.uploadErr != nil {
		return "", r.uploadErr
	}
	return r.uploadURL, nil
}

func (r *fakeImageRepo) DeleteImage(_ context.Context, publicID string) error {
	r.deletedIDs = append(r.deletedIDs, publicID)
	return r.deleteErr
}

type publishedEvent struct {
	key   string
	value []byte
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, value []byte) error {
	p.events = append(p.events, publishedEvent{key: key, value: value})
	return p.err
}

// fakeReader replays its messages and then reports io.EOF.
type fakeReader struct {
	messages [][]byte
}

func (r *fakeReader) ReadMessage(_ context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	next := r.messages[0]
	r.messages = r.messages[1:]
	return kafka.Message{Value: next}, nil
}
