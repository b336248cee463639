package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) MongoDBProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	product = data
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter domain.ProductFilter) (data []domain.Product, err error) {
	query := bson.D{}
	if filter.Category != nil {
		query = append(query, bson.E{Key: "category", Value: *filter.Category})
	}
	if filter.IsFeatured != nil {
		query = append(query, bson.E{Key: "isFeatured", Value: *filter.IsFeatured})
	}

	cursor, err := r.db.Collection(productsCollection).Find(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	defer cursor.Close(ctx)

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetProductByID").Msg("malformed product id")
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection(productsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, fmt.Errorf("failed to retrieve product: %w", err)
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetRandomProducts(ctx context.Context, size int) (data []domain.Product, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
			{Key: "image", Value: 1},
			{Key: "price", Value: 1},
		}}},
	}

	cursor, err := r.db.Collection(productsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetRandomProducts").Msg("")
		return nil, fmt.Errorf("failed to sample products: %w", err)
	}
	defer cursor.Close(ctx)

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetRandomProducts").Msg("")
		return nil, fmt.Errorf("failed to decode sampled products: %w", err)
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProductFeatured(ctx context.Context, data domain.Product) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isFeatured", Value: data.IsFeatured},
		{Key: "updatedAt", Value: data.UpdatedAt},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = r.db.Collection(productsCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProductFeatured").Msg("Failed to update product")
		return product, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	result, err := r.db.Collection(productsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}
