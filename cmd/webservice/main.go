package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/app"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/cache/redis"
	circuitbreaker "github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/imagehost/cloudinary"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/repository"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "catalog-service").Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	config := config.CreateNewConfig()
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	db, err := mongodb.ConnectToMongoDB(ctx, fmt.Sprintf("mongodb://%s:%s", config.MongoDBConfig.DBHost, config.MongoDBConfig.DBPort), config.MongoDBConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	var cacheRepo repository.CacheRepository
	if config.RedisConfig.Address != "" {
		redisClient, err := redis.ConnectToRedis(ctx, config)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		cacheRepo = repository.CreateNewRedisCacheRepository(redisClient)
	} else {
		log.Warn().Msg("REDIS_ADDRESS is empty, featured products are served without cache")
	}

	cld, err := cloudinary.CreateCloudinaryClient(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Cloudinary client")
	}
	imageRepo := repository.CreateNewCloudinaryImageRepository(cld,
		circuitbreaker.CreateCircuitBreaker("cloudinary-upload"),
		circuitbreaker.CreateCircuitBreaker("cloudinary-destroy"),
	)

	var publisher service.EventPublisher
	var eventReader service.EventReader
	if config.KafkaConfig.BrokerAddress != "" {
		kafkaPublisher := kafka.CreateKafkaPublisher(config)
		defer kafkaPublisher.Close()

		kafkaReader := kafka.CreateKafkaReader(config)
		defer kafkaReader.Close()

		publisher = kafkaPublisher
		eventReader = kafkaReader
	}

	mongoDBRepo := repository.CreateNewMongoDBRepository(db)
	svc := service.CreateProductService(mongoDBRepo, cacheRepo, imageRepo, publisher, eventReader, *config)

	server := app.App{
		Config:  config,
		Service: svc,
	}

	go func() {
		stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		<-stop.Done()
		if err := server.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server")
		}
	}()

	if err := server.Start(); err != nil {
		log.Error().Err(err).Msg("Server stopped")
	}
}
