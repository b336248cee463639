package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL          = "http://localhost:5000"
	DefaultCloudinaryFolder = "products"
)

type Config struct {
	ServicePort      string `validate:"required"`
	MetricsPort      string
	BaseURL          string `validate:"required,url"`
	MongoDBConfig    MongoDBConfig
	RedisConfig      RedisConfig
	CloudinaryConfig CloudinaryConfig
	KafkaConfig      KafkaConfig
	JWTSecret        string `validate:"required"`
	TracingConfig    TracingConfig
	SchedulerConfig  SchedulerConfig
}

type MongoDBConfig struct {
	DBHost string `validate:"required"`
	DBPort string `validate:"required"`
	DBName string `validate:"required"`
}

// RedisConfig is optional, an empty Address disables the featured products cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CloudinaryConfig struct {
	URL    string `validate:"required"`
	Folder string `validate:"required"`
}

// KafkaConfig is optional, an empty BrokerAddress disables catalog events.
type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string `validate:"required_with=BrokerAddress"`
}

type TracingConfig struct {
	CollectorHost string
}

type SchedulerConfig struct {
	// Zero disables the periodic featured products refresh.
	FeaturedCacheRefreshInterval time.Duration
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		BaseURL:     getEnvOrDefault("BASE_URL", DefaultBaseURL),
		MongoDBConfig: MongoDBConfig{
			DBHost: os.Getenv("DB_HOST"),
			DBPort: os.Getenv("DB_PORT"),
			DBName: getEnvOrDefault("DB_NAME", "catalog_service"),
		},
		RedisConfig: RedisConfig{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		CloudinaryConfig: CloudinaryConfig{
			URL:    os.Getenv("CLOUDINARY_URL"),
			Folder: getEnvOrDefault("CLOUDINARY_FOLDER", DefaultCloudinaryFolder),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	if redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		conf.RedisConfig.DB = redisDB
	}

	if interval, err := time.ParseDuration(os.Getenv("FEATURED_CACHE_REFRESH_INTERVAL")); err == nil {
		conf.SchedulerConfig.FeaturedCacheRefreshInterval = interval
	}

	return &conf
}

// Validate reports the first missing or malformed required setting.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
