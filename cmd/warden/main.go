package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/penpalhq/warden/adapters/events"
	"github.com/penpalhq/warden/adapters/members"
	"github.com/penpalhq/warden/adapters/password"
	"github.com/penpalhq/warden/adapters/store"
	"github.com/penpalhq/warden/adapters/tokenizer"
	"github.com/penpalhq/warden/config"
	"github.com/penpalhq/warden/service"
	"github.com/penpalhq/warden/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Generate a new ECDSA key pair (you would normally load this from somewhere secure)
	signKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)

	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := members.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate members: %v", err)
	}

	logger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	authService := service.NewAuthService(
		tokenizer.NewJWTTokenizer(signKey),
		members.NewGormProvider(db),
		password.NewBcrypt(),
		store.NewRedisStore(redisClient),
		events.NewWatermillPublisher(publisher),
		service.Config{
			AccessTTL:        cfg.AccessTTL,
			RefreshTTL:       cfg.RefreshTTL,
			ReissueThreshold: cfg.ReissueThreshold,
		},
	)

	router := http.SetupRouter(authService)

	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
