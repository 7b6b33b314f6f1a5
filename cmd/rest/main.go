package main

import (
	"context"
	"log"

	"knowledgegpt-be/internal/bootstrap"
	"knowledgegpt-be/internal/config"
	"knowledgegpt-be/internal/server"
	"knowledgegpt-be/internal/tracer"
	"knowledgegpt-be/pkg/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var (
		gormDB      *gorm.DB
		redisClient *redis.Client
		err         error
	)
	if !cfg.App.Debug {
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}

		redisOpts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Panicf("Invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(redisOpts)
	}

	container := bootstrap.NewContainer(gormDB, redisClient, cfg)

	if err := container.AuditService.Consume(context.Background()); err != nil {
		log.Printf("Background audit consumer error: %v", err)
	}

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
