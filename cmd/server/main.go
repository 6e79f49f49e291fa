package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/oreumshop/commerce-api/internal/bootstrap"
	"github.com/oreumshop/commerce-api/internal/config"
	"github.com/oreumshop/commerce-api/internal/server"
	"github.com/oreumshop/commerce-api/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis unavailable (%v), rate limiting and live chat disabled", err)
			redisClient = nil
		}
	} else {
		log.Println("REDIS_ADDR not set, rate limiting and live chat disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
