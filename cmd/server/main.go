package main

import (
	"log"

	"github.com/kickstarthq/talent-backend/internal/bootstrap"
	"github.com/kickstarthq/talent-backend/internal/config"
	"github.com/kickstarthq/talent-backend/internal/server"
	"github.com/kickstarthq/talent-backend/pkg/database"
	"github.com/redis/go-redis/v9"
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
	if err := bootstrap.SeedSkills(db); err != nil {
		log.Fatalf("failed to seed skills: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminAccount(db); err != nil {
			log.Fatalf("failed to seed admin account: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		// Rate limiting and realtime notifications degrade gracefully.
		log.Println("REDIS_URL not set, running without redis")
	}

	srv := server.NewServer(db, redisClient, cfg)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
