package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"claimboard/backend/internal/api/handler"
	"claimboard/backend/internal/board"
	"claimboard/backend/internal/config"
	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/models"
	"claimboard/backend/internal/moderation"
	"claimboard/backend/internal/storage"
	"claimboard/backend/internal/threadhub"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(log *logger.Logger) (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.GetEnv("DB_HOST", "localhost", log),
		config.GetEnv("DB_USER", "claimboard", log),
		config.GetEnv("DB_PASSWORD", "claimboard", log),
		config.GetEnv("DB_NAME", "claimboard", log),
		config.GetEnv("DB_PORT", "5432", log),
	)

	// TranslateError turns driver unique-violations into
	// gorm.ErrDuplicatedKey, which thread provisioning relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect PostgreSQL", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.GetEnv("REDIS_ADDR", "localhost:6379", log),
		Password: config.GetEnv("REDIS_PASSWORD", "", log),
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to connect Redis", "error", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Claim{},
		&models.Reply{},
		&models.Thread{},
		&models.Message{},
		&models.Report{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	log.Info("Database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file loaded")
	}

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting claimboard backend...")

	jwtSecret := config.GetEnv("JWT_SECRET", "", log)
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(log)
	s := storage.NewStorageService(db, rdb, log)

	hub := threadhub.NewManagerService(s, log)
	go hub.Run()

	events, err := s.SubscribeThreadEvents(context.Background())
	if err != nil {
		log.Fatal("Failed to subscribe to thread events", "error", err)
	}
	go hub.Forward(events)

	boardSvc := board.NewService(s, log)
	moderationSvc := moderation.NewService(s, log)
	h := handler.NewHandler(boardSvc, moderationSvc, hub, s, jwtSecret, log)

	r := gin.Default()
	h.RegisterRoutes(r)

	addr := ":" + config.GetEnv("PORT", "8080", log)
	server := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Info("Listening", "addr", addr)
	log.Fatal("Server stopped", "error", server.ListenAndServe())
}
