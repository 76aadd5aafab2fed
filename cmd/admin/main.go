// Command admin is the operator CLI: it lists the report queue and
// manages suspensions directly against the production stores.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"claimboard/backend/internal/config"
	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/moderation"
	"claimboard/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.GetEnv("DB_HOST", "localhost", nil),
		config.GetEnv("DB_USER", "claimboard", nil),
		config.GetEnv("DB_PASSWORD", "claimboard", nil),
		config.GetEnv("DB_NAME", "claimboard", nil),
		config.GetEnv("DB_PORT", "5432", nil),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect database", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.GetEnv("REDIS_ADDR", "localhost:6379", nil),
		Password: config.GetEnv("REDIS_PASSWORD", "", nil),
	})

	storageSvc := storage.NewStorageService(db, rdb, log)
	moderationSvc := moderation.NewService(storageSvc, log)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <reports|suspend|unsuspend> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "reports":
		reports, err := moderationSvc.OpenReports()
		if err != nil {
			log.Fatal("Failed to list reports", "error", err)
		}
		if len(reports) == 0 {
			fmt.Println("No open reports.")
			return
		}
		for _, r := range reports {
			fmt.Printf("%s  %s  reporter=%s target=%s reply=%s reason=%q\n",
				r.CreatedAt.Format(time.RFC3339), r.ID, r.ReporterID, r.TargetID, r.ReplyID, r.Reason)
			for _, line := range r.MessageLog {
				fmt.Printf("    | %s\n", line)
			}
		}

	case "suspend":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin suspend <user_id> [duration_in_hours]")
			os.Exit(1)
		}
		userID := os.Args[2]
		duration := config.SuspendDuration
		if len(os.Args) > 3 {
			hours, err := strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer number of hours.")
				os.Exit(1)
			}
			duration = time.Duration(hours) * time.Hour
		}
		if err := storageSvc.SuspendUser(userID, duration); err != nil {
			log.Fatal("Failed to suspend user", "error", err)
		}
		fmt.Printf("User %s suspended for %s.\n", userID, duration)

	case "unsuspend":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unsuspend <user_id>")
			os.Exit(1)
		}
		if err := storageSvc.UnsuspendUser(os.Args[2]); err != nil {
			log.Fatal("Failed to unsuspend user", "error", err)
		}
		fmt.Printf("User %s unsuspended.\n", os.Args[2])

	default:
		fmt.Printf("Unknown command %q\n", os.Args[1])
		os.Exit(1)
	}
}
