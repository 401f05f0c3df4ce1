package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	uploadControllers "github.com/carmarket-dev/carmarket-api/controllers/upload"
	"github.com/carmarket-dev/carmarket-api/email"
	"github.com/carmarket-dev/carmarket-api/models"
	"github.com/carmarket-dev/carmarket-api/payment"
	"github.com/carmarket-dev/carmarket-api/routes"
)

func main() {
	_ = godotenv.Load()

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.CartItem{},
		&models.Order{},
		&models.Review{},
		&models.Favorite{},
		&models.PasswordReset{},
	); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	payClient, err := payment.NewHTTPClientFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("payment client init failed")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", uploadControllers.UploadDir())

	routes.SetupRoutes(r, db, routes.Deps{
		Payment: payClient,
		Mail:    email.NewSMTPSenderFromEnv(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatal().Err(err).Msg("DB connection failed")
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect DB")
	}
	return db
}
