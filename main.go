package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gemstore/internal/handlers"
	"gemstore/internal/middleware"
	"gemstore/internal/models"
	"gemstore/internal/repositories"
	"gemstore/internal/seed"
	"gemstore/internal/services"
	"gemstore/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "gemstore.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SEED_GEMS", 0)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	seedCount := viper.GetInt("SEED_GEMS")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.GemProperties{}, &models.Gem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// The service runs fine without a broker; inventory events are simply
	// not published.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, continuing without events: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	gemRepo := repositories.NewGORMGemRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	if seedCount > 0 {
		if err := seed.Gems(gemRepo, seedCount); err != nil {
			log.Printf("Error seeding gems: %v", err)
		}
	}

	// --- Services ---
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	gemService := services.NewGemService(gemRepo, publisher)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// --- Fiber App ---
	app := newApp(gemService, authService)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for gem inventory events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received gem event (Tag: %d, Key: %s): %s",
					msg.DeliveryTag, msg.RoutingKey, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeGemEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM connection for the configured driver. Driver
// errors (duplicate keys in particular) are translated so repositories can
// match them.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), cfg)
	default:
		return gorm.Open(sqlite.Open(dsn), cfg)
	}
}

// newApp wires handlers and middleware into a Fiber app. Kept separate
// from main so tests can build the same app against test services.
func newApp(gemService *services.GemService, authService *services.AuthService) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(authService)
	gemHandler := handlers.NewGemHandler(gemService, authRequired)
	authHandler := handlers.NewAuthHandler(authService, authRequired)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON("Hello production")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	gemHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)

	return app
}
