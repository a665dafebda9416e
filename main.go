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

	"tugas/internal/handlers"
	"tugas/internal/middleware"
	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/internal/services"
	"tugas/pkg/filestore"
	"tugas/pkg/rabbitmq"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// insecureDefaultSecret is the fallback signing secret. Running with it
// is a deployment misconfiguration; main logs a loud warning when it is
// in use.
const insecureDefaultSecret = "your-secret-key"

// NewApp wires repositories, services, and handlers into a Fiber app.
// The RabbitMQ client may be nil; reminder events are then skipped.
func NewApp(db *gorm.DB, mqClient *rabbitmq.Client, images *filestore.DiskStore, jwtSecret string, tokenTTL time.Duration) (*fiber.App, *services.AuthService) {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	todoRepo := repositories.NewGORMTodoRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, tokenTTL)
	var publisher services.ReminderPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	todoService := services.NewTodoService(todoRepo, publisher)
	profileService := services.NewProfileService(userRepo, todoRepo, images)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	profileHandler := handlers.NewProfileHandler(profileService)

	app := fiber.New()
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Protected routes behind the auth gate
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	todoHandler.RegisterRoutes(protected)
	profileHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, authService
}

// openDatabase opens a GORM connection for the configured driver.
// TranslateError maps driver-specific unique violations onto
// gorm.ErrDuplicatedKey, which the repositories rely on.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if driver == "postgres" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "tugas.db")
	viper.SetDefault("JWT_SECRET", insecureDefaultSecret)
	viper.SetDefault("TOKEN_TTL_HOURS", 168)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	tokenTTL := time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour

	if jwtSecret == insecureDefaultSecret {
		log.Println("WARNING: JWT_SECRET is not set; using the insecure built-in default. Do not run like this in production.")
	}

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Todo{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- File store for profile images ---
	images, err := filestore.NewDiskStore(viper.GetString("UPLOAD_DIR"))
	if err != nil {
		log.Fatalf("Failed to initialize upload directory: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set; reminder events disabled")
	}

	app, _ := NewApp(db, mqClient, images, jwtSecret, tokenTTL)

	// --- Start RabbitMQ consumer for reminder events ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for reminders...")
			messageHandler := func(msg amqp.Delivery) error {
				// Delivery of reminders (push, email) belongs to a
				// separate worker; here we only log the event.
				log.Printf("Received Reminder Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeReminderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
