package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/zapshift/zapshift-server/internal/database"
	"github.com/zapshift/zapshift-server/internal/handlers"
	"github.com/zapshift/zapshift-server/internal/middleware"
	"github.com/zapshift/zapshift-server/internal/services"
	"github.com/zapshift/zapshift-server/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis (optional - role lookups fall through to the store)
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize Firebase (optional - will log warning if not configured)
	if err := services.InitFirebase(); err != nil {
		log.Printf("Firebase initialization warning: %v", err)
	}

	if err := services.InitStripe(); err != nil {
		log.Fatalf("Failed to initialize Stripe: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	parcels := store.NewParcelStore(db)
	users := store.NewUserStore(db)
	riders := store.NewRiderStore(db)
	payments := store.NewPaymentStore(db)

	verifier := services.NewTokenVerifier()
	provider := services.NewStripeProvider()

	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	origin := os.Getenv("CLIENT_DOMAIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	config.AllowOrigins = []string{origin}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Local document uploads when S3 is not configured
	r.Static("/uploads", "./uploads")

	r.GET("/", func(c *gin.Context) {
		c.String(200, "zap shift server is running")
	})

	r.GET("/parcels", handlers.ListParcels(parcels))
	r.GET("/parcels/:id", handlers.GetParcel(parcels))
	r.POST("/parcels", handlers.CreateParcel(parcels))
	r.DELETE("/parcels/:id", handlers.DeleteParcel(parcels))

	r.GET("/payments", middleware.VerifyToken(verifier), handlers.ListPayments(payments))
	r.POST("/create-checkout-session", handlers.CreateCheckoutSession(parcels, provider))
	r.GET("/session-status", handlers.SessionStatus(parcels, payments, provider, hub))

	r.GET("/riders", handlers.ListRiders(riders))
	r.POST("/riders", handlers.CreateRider(riders))
	r.PATCH("/riders/:id", middleware.VerifyToken(verifier), middleware.RequireAdmin(users), handlers.SetRiderStatus(riders, users, hub))
	r.POST("/riders/:id/document", middleware.VerifyToken(verifier), handlers.UploadRiderDocument(riders))
	r.DELETE("/riders/:id", handlers.DeleteRider(riders))

	r.GET("/users", handlers.ListUsers(users))
	r.GET("/user/:email/role", handlers.GetUserRole(users))
	r.POST("/users", handlers.CreateUser(users))
	r.PATCH("/users/:id", middleware.VerifyToken(verifier), middleware.RequireAdmin(users), handlers.SetUserRole(users))

	r.POST("/notifications/register-token", middleware.VerifyToken(verifier), handlers.RegisterFCMToken(users))
	r.GET("/ws", middleware.VerifyToken(verifier), handlers.WebSocketHandler(hub))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
