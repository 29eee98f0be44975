package router

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/ushadow-io/feed-service/internal/handlers"
	"github.com/ushadow-io/feed-service/internal/ingest"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/repositories"
	"github.com/ushadow-io/feed-service/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Source{},
		&models.Interest{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))
	sourceRepo := repositories.NewPostgresSourceRepository(pgdb)
	interestRepo := repositories.NewPostgresInterestRepository(pgdb)

	// --- Initialize Ingesters ---
	httpClient := &http.Client{Timeout: 30 * time.Second}
	ingesters := []ingest.Ingester{
		ingest.NewRSSIngester(models.PlatformMastodon, httpClient),
		ingest.NewRSSIngester(models.PlatformBluesky, httpClient),
		ingest.NewRSSIngester(models.PlatformBlueskyTimeline, httpClient),
	}
	if cfg.YouTubeAPIKey != "" {
		ytIngester, err := ingest.NewYouTubeIngester(context.Background(), cfg.YouTubeAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize YouTube ingester: %v", err)
		}
		ingesters = append(ingesters, ytIngester)
	} else {
		log.Println("YOUTUBE_API_KEY not set, youtube refresh disabled.")
	}
	refresher := ingest.NewRefresher(sourceRepo, postRepo, interestRepo, ingesters...)

	api := e.Group("/api/v1")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Post mutation routes
	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Source routes
	sourceHandler := handlers.NewSourceHandler(sourceRepo)
	sourceHandler.RegisterSourceRoutes(api)
	log.Println("Source routes configured.")

	// Interest routes
	interestHandler := handlers.NewInterestHandler(interestRepo)
	interestHandler.RegisterInterestRoutes(api)
	log.Println("Interest routes configured.")

	// Refresh routes
	refreshHandler := handlers.NewRefreshHandler(refresher)
	refreshHandler.RegisterRefreshRoutes(api)
	log.Println("Refresh routes configured.")

	log.Println("All routes configured.")
}
